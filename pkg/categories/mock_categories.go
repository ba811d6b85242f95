// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package categories -destination ./mock_categories.go -source=./interfaces.go
//

// Package categories is a generated GoMock package.
package categories

import (
	context "context"
	reflect "reflect"

	types "github.com/canonical/inventory-service/internal/types"
	gomock "go.uber.org/mock/gomock"
)

// MockServiceInterface is a mock of ServiceInterface interface.
type MockServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockServiceInterfaceMockRecorder
	isgomock struct{}
}

// MockServiceInterfaceMockRecorder is the mock recorder for MockServiceInterface.
type MockServiceInterfaceMockRecorder struct {
	mock *MockServiceInterface
}

// NewMockServiceInterface creates a new mock instance.
func NewMockServiceInterface(ctrl *gomock.Controller) *MockServiceInterface {
	mock := &MockServiceInterface{ctrl: ctrl}
	mock.recorder = &MockServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockServiceInterface) EXPECT() *MockServiceInterfaceMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockServiceInterface) Create(ctx context.Context, c *types.Category) (*types.Category, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, c)
	ret0, _ := ret[0].(*types.Category)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockServiceInterfaceMockRecorder) Create(ctx, c any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockServiceInterface)(nil).Create), ctx, c)
}

// Delete mocks base method.
func (m *MockServiceInterface) Delete(ctx context.Context, id, orgID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id, orgID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete.
func (mr *MockServiceInterfaceMockRecorder) Delete(ctx, id, orgID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockServiceInterface)(nil).Delete), ctx, id, orgID)
}

// GetDetails mocks base method.
func (m *MockServiceInterface) GetDetails(ctx context.Context, id, orgID string) (*types.Category, []*types.Product, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetDetails", ctx, id, orgID)
	ret0, _ := ret[0].(*types.Category)
	ret1, _ := ret[1].([]*types.Product)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// GetDetails indicates an expected call of GetDetails.
func (mr *MockServiceInterfaceMockRecorder) GetDetails(ctx, id, orgID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetDetails", reflect.TypeOf((*MockServiceInterface)(nil).GetDetails), ctx, id, orgID)
}

// List mocks base method.
func (m *MockServiceInterface) List(ctx context.Context, orgID string) ([]*types.Category, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, orgID)
	ret0, _ := ret[0].([]*types.Category)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockServiceInterfaceMockRecorder) List(ctx, orgID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockServiceInterface)(nil).List), ctx, orgID)
}

// Update mocks base method.
func (m *MockServiceInterface) Update(ctx context.Context, c *types.Category) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, c)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockServiceInterfaceMockRecorder) Update(ctx, c any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockServiceInterface)(nil).Update), ctx, c)
}

// MockStorageInterface is a mock of StorageInterface interface.
type MockStorageInterface struct {
	ctrl     *gomock.Controller
	recorder *MockStorageInterfaceMockRecorder
	isgomock struct{}
}

// MockStorageInterfaceMockRecorder is the mock recorder for MockStorageInterface.
type MockStorageInterfaceMockRecorder struct {
	mock *MockStorageInterface
}

// NewMockStorageInterface creates a new mock instance.
func NewMockStorageInterface(ctrl *gomock.Controller) *MockStorageInterface {
	mock := &MockStorageInterface{ctrl: ctrl}
	mock.recorder = &MockStorageInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStorageInterface) EXPECT() *MockStorageInterfaceMockRecorder {
	return m.recorder
}

// CreateCategory mocks base method.
func (m *MockStorageInterface) CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateCategory", ctx, c)
	ret0, _ := ret[0].(*types.Category)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateCategory indicates an expected call of CreateCategory.
func (mr *MockStorageInterfaceMockRecorder) CreateCategory(ctx, c any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateCategory", reflect.TypeOf((*MockStorageInterface)(nil).CreateCategory), ctx, c)
}

// DeleteCategory mocks base method.
func (m *MockStorageInterface) DeleteCategory(ctx context.Context, id, orgID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteCategory", ctx, id, orgID)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteCategory indicates an expected call of DeleteCategory.
func (mr *MockStorageInterfaceMockRecorder) DeleteCategory(ctx, id, orgID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteCategory", reflect.TypeOf((*MockStorageInterface)(nil).DeleteCategory), ctx, id, orgID)
}

// GetCategoryByID mocks base method.
func (m *MockStorageInterface) GetCategoryByID(ctx context.Context, id, orgID string) (*types.Category, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCategoryByID", ctx, id, orgID)
	ret0, _ := ret[0].(*types.Category)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCategoryByID indicates an expected call of GetCategoryByID.
func (mr *MockStorageInterfaceMockRecorder) GetCategoryByID(ctx, id, orgID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCategoryByID", reflect.TypeOf((*MockStorageInterface)(nil).GetCategoryByID), ctx, id, orgID)
}

// ListCategoriesByOrganizationID mocks base method.
func (m *MockStorageInterface) ListCategoriesByOrganizationID(ctx context.Context, orgID string) ([]*types.Category, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListCategoriesByOrganizationID", ctx, orgID)
	ret0, _ := ret[0].([]*types.Category)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListCategoriesByOrganizationID indicates an expected call of ListCategoriesByOrganizationID.
func (mr *MockStorageInterfaceMockRecorder) ListCategoriesByOrganizationID(ctx, orgID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListCategoriesByOrganizationID", reflect.TypeOf((*MockStorageInterface)(nil).ListCategoriesByOrganizationID), ctx, orgID)
}

// ListProductsByCategoryID mocks base method.
func (m *MockStorageInterface) ListProductsByCategoryID(ctx context.Context, categoryID string) ([]*types.Product, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListProductsByCategoryID", ctx, categoryID)
	ret0, _ := ret[0].([]*types.Product)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListProductsByCategoryID indicates an expected call of ListProductsByCategoryID.
func (mr *MockStorageInterfaceMockRecorder) ListProductsByCategoryID(ctx, categoryID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListProductsByCategoryID", reflect.TypeOf((*MockStorageInterface)(nil).ListProductsByCategoryID), ctx, categoryID)
}

// UpdateCategory mocks base method.
func (m *MockStorageInterface) UpdateCategory(ctx context.Context, c *types.Category) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateCategory", ctx, c)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateCategory indicates an expected call of UpdateCategory.
func (mr *MockStorageInterfaceMockRecorder) UpdateCategory(ctx, c any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateCategory", reflect.TypeOf((*MockStorageInterface)(nil).UpdateCategory), ctx, c)
}

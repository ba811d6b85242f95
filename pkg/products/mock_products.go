// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package products -destination ./mock_products.go -source=./interfaces.go
//

// Package products is a generated GoMock package.
package products

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
func (m *MockServiceInterface) Create(ctx context.Context, p *types.Product) (*types.Product, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, p)
	ret0, _ := ret[0].(*types.Product)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockServiceInterfaceMockRecorder) Create(ctx, p any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockServiceInterface)(nil).Create), ctx, p)
}

// ListByOrganization mocks base method.
func (m *MockServiceInterface) ListByOrganization(ctx context.Context, orgID string) ([]*types.Product, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByOrganization", ctx, orgID)
	ret0, _ := ret[0].([]*types.Product)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByOrganization indicates an expected call of ListByOrganization.
func (mr *MockServiceInterfaceMockRecorder) ListByOrganization(ctx, orgID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByOrganization", reflect.TypeOf((*MockServiceInterface)(nil).ListByOrganization), ctx, orgID)
}

// StockReport mocks base method.
func (m *MockServiceInterface) StockReport(ctx context.Context, orgID string) ([]*types.ProductStock, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StockReport", ctx, orgID)
	ret0, _ := ret[0].([]*types.ProductStock)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// StockReport indicates an expected call of StockReport.
func (mr *MockServiceInterfaceMockRecorder) StockReport(ctx, orgID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StockReport", reflect.TypeOf((*MockServiceInterface)(nil).StockReport), ctx, orgID)
}

// Update mocks base method.
func (m *MockServiceInterface) Update(ctx context.Context, p *types.Product) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, p)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update.
func (mr *MockServiceInterfaceMockRecorder) Update(ctx, p any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockServiceInterface)(nil).Update), ctx, p)
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

// CreateProduct mocks base method.
func (m *MockStorageInterface) CreateProduct(ctx context.Context, p *types.Product) (*types.Product, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateProduct", ctx, p)
	ret0, _ := ret[0].(*types.Product)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateProduct indicates an expected call of CreateProduct.
func (mr *MockStorageInterfaceMockRecorder) CreateProduct(ctx, p any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateProduct", reflect.TypeOf((*MockStorageInterface)(nil).CreateProduct), ctx, p)
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

// GetProductByID mocks base method.
func (m *MockStorageInterface) GetProductByID(ctx context.Context, id, orgID string) (*types.Product, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetProductByID", ctx, id, orgID)
	ret0, _ := ret[0].(*types.Product)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetProductByID indicates an expected call of GetProductByID.
func (mr *MockStorageInterfaceMockRecorder) GetProductByID(ctx, id, orgID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetProductByID", reflect.TypeOf((*MockStorageInterface)(nil).GetProductByID), ctx, id, orgID)
}

// GetProductStock mocks base method.
func (m *MockStorageInterface) GetProductStock(ctx context.Context, orgID string) ([]*types.ProductStock, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetProductStock", ctx, orgID)
	ret0, _ := ret[0].([]*types.ProductStock)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetProductStock indicates an expected call of GetProductStock.
func (mr *MockStorageInterfaceMockRecorder) GetProductStock(ctx, orgID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetProductStock", reflect.TypeOf((*MockStorageInterface)(nil).GetProductStock), ctx, orgID)
}

// ListProductsByOrganizationID mocks base method.
func (m *MockStorageInterface) ListProductsByOrganizationID(ctx context.Context, orgID string) ([]*types.Product, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListProductsByOrganizationID", ctx, orgID)
	ret0, _ := ret[0].([]*types.Product)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListProductsByOrganizationID indicates an expected call of ListProductsByOrganizationID.
func (mr *MockStorageInterfaceMockRecorder) ListProductsByOrganizationID(ctx, orgID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListProductsByOrganizationID", reflect.TypeOf((*MockStorageInterface)(nil).ListProductsByOrganizationID), ctx, orgID)
}

// UpdateProduct mocks base method.
func (m *MockStorageInterface) UpdateProduct(ctx context.Context, p *types.Product) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateProduct", ctx, p)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateProduct indicates an expected call of UpdateProduct.
func (mr *MockStorageInterfaceMockRecorder) UpdateProduct(ctx, p any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateProduct", reflect.TypeOf((*MockStorageInterface)(nil).UpdateProduct), ctx, p)
}

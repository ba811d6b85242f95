// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package users -destination ./mock_users.go -source=./interfaces.go
//

// Package users is a generated GoMock package.
package users

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

// GetDetails mocks base method.
func (m *MockServiceInterface) GetDetails(ctx context.Context, userID string) (*types.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetDetails", ctx, userID)
	ret0, _ := ret[0].(*types.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetDetails indicates an expected call of GetDetails.
func (mr *MockServiceInterfaceMockRecorder) GetDetails(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetDetails", reflect.TypeOf((*MockServiceInterface)(nil).GetDetails), ctx, userID)
}

// ListOrganizations mocks base method.
func (m *MockServiceInterface) ListOrganizations(ctx context.Context, userID string) ([]*types.UserOrganization, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListOrganizations", ctx, userID)
	ret0, _ := ret[0].([]*types.UserOrganization)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListOrganizations indicates an expected call of ListOrganizations.
func (mr *MockServiceInterfaceMockRecorder) ListOrganizations(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListOrganizations", reflect.TypeOf((*MockServiceInterface)(nil).ListOrganizations), ctx, userID)
}

// Onboard mocks base method.
func (m *MockServiceInterface) Onboard(ctx context.Context, userID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Onboard", ctx, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Onboard indicates an expected call of Onboard.
func (mr *MockServiceInterfaceMockRecorder) Onboard(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Onboard", reflect.TypeOf((*MockServiceInterface)(nil).Onboard), ctx, userID)
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

// GetUserByID mocks base method.
func (m *MockStorageInterface) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUserByID", ctx, id)
	ret0, _ := ret[0].(*types.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUserByID indicates an expected call of GetUserByID.
func (mr *MockStorageInterfaceMockRecorder) GetUserByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUserByID", reflect.TypeOf((*MockStorageInterface)(nil).GetUserByID), ctx, id)
}

// ListMembershipsByUserID mocks base method.
func (m *MockStorageInterface) ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListMembershipsByUserID", ctx, userID)
	ret0, _ := ret[0].([]*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListMembershipsByUserID indicates an expected call of ListMembershipsByUserID.
func (mr *MockStorageInterfaceMockRecorder) ListMembershipsByUserID(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListMembershipsByUserID", reflect.TypeOf((*MockStorageInterface)(nil).ListMembershipsByUserID), ctx, userID)
}

// ListOrganizationsByUserID mocks base method.
func (m *MockStorageInterface) ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.UserOrganization, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListOrganizationsByUserID", ctx, userID)
	ret0, _ := ret[0].([]*types.UserOrganization)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListOrganizationsByUserID indicates an expected call of ListOrganizationsByUserID.
func (mr *MockStorageInterfaceMockRecorder) ListOrganizationsByUserID(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListOrganizationsByUserID", reflect.TypeOf((*MockStorageInterface)(nil).ListOrganizationsByUserID), ctx, userID)
}

// SetUserOnboarded mocks base method.
func (m *MockStorageInterface) SetUserOnboarded(ctx context.Context, id string, onboarded bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetUserOnboarded", ctx, id, onboarded)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetUserOnboarded indicates an expected call of SetUserOnboarded.
func (mr *MockStorageInterfaceMockRecorder) SetUserOnboarded(ctx, id, onboarded any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetUserOnboarded", reflect.TypeOf((*MockStorageInterface)(nil).SetUserOnboarded), ctx, id, onboarded)
}

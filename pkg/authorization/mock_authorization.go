// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package authorization -destination ./mock_authorization.go -source=./interfaces.go
//

// Package authorization is a generated GoMock package.
package authorization

import (
	context "context"
	reflect "reflect"

	types "github.com/canonical/inventory-service/internal/types"
	gomock "go.uber.org/mock/gomock"
)

// MockAuthorizerInterface is a mock of AuthorizerInterface interface.
type MockAuthorizerInterface struct {
	ctrl     *gomock.Controller
	recorder *MockAuthorizerInterfaceMockRecorder
	isgomock struct{}
}

// MockAuthorizerInterfaceMockRecorder is the mock recorder for MockAuthorizerInterface.
type MockAuthorizerInterfaceMockRecorder struct {
	mock *MockAuthorizerInterface
}

// NewMockAuthorizerInterface creates a new mock instance.
func NewMockAuthorizerInterface(ctrl *gomock.Controller) *MockAuthorizerInterface {
	mock := &MockAuthorizerInterface{ctrl: ctrl}
	mock.recorder = &MockAuthorizerInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuthorizerInterface) EXPECT() *MockAuthorizerInterfaceMockRecorder {
	return m.recorder
}

// Resolve mocks base method.
func (m *MockAuthorizerInterface) Resolve(ctx context.Context, userID, slug string) (*AuthContext, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Resolve", ctx, userID, slug)
	ret0, _ := ret[0].(*AuthContext)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Resolve indicates an expected call of Resolve.
func (mr *MockAuthorizerInterfaceMockRecorder) Resolve(ctx, userID, slug any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Resolve", reflect.TypeOf((*MockAuthorizerInterface)(nil).Resolve), ctx, userID, slug)
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

// GetMembership mocks base method.
func (m *MockStorageInterface) GetMembership(ctx context.Context, userID, orgID string) (*types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetMembership", ctx, userID, orgID)
	ret0, _ := ret[0].(*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetMembership indicates an expected call of GetMembership.
func (mr *MockStorageInterfaceMockRecorder) GetMembership(ctx, userID, orgID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetMembership", reflect.TypeOf((*MockStorageInterface)(nil).GetMembership), ctx, userID, orgID)
}

// GetOrganizationBySlug mocks base method.
func (m *MockStorageInterface) GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetOrganizationBySlug", ctx, slug)
	ret0, _ := ret[0].(*types.Organization)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetOrganizationBySlug indicates an expected call of GetOrganizationBySlug.
func (mr *MockStorageInterfaceMockRecorder) GetOrganizationBySlug(ctx, slug any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOrganizationBySlug", reflect.TypeOf((*MockStorageInterface)(nil).GetOrganizationBySlug), ctx, slug)
}

// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package authentication -destination ./mock_authentication.go -source=./interfaces.go
//

// Package authentication is a generated GoMock package.
package authentication

import (
	context "context"
	reflect "reflect"

	types "github.com/canonical/inventory-service/internal/types"
	gomock "go.uber.org/mock/gomock"
)

// MockTokenVerifierInterface is a mock of TokenVerifierInterface interface.
type MockTokenVerifierInterface struct {
	ctrl     *gomock.Controller
	recorder *MockTokenVerifierInterfaceMockRecorder
	isgomock struct{}
}

// MockTokenVerifierInterfaceMockRecorder is the mock recorder for MockTokenVerifierInterface.
type MockTokenVerifierInterfaceMockRecorder struct {
	mock *MockTokenVerifierInterface
}

// NewMockTokenVerifierInterface creates a new mock instance.
func NewMockTokenVerifierInterface(ctrl *gomock.Controller) *MockTokenVerifierInterface {
	mock := &MockTokenVerifierInterface{ctrl: ctrl}
	mock.recorder = &MockTokenVerifierInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTokenVerifierInterface) EXPECT() *MockTokenVerifierInterfaceMockRecorder {
	return m.recorder
}

// VerifyToken mocks base method.
func (m *MockTokenVerifierInterface) VerifyToken(ctx context.Context, rawToken string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "VerifyToken", ctx, rawToken)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// VerifyToken indicates an expected call of VerifyToken.
func (mr *MockTokenVerifierInterfaceMockRecorder) VerifyToken(ctx, rawToken any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "VerifyToken", reflect.TypeOf((*MockTokenVerifierInterface)(nil).VerifyToken), ctx, rawToken)
}

// MockTokenIssuerInterface is a mock of TokenIssuerInterface interface.
type MockTokenIssuerInterface struct {
	ctrl     *gomock.Controller
	recorder *MockTokenIssuerInterfaceMockRecorder
	isgomock struct{}
}

// MockTokenIssuerInterfaceMockRecorder is the mock recorder for MockTokenIssuerInterface.
type MockTokenIssuerInterfaceMockRecorder struct {
	mock *MockTokenIssuerInterface
}

// NewMockTokenIssuerInterface creates a new mock instance.
func NewMockTokenIssuerInterface(ctrl *gomock.Controller) *MockTokenIssuerInterface {
	mock := &MockTokenIssuerInterface{ctrl: ctrl}
	mock.recorder = &MockTokenIssuerInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTokenIssuerInterface) EXPECT() *MockTokenIssuerInterfaceMockRecorder {
	return m.recorder
}

// IssueToken mocks base method.
func (m *MockTokenIssuerInterface) IssueToken(userID string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IssueToken", userID)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// IssueToken indicates an expected call of IssueToken.
func (mr *MockTokenIssuerInterfaceMockRecorder) IssueToken(userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IssueToken", reflect.TypeOf((*MockTokenIssuerInterface)(nil).IssueToken), userID)
}

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

// Authenticate mocks base method.
func (m *MockServiceInterface) Authenticate(ctx context.Context, email, password string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Authenticate", ctx, email, password)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Authenticate indicates an expected call of Authenticate.
func (mr *MockServiceInterfaceMockRecorder) Authenticate(ctx, email, password any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Authenticate", reflect.TypeOf((*MockServiceInterface)(nil).Authenticate), ctx, email, password)
}

// Register mocks base method.
func (m *MockServiceInterface) Register(ctx context.Context, email, name, password string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Register", ctx, email, name, password)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Register indicates an expected call of Register.
func (mr *MockServiceInterfaceMockRecorder) Register(ctx, email, name, password any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Register", reflect.TypeOf((*MockServiceInterface)(nil).Register), ctx, email, name, password)
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

// GetUserByEmail mocks base method.
func (m *MockStorageInterface) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUserByEmail", ctx, email)
	ret0, _ := ret[0].(*types.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUserByEmail indicates an expected call of GetUserByEmail.
func (mr *MockStorageInterfaceMockRecorder) GetUserByEmail(ctx, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUserByEmail", reflect.TypeOf((*MockStorageInterface)(nil).GetUserByEmail), ctx, email)
}

// RegisterUser mocks base method.
func (m *MockStorageInterface) RegisterUser(ctx context.Context, u *types.User) (*types.User, *types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RegisterUser", ctx, u)
	ret0, _ := ret[0].(*types.User)
	ret1, _ := ret[1].(*types.Membership)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// RegisterUser indicates an expected call of RegisterUser.
func (mr *MockStorageInterfaceMockRecorder) RegisterUser(ctx, u any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RegisterUser", reflect.TypeOf((*MockStorageInterface)(nil).RegisterUser), ctx, u)
}

// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/inventory-service/internal/apperrors"
	"github.com/canonical/inventory-service/internal/storage"
	"github.com/canonical/inventory-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_authentication.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestService_Authenticate(t *testing.T) {
	password := "correct-horse"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &types.User{ID: "user-123", Email: "alice@acme.com", PasswordHash: string(hash)}
	dbErr := errors.New("db error")

	testCases := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*MockStorageInterface, *MockTokenIssuerInterface)
		expectedToken string
		expectedKind  apperrors.Kind
		expectedErr   error
	}{
		{
			name:     "success",
			email:    "alice@acme.com",
			password: password,
			setupMocks: func(mockStorage *MockStorageInterface, mockIssuer *MockTokenIssuerInterface) {
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "alice@acme.com").Return(user, nil)
				mockIssuer.EXPECT().IssueToken("user-123").Return("signed-token", nil)
			},
			expectedToken: "signed-token",
		},
		{
			name:     "unknown email",
			email:    "nobody@acme.com",
			password: password,
			setupMocks: func(mockStorage *MockStorageInterface, mockIssuer *MockTokenIssuerInterface) {
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "nobody@acme.com").Return(nil, storage.ErrNotFound)
			},
			expectedKind: apperrors.KindAuthentication,
		},
		{
			name:     "wrong password",
			email:    "alice@acme.com",
			password: "wrong-password",
			setupMocks: func(mockStorage *MockStorageInterface, mockIssuer *MockTokenIssuerInterface) {
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "alice@acme.com").Return(user, nil)
			},
			expectedKind: apperrors.KindAuthentication,
		},
		{
			name:     "case-sensitive email lookup",
			email:    "ALICE@acme.com",
			password: password,
			setupMocks: func(mockStorage *MockStorageInterface, mockIssuer *MockTokenIssuerInterface) {
				// The storage layer is queried with the email exactly as supplied.
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "ALICE@acme.com").Return(nil, storage.ErrNotFound)
			},
			expectedKind: apperrors.KindAuthentication,
		},
		{
			name:     "storage error propagates",
			email:    "alice@acme.com",
			password: password,
			setupMocks: func(mockStorage *MockStorageInterface, mockIssuer *MockTokenIssuerInterface) {
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "alice@acme.com").Return(nil, dbErr)
			},
			expectedErr: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockIssuer := NewMockTokenIssuerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "authentication.Service.Authenticate").Return(context.Background(), trace.SpanFromContext(context.Background()))
			mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()
			mockSecurity.EXPECT().AuthnSuccess(gomock.Any()).AnyTimes()
			mockSecurity.EXPECT().AuthnFailure(gomock.Any()).AnyTimes()
			tc.setupMocks(mockStorage, mockIssuer)

			s := NewService(mockStorage, mockIssuer, mockTracer, mockMonitor, mockLogger)

			token, err := s.Authenticate(context.Background(), tc.email, tc.password)

			if tc.expectedKind != apperrors.KindUnknown {
				if !apperrors.IsKind(err, tc.expectedKind) {
					t.Fatalf("expected error kind %v, got %v", tc.expectedKind, err)
				}
				if token != "" {
					t.Errorf("expected no token on failure, got %q", token)
				}
				return
			}
			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token != tc.expectedToken {
				t.Errorf("expected token %q, got %q", tc.expectedToken, token)
			}
		})
	}
}

func TestService_Authenticate_FailuresAreIndistinguishable(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &types.User{ID: "user-123", Email: "alice@acme.com", PasswordHash: string(hash)}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockIssuer := NewMockTokenIssuerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(context.Background(), trace.SpanFromContext(context.Background())).Times(2)
	mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()
	mockSecurity.EXPECT().AuthnFailure(gomock.Any()).Times(2)
	mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "nobody@acme.com").Return(nil, storage.ErrNotFound)
	mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "alice@acme.com").Return(user, nil)

	s := NewService(mockStorage, mockIssuer, mockTracer, mockMonitor, mockLogger)

	_, unknownEmailErr := s.Authenticate(context.Background(), "nobody@acme.com", "whatever")
	_, wrongPasswordErr := s.Authenticate(context.Background(), "alice@acme.com", "wrong")

	if unknownEmailErr == nil || wrongPasswordErr == nil {
		t.Fatal("expected both attempts to fail")
	}
	if unknownEmailErr.Error() != wrongPasswordErr.Error() {
		t.Errorf("expected identical errors, got %q and %q", unknownEmailErr, wrongPasswordErr)
	}
}

func TestService_Register(t *testing.T) {
	dbErr := errors.New("db error")

	testCases := []struct {
		name         string
		setupMocks   func(*MockStorageInterface)
		expectedID   string
		expectedKind apperrors.Kind
		expectedErr  error
	}{
		{
			name: "success without auto-join",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *types.User) (*types.User, *types.Membership, error) {
						if u.Email != "alice@acme.com" || u.Name != "Alice" {
							return nil, nil, errors.New("wrong user fields")
						}
						if u.PasswordHash == "" || u.PasswordHash == "s3cret1" {
							return nil, nil, errors.New("password must be stored hashed")
						}
						if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret1")) != nil {
							return nil, nil, errors.New("hash does not match password")
						}
						return &types.User{ID: "user-123"}, nil, nil
					})
			},
			expectedID: "user-123",
		},
		{
			name: "success with auto-join",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(
					&types.User{ID: "user-123"},
					&types.Membership{ID: "member-1", UserID: "user-123", OrganizationID: "org-1", Role: types.RoleMember},
					nil,
				)
			},
			expectedID: "user-123",
		},
		{
			name: "duplicate email",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(nil, nil, storage.ErrDuplicateKey)
			},
			expectedKind: apperrors.KindConflict,
		},
		{
			name: "storage error propagates",
			setupMocks: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(nil, nil, dbErr)
			},
			expectedErr: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockIssuer := NewMockTokenIssuerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "authentication.Service.Register").Return(context.Background(), trace.SpanFromContext(context.Background()))
			mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
			tc.setupMocks(mockStorage)

			s := NewService(mockStorage, mockIssuer, mockTracer, mockMonitor, mockLogger)

			userID, err := s.Register(context.Background(), "alice@acme.com", "Alice", "s3cret1")

			if tc.expectedKind != apperrors.KindUnknown {
				if !apperrors.IsKind(err, tc.expectedKind) {
					t.Fatalf("expected error kind %v, got %v", tc.expectedKind, err)
				}
				return
			}
			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if userID != tc.expectedID {
				t.Errorf("expected user ID %q, got %q", tc.expectedID, userID)
			}
		})
	}
}

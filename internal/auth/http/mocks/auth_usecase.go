// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
)

// MockAuthUseCase is a mock implementation of AuthUseCase for testing.
type MockAuthUseCase struct {
	mock.Mock
}

func sessionOrNil(args mock.Arguments) (*authDomain.Session, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

// Login mocks the Login method of AuthUseCase.
func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (*authDomain.Session, error) {
	return sessionOrNil(m.Called(ctx, username, password))
}

// Logout mocks the Logout method of AuthUseCase.
func (m *MockAuthUseCase) Logout(ctx context.Context, claims *authDomain.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

// Authenticate mocks the Authenticate method of AuthUseCase.
func (m *MockAuthUseCase) Authenticate(ctx context.Context, token string) (*authDomain.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Claims), args.Error(1)
}

// VerifyPassword mocks the VerifyPassword method of AuthUseCase.
func (m *MockAuthUseCase) VerifyPassword(ctx context.Context, password string) error {
	args := m.Called(ctx, password)
	return args.Error(0)
}

// ChangeEmail mocks the ChangeEmail method of AuthUseCase.
func (m *MockAuthUseCase) ChangeEmail(
	ctx context.Context,
	claims *authDomain.Claims,
	input *authDomain.ChangeEmailInput,
) (*authDomain.Session, error) {
	return sessionOrNil(m.Called(ctx, claims, input))
}

// ChangePassword mocks the ChangePassword method of AuthUseCase.
func (m *MockAuthUseCase) ChangePassword(
	ctx context.Context,
	claims *authDomain.Claims,
	input *authDomain.ChangePasswordInput,
) (*authDomain.Session, error) {
	return sessionOrNil(m.Called(ctx, claims, input))
}

// ChangeUsername mocks the ChangeUsername method of AuthUseCase.
func (m *MockAuthUseCase) ChangeUsername(
	ctx context.Context,
	claims *authDomain.Claims,
	input *authDomain.ChangeUsernameInput,
) (*authDomain.Session, error) {
	return sessionOrNil(m.Called(ctx, claims, input))
}

// DeleteAccount mocks the DeleteAccount method of AuthUseCase.
func (m *MockAuthUseCase) DeleteAccount(ctx context.Context, claims *authDomain.Claims, password string) error {
	args := m.Called(ctx, claims, password)
	return args.Error(0)
}

// Info mocks the Info method of AuthUseCase.
func (m *MockAuthUseCase) Info(ctx context.Context, claims *authDomain.Claims) (*authDomain.AccountInfo, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.AccountInfo), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/you/gatesvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	LoginFunc   func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	LogoutFunc  func(ctx context.Context, sessionID string) error
	ProfileFunc func(ctx context.Context, personID uint) (*domain.Person, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Login authenticates an operator
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	// Default behavior: rejected
	return nil, domain.ErrInvalidCredentials
}

// Logout ends a session
func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	// Default behavior: success
	return nil
}

// Profile loads an operator profile
func (m *MockAuthService) Profile(ctx context.Context, personID uint) (*domain.Person, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, personID)
	}
	// Default behavior: not found
	return nil, domain.ErrPersonNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)

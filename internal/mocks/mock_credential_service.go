package mocks

import (
	"context"

	"github.com/you/gatesvc/domain"
)

// MockCredentialService implements domain.CredentialService interface for testing
type MockCredentialService struct {
	IssueFunc    func(ctx context.Context, subjectID, subjectName string, role domain.AccessRole, validityHours float64, unit string) (string, error)
	ValidateFunc func(ctx context.Context, token string) *domain.AccessVerdict
}

// NewMockCredentialService creates a new MockCredentialService with default behaviors
func NewMockCredentialService() *MockCredentialService {
	return &MockCredentialService{}
}

// Issue issues a credential token
func (m *MockCredentialService) Issue(ctx context.Context, subjectID, subjectName string, role domain.AccessRole, validityHours float64, unit string) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, subjectID, subjectName, role, validityHours, unit)
	}
	// Default behavior: fixed fake token
	return "mock_credential_token", nil
}

// Validate checks a credential token
func (m *MockCredentialService) Validate(ctx context.Context, token string) *domain.AccessVerdict {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, token)
	}
	// Default behavior: rejected as unreadable
	return &domain.AccessVerdict{Accepted: false, Reason: domain.ReasonMalformed}
}

// Compile-time interface compliance verification
var _ domain.CredentialService = (*MockCredentialService)(nil)

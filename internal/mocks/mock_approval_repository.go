package mocks

import (
	"context"

	"github.com/you/gatesvc/domain"
)

// MockApprovalRepository implements domain.ApprovalRepository interface for testing
type MockApprovalRepository struct {
	SaveFunc     func(ctx context.Context, auth *domain.PendingAuthorization) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.PendingAuthorization, error)
	DeleteFunc   func(ctx context.Context, id string) error
	ListFunc     func(ctx context.Context) ([]*domain.PendingAuthorization, error)
}

// NewMockApprovalRepository creates a new MockApprovalRepository with default behaviors
func NewMockApprovalRepository() *MockApprovalRepository {
	return &MockApprovalRepository{}
}

// Save stores a pending authorization
func (m *MockApprovalRepository) Save(ctx context.Context, auth *domain.PendingAuthorization) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, auth)
	}
	// Default behavior: success
	return nil
}

// FindByID finds a pending authorization by ID
func (m *MockApprovalRepository) FindByID(ctx context.Context, id string) (*domain.PendingAuthorization, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrApprovalNotFound
}

// Delete removes a pending authorization
func (m *MockApprovalRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// List returns all pending authorizations
func (m *MockApprovalRepository) List(ctx context.Context) ([]*domain.PendingAuthorization, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	// Default behavior: empty queue
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.ApprovalRepository = (*MockApprovalRepository)(nil)

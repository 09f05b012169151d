package mocks

import (
	"context"

	"github.com/you/gatesvc/domain"
)

// MockApprovalService implements domain.ApprovalService interface for testing
type MockApprovalService struct {
	EnqueueFunc      func(ctx context.Context, req *domain.PendingAuthorization) (*domain.PendingAuthorization, error)
	ListFunc         func(ctx context.Context) ([]*domain.PendingAuthorization, error)
	ForceApproveFunc func(ctx context.Context, id string) error
	ResendFunc       func(ctx context.Context, id string) error
}

// NewMockApprovalService creates a new MockApprovalService with default behaviors
func NewMockApprovalService() *MockApprovalService {
	return &MockApprovalService{}
}

// Enqueue queues a pending authorization
func (m *MockApprovalService) Enqueue(ctx context.Context, req *domain.PendingAuthorization) (*domain.PendingAuthorization, error) {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, req)
	}
	// Default behavior: echo with a fixed ID
	req.ID = "mock_approval_id"
	return req, nil
}

// List returns the pending queue
func (m *MockApprovalService) List(ctx context.Context) ([]*domain.PendingAuthorization, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	// Default behavior: empty queue
	return nil, nil
}

// ForceApprove approves a pending authorization
func (m *MockApprovalService) ForceApprove(ctx context.Context, id string) error {
	if m.ForceApproveFunc != nil {
		return m.ForceApproveFunc(ctx, id)
	}
	// Default behavior: not found
	return domain.ErrApprovalNotFound
}

// Resend re-dispatches a host notification
func (m *MockApprovalService) Resend(ctx context.Context, id string) error {
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, id)
	}
	// Default behavior: not found
	return domain.ErrApprovalNotFound
}

// Compile-time interface compliance verification
var _ domain.ApprovalService = (*MockApprovalService)(nil)

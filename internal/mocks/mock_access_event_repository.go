package mocks

import (
	"context"
	"sync"

	"github.com/you/gatesvc/domain"
)

// MockAccessEventRepository implements domain.AccessEventRepository for
// testing. Recorded events are kept in memory so assertions can inspect
// the audit trail written by the gate.
type MockAccessEventRepository struct {
	RecordFunc func(ctx context.Context, event *domain.AccessEvent) error
	RecentFunc func(ctx context.Context, limit int) ([]*domain.AccessEvent, error)

	mu       sync.Mutex
	Recorded []*domain.AccessEvent
}

// NewMockAccessEventRepository creates a new MockAccessEventRepository with default behaviors
func NewMockAccessEventRepository() *MockAccessEventRepository {
	return &MockAccessEventRepository{}
}

// Record appends to the in-memory trail
func (m *MockAccessEventRepository) Record(ctx context.Context, event *domain.AccessEvent) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Recorded = append(m.Recorded, event)
	return nil
}

// Recent returns the in-memory trail
func (m *MockAccessEventRepository) Recent(ctx context.Context, limit int) ([]*domain.AccessEvent, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.Recorded) {
		limit = len(m.Recorded)
	}
	return m.Recorded[:limit], nil
}

// Events returns a snapshot of the recorded trail
func (m *MockAccessEventRepository) Events() []*domain.AccessEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.AccessEvent, len(m.Recorded))
	copy(out, m.Recorded)
	return out
}

// Compile-time interface compliance verification
var _ domain.AccessEventRepository = (*MockAccessEventRepository)(nil)

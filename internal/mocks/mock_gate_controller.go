package mocks

import (
	"context"
	"sync"

	"github.com/you/gatesvc/domain"
)

// UnlockCall records one Unlock invocation on the mock gate.
type UnlockCall struct {
	Method domain.AccessMethod
	Reason string
}

// MockGateController implements domain.GateController interface for testing
type MockGateController struct {
	ApplyFunc  func(ctx context.Context, verdict *domain.AccessVerdict, direction domain.AccessDirection)
	UnlockFunc func(ctx context.Context, method domain.AccessMethod, reason string)
	LockFunc   func(ctx context.Context)
	StatusFunc func() domain.GateStatus

	mu      sync.Mutex
	Unlocks []UnlockCall
	Locks   int
}

// NewMockGateController creates a new MockGateController with default behaviors
func NewMockGateController() *MockGateController {
	return &MockGateController{}
}

// Apply feeds a verdict into the mock
func (m *MockGateController) Apply(ctx context.Context, verdict *domain.AccessVerdict, direction domain.AccessDirection) {
	if m.ApplyFunc != nil {
		m.ApplyFunc(ctx, verdict, direction)
		return
	}
	if verdict != nil && verdict.Accepted {
		m.Unlock(ctx, domain.MethodQR, verdict.Reason)
	}
}

// Unlock records the unlock call
func (m *MockGateController) Unlock(ctx context.Context, method domain.AccessMethod, reason string) {
	if m.UnlockFunc != nil {
		m.UnlockFunc(ctx, method, reason)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Unlocks = append(m.Unlocks, UnlockCall{Method: method, Reason: reason})
}

// Lock records the lock call
func (m *MockGateController) Lock(ctx context.Context) {
	if m.LockFunc != nil {
		m.LockFunc(ctx)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Locks++
}

// Status reports the mock state
func (m *MockGateController) Status() domain.GateStatus {
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Unlocks) > m.Locks {
		return domain.GateStatus{Phase: domain.GateUnlocked}
	}
	return domain.GateStatus{Phase: domain.GateLocked}
}

// UnlockCalls returns a snapshot of recorded unlocks
func (m *MockGateController) UnlockCalls() []UnlockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]UnlockCall, len(m.Unlocks))
	copy(out, m.Unlocks)
	return out
}

// Compile-time interface compliance verification
var _ domain.GateController = (*MockGateController)(nil)

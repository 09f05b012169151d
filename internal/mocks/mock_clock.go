package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/you/gatesvc/domain"
)

// MockClock implements domain.Clock with a manually advanced wall clock.
// Scheduled functions fire synchronously inside Advance, in deadline
// order, which makes relock timing deterministic in tests.
type MockClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*MockTimer
}

// MockTimer is a scheduled function held by MockClock.
type MockTimer struct {
	clock    *MockClock
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

// NewMockClock creates a MockClock starting at the given instant.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

// Now returns the simulated current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules f to run d after the current simulated time
func (c *MockClock) AfterFunc(d time.Duration, f func()) domain.RelockTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &MockTimer{clock: c, deadline: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and fires every timer whose deadline
// has passed, earliest first.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*MockTimer
	var rest []*MockTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.deadline.After(c.now) {
			t.fired = true
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	c.timers = rest
	sort.Slice(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	c.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

// PendingTimers reports how many scheduled functions have not yet fired
// or been stopped.
func (c *MockClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Stop cancels the timer, reporting whether it had not yet fired
func (t *MockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Compile-time interface compliance verification
var _ domain.Clock = (*MockClock)(nil)
var _ domain.RelockTimer = (*MockTimer)(nil)

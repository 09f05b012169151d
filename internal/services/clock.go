package services

import (
	"time"

	"github.com/you/gatesvc/domain"
)

// SystemClock implements domain.Clock over the runtime clock.
type SystemClock struct{}

// NewSystemClock creates the production clock
func NewSystemClock() domain.Clock {
	return SystemClock{}
}

// Now implements domain.Clock
func (SystemClock) Now() time.Time {
	return time.Now()
}

// AfterFunc implements domain.Clock
func (SystemClock) AfterFunc(d time.Duration, f func()) domain.RelockTimer {
	return time.AfterFunc(d, f)
}

// Compile-time interface compliance verification
var _ domain.Clock = SystemClock{}
var _ domain.RelockTimer = (*time.Timer)(nil)

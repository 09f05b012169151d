package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/you/gatesvc/domain"
)

// GateServiceImpl implements domain.GateController. The gate is a
// process-wide singleton created locked; every transition runs under one
// mutex so unlock idempotence and the single-active-timer invariant hold
// even with concurrent HTTP handlers.
type GateServiceImpl struct {
	mu             sync.Mutex
	phase          domain.GatePhase
	relockDeadline time.Time
	relockTimer    domain.RelockTimer
	unlockSeq      uint64

	relockDelay time.Duration
	clock       domain.Clock
	events      domain.AccessEventRepository
}

// NewGateService creates a new gate controller in the locked phase.
func NewGateService(clock domain.Clock, events domain.AccessEventRepository, relockDelay time.Duration) *GateServiceImpl {
	return &GateServiceImpl{
		phase:       domain.GateLocked,
		relockDelay: relockDelay,
		clock:       clock,
		events:      events,
	}
}

// Apply implements domain.GateController. Rejected verdicts never
// transition state; they are recorded and logged only.
func (g *GateServiceImpl) Apply(ctx context.Context, verdict *domain.AccessVerdict, direction domain.AccessDirection) {
	var subjectName string
	var role domain.AccessRole
	if verdict.Payload != nil {
		subjectName = verdict.Payload.SubjectName
		role = verdict.Payload.Role
	}

	if !verdict.Accepted {
		log.Printf("%s: method=qr direction=%s reason=%q subject=%q timestamp=%s",
			domain.AccessDeniedEvent, direction, verdict.Reason, subjectName, g.clock.Now().UTC().Format(time.RFC3339))
		g.record(ctx, &domain.AccessEvent{
			SubjectName: subjectName,
			Role:        role,
			Method:      domain.MethodQR,
			Direction:   direction,
			Granted:     false,
			Reason:      verdict.Reason,
		})
		return
	}

	log.Printf("%s: method=qr direction=%s role=%s subject=%q timestamp=%s",
		domain.AccessGrantedEvent, direction, role, subjectName, g.clock.Now().UTC().Format(time.RFC3339))
	g.record(ctx, &domain.AccessEvent{
		SubjectName: subjectName,
		Role:        role,
		Method:      domain.MethodQR,
		Direction:   direction,
		Granted:     true,
		Reason:      verdict.Reason,
	})

	g.Unlock(ctx, domain.MethodQR, fmt.Sprintf("qr validation (%s) - %s", direction, subjectName))
}

// Unlock implements domain.GateController. Calling it while already
// unlocked is a no-op: the phase stays unlocked and the original relock
// timer keeps its deadline.
func (g *GateServiceImpl) Unlock(ctx context.Context, method domain.AccessMethod, reason string) {
	g.mu.Lock()
	if g.phase == domain.GateUnlocked {
		g.mu.Unlock()
		return
	}

	g.phase = domain.GateUnlocked
	g.unlockSeq++
	seq := g.unlockSeq
	g.relockDeadline = g.clock.Now().Add(g.relockDelay)
	g.relockTimer = g.clock.AfterFunc(g.relockDelay, func() {
		g.autoRelock(seq)
	})
	g.mu.Unlock()

	log.Printf("%s: method=%s reason=%q relock_in=%s timestamp=%s",
		domain.GateUnlockedEvent, method, reason, g.relockDelay, g.clock.Now().UTC().Format(time.RFC3339))
	g.record(ctx, &domain.AccessEvent{
		Method:  method,
		Granted: true,
		Reason:  reason,
	})
}

// Lock implements domain.GateController. It is immediate and cancels any
// pending auto-relock timer so no stale timer fires afterwards.
func (g *GateServiceImpl) Lock(ctx context.Context) {
	g.mu.Lock()
	if g.phase == domain.GateLocked {
		g.mu.Unlock()
		return
	}

	if g.relockTimer != nil {
		g.relockTimer.Stop()
		g.relockTimer = nil
	}
	// Invalidate the window in case the timer callback already fired and
	// is waiting on the mutex.
	g.unlockSeq++
	g.phase = domain.GateLocked
	g.relockDeadline = time.Time{}
	g.mu.Unlock()

	log.Printf("%s: reason=%q timestamp=%s",
		domain.GateLockedEvent, "manual lock command", g.clock.Now().UTC().Format(time.RFC3339))
	g.record(ctx, &domain.AccessEvent{
		Method:  domain.MethodManual,
		Granted: true,
		Reason:  "manual lock command",
	})
}

// Status implements domain.GateController
func (g *GateServiceImpl) Status() domain.GateStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	status := domain.GateStatus{Phase: g.phase}
	if g.phase == domain.GateUnlocked && !g.relockDeadline.IsZero() {
		deadline := g.relockDeadline
		status.RelockDeadline = &deadline
	}
	return status
}

// autoRelock fires when the scheduled delay elapses. The sequence check
// makes a superseded timer a no-op: a manual lock or a newer unlock
// window has already moved the state machine on.
func (g *GateServiceImpl) autoRelock(seq uint64) {
	g.mu.Lock()
	if g.phase != domain.GateUnlocked || g.unlockSeq != seq {
		g.mu.Unlock()
		return
	}

	g.phase = domain.GateLocked
	g.relockTimer = nil
	g.relockDeadline = time.Time{}
	g.mu.Unlock()

	log.Printf("%s: delay=%s timestamp=%s",
		domain.GateAutoRelockEvent, g.relockDelay, g.clock.Now().UTC().Format(time.RFC3339))
	g.record(context.Background(), &domain.AccessEvent{
		Method:  domain.MethodAuto,
		Granted: true,
		Reason:  "auto-relock",
	})
}

// record appends to the audit trail. Persistence failures are logged and
// swallowed: the gate flow never crashes over a full audit table.
func (g *GateServiceImpl) record(ctx context.Context, event *domain.AccessEvent) {
	if g.events == nil {
		return
	}
	event.OccurredAt = g.clock.Now()
	if err := g.events.Record(ctx, event); err != nil {
		log.Printf("ACCESS_EVENT_RECORD_FAILED: error=%v", err)
	}
}

// Compile-time interface compliance verification
var _ domain.GateController = (*GateServiceImpl)(nil)

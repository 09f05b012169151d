package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Gate events
	GateUnlockedEvent   AuditEventType = "GATE_UNLOCKED"
	GateLockedEvent     AuditEventType = "GATE_LOCKED"
	GateAutoRelockEvent AuditEventType = "GATE_AUTO_RELOCKED"

	// Access events
	AccessGrantedEvent AuditEventType = "ACCESS_GRANTED"
	AccessDeniedEvent  AuditEventType = "ACCESS_DENIED"

	// Approval events
	ApprovalQueuedEvent AuditEventType = "APPROVAL_QUEUED"
	ApprovalForcedEvent AuditEventType = "APPROVAL_FORCED"
	ApprovalResentEvent AuditEventType = "APPROVAL_RESENT"

	// Operator events
	OperatorLoginEvent  AuditEventType = "OPERATOR_LOGIN"
	OperatorLogoutEvent AuditEventType = "OPERATOR_LOGOUT"
)

// AuditEvent represents a business event that occurred at the gate.
type AuditEvent struct {
	EventType   AuditEventType         `json:"event_type"`
	SubjectName string                 `json:"subject_name,omitempty"`
	Reason      string                 `json:"reason,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Success     bool                   `json:"success"`
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithSubject sets the subject display name
func (e *AuditEvent) WithSubject(name string) *AuditEvent {
	e.SubjectName = name
	return e
}

// WithReason sets the transition reason
func (e *AuditEvent) WithReason(reason string) *AuditEvent {
	e.Reason = reason
	return e
}

// WithError marks the event as failed
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.Metadata["error"] = err.Error()
	}
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}

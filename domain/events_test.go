package domain

import (
	"errors"
	"testing"
)

func TestNewAuditEvent(t *testing.T) {
	event := NewAuditEvent(GateUnlockedEvent).
		WithSubject("Carlos").
		WithReason("manual override").
		WithMetadata("method", MethodManual)

	if event.EventType != GateUnlockedEvent {
		t.Errorf("expected %s, got %s", GateUnlockedEvent, event.EventType)
	}
	if event.SubjectName != "Carlos" || event.Reason != "manual override" {
		t.Errorf("unexpected event fields: %+v", event)
	}
	if !event.Success {
		t.Error("expected a fresh event to be marked successful")
	}
	if event.Timestamp.IsZero() {
		t.Error("expected the timestamp to be set")
	}
	if event.Metadata["method"] != MethodManual {
		t.Errorf("expected metadata to carry the method, got %v", event.Metadata)
	}
}

func TestAuditEvent_WithError(t *testing.T) {
	event := NewAuditEvent(AccessDeniedEvent).WithError(errors.New("credential expired"))

	if event.Success {
		t.Error("expected WithError to mark the event failed")
	}
	if event.Metadata["error"] != "credential expired" {
		t.Errorf("expected the error message in metadata, got %v", event.Metadata)
	}
}

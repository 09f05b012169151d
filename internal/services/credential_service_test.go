package services

import (
	"context"
	"testing"
	"time"

	"github.com/you/gatesvc/domain"
	"github.com/you/gatesvc/internal/infrastructure/qr"
	"github.com/you/gatesvc/internal/mocks"
)

func createCredentialServiceForTest(t *testing.T, start time.Time) (domain.CredentialService, *mocks.MockClock) {
	t.Helper()

	clock := mocks.NewMockClock(start)
	svc := NewCredentialService(qr.NewCodec(), clock)
	return svc, clock
}

func TestCredentialServiceImpl_Validate(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		token          func(t *testing.T, svc domain.CredentialService) string
		expectAccepted bool
		expectReason   string
	}{
		{
			name: "freshly issued token is granted",
			token: func(t *testing.T, svc domain.CredentialService) string {
				t.Helper()
				token, err := svc.Issue(context.Background(), "vis_1", "Carlos", domain.RoleVisitor, 2, "101")
				if err != nil {
					t.Fatalf("Issue failed: %v", err)
				}
				return token
			},
			expectAccepted: true,
			expectReason:   domain.ReasonGranted,
		},
		{
			name: "garbage token is malformed",
			token: func(t *testing.T, svc domain.CredentialService) string {
				return "definitely-not-base64-json"
			},
			expectAccepted: false,
			expectReason:   domain.ReasonMalformed,
		},
		{
			name: "decodable token missing required fields is incomplete",
			token: func(t *testing.T, svc domain.CredentialService) string {
				t.Helper()
				codec := qr.NewCodec()
				token, err := codec.Encode(&domain.CredentialPayload{SubjectID: "vis_2"})
				if err != nil {
					t.Fatalf("Encode failed: %v", err)
				}
				return token
			},
			expectAccepted: false,
			expectReason:   domain.ReasonIncompletePayload,
		},
		{
			name: "token with zero validity is already expired",
			token: func(t *testing.T, svc domain.CredentialService) string {
				t.Helper()
				codec := qr.NewCodec()
				token, err := codec.Encode(&domain.CredentialPayload{
					SubjectID:   "vis_3",
					SubjectName: "Ana",
					ExpiresAt:   start.UnixMilli() - 1,
				})
				if err != nil {
					t.Fatalf("Encode failed: %v", err)
				}
				return token
			},
			expectAccepted: false,
			expectReason:   domain.ReasonExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := createCredentialServiceForTest(t, start)
			verdict := svc.Validate(context.Background(), tt.token(t, svc))

			if verdict.Accepted != tt.expectAccepted {
				t.Errorf("expected accepted=%v, got %v (reason %q)", tt.expectAccepted, verdict.Accepted, verdict.Reason)
			}
			if verdict.Reason != tt.expectReason {
				t.Errorf("expected reason %q, got %q", tt.expectReason, verdict.Reason)
			}
		})
	}
}

// Expiry is a strict comparison: a token is still valid at the exact
// expiry instant and invalid one millisecond later.
func TestCredentialServiceImpl_ExpiryBoundary(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	codec := qr.NewCodec()

	token, err := codec.Encode(&domain.CredentialPayload{
		SubjectID:   "vis_1",
		SubjectName: "Carlos",
		ExpiresAt:   start.UnixMilli(),
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tests := []struct {
		name           string
		at             time.Time
		expectAccepted bool
	}{
		{name: "one millisecond before expiry", at: start.Add(-time.Millisecond), expectAccepted: true},
		{name: "exactly at expiry", at: start, expectAccepted: true},
		{name: "one millisecond after expiry", at: start.Add(time.Millisecond), expectAccepted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := createCredentialServiceForTest(t, tt.at)
			verdict := svc.Validate(context.Background(), token)
			if verdict.Accepted != tt.expectAccepted {
				t.Errorf("at %s expected accepted=%v, got %v (reason %q)", tt.at, tt.expectAccepted, verdict.Accepted, verdict.Reason)
			}
		})
	}
}

// A verdict is never cached: the same token flips from granted to expired
// as the clock advances past its deadline.
func TestCredentialServiceImpl_VerdictFollowsClock(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc, clock := createCredentialServiceForTest(t, start)

	token, err := svc.Issue(context.Background(), "vis_1", "Carlos", domain.RoleVisitor, 1, "101")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	verdict := svc.Validate(context.Background(), token)
	if !verdict.Accepted {
		t.Fatalf("expected fresh token to be granted, got reason %q", verdict.Reason)
	}

	clock.Advance(61 * time.Minute)

	verdict = svc.Validate(context.Background(), token)
	if verdict.Accepted {
		t.Fatal("expected token to be rejected after validity elapsed")
	}
	if verdict.Reason != domain.ReasonExpired {
		t.Errorf("expected reason %q, got %q", domain.ReasonExpired, verdict.Reason)
	}
	if verdict.Payload == nil || verdict.Payload.SubjectName != "Carlos" {
		t.Errorf("expected expired verdict to carry the decoded payload, got %+v", verdict.Payload)
	}
}

// Fractional validity hours are honored to the minute.
func TestCredentialServiceImpl_FractionalValidity(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc, clock := createCredentialServiceForTest(t, start)

	token, err := svc.Issue(context.Background(), "vis_1", "Ana", domain.RoleVisitor, 0.5, "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	clock.Advance(29 * time.Minute)
	if verdict := svc.Validate(context.Background(), token); !verdict.Accepted {
		t.Fatalf("expected token valid at 29 minutes, got reason %q", verdict.Reason)
	}

	clock.Advance(2 * time.Minute)
	if verdict := svc.Validate(context.Background(), token); verdict.Accepted {
		t.Fatal("expected token expired at 31 minutes")
	}
}

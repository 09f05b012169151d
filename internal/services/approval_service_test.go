package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/you/gatesvc/domain"
	"github.com/you/gatesvc/internal/mocks"
)

func createApprovalServiceForTest(t *testing.T) (domain.ApprovalService, *mocks.MockApprovalRepository, *mocks.MockNotificationService, *mocks.MockGateController, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := mocks.NewMockApprovalRepository()
	notificationSvc := mocks.NewMockNotificationService()
	gate := mocks.NewMockGateController()

	svc := NewApprovalService(repo, notificationSvc, gate, client, ApprovalConfig{
		ResendWindow: 30 * time.Second,
	})
	return svc, repo, notificationSvc, gate, mr
}

func TestApprovalServiceImpl_Enqueue(t *testing.T) {
	tests := []struct {
		name          string
		request       *domain.PendingAuthorization
		setupMocks    func(*mocks.MockApprovalRepository, *mocks.MockNotificationService)
		expectedError bool
		validate      func(t *testing.T, result *domain.PendingAuthorization, saved []*domain.PendingAuthorization, sent []string)
	}{
		{
			name: "whatsapp request is stored and dispatched",
			request: &domain.PendingAuthorization{
				VisitorName: "Marcos Lima",
				HostName:    "Paula",
				HostUnit:    "302",
				HostPhone:   "+5511999990000",
				Purpose:     "delivery",
				Channel:     domain.ChannelWhatsApp,
			},
			validate: func(t *testing.T, result *domain.PendingAuthorization, saved []*domain.PendingAuthorization, sent []string) {
				if result.ID == "" {
					t.Error("expected an ID to be assigned")
				}
				if result.RequestedAt.IsZero() {
					t.Error("expected a request timestamp")
				}
				if len(saved) != 1 {
					t.Fatalf("expected one saved entry, got %d", len(saved))
				}
				if len(sent) != 1 || sent[0] != "+5511999990000" {
					t.Errorf("expected one whatsapp message to host, got %v", sent)
				}
			},
		},
		{
			name: "failed notification keeps the entry queued",
			request: &domain.PendingAuthorization{
				VisitorName: "Rita",
				HostName:    "Jorge",
				HostUnit:    "108",
				HostPhone:   "+5511888880000",
				Channel:     domain.ChannelSMS,
			},
			setupMocks: func(repo *mocks.MockApprovalRepository, notificationSvc *mocks.MockNotificationService) {
				notificationSvc.SendSMSFunc = func(to, message string) error {
					return errors.New("carrier unreachable")
				}
			},
			validate: func(t *testing.T, result *domain.PendingAuthorization, saved []*domain.PendingAuthorization, sent []string) {
				if len(saved) != 1 {
					t.Fatalf("expected the entry to stay queued despite notify failure, got %d saved", len(saved))
				}
			},
		},
		{
			name: "storage failure surfaces as error",
			request: &domain.PendingAuthorization{
				VisitorName: "Leo",
				HostUnit:    "201",
				Channel:     domain.ChannelEmail,
			},
			setupMocks: func(repo *mocks.MockApprovalRepository, notificationSvc *mocks.MockNotificationService) {
				repo.SaveFunc = func(ctx context.Context, auth *domain.PendingAuthorization) error {
					return errors.New("redis down")
				}
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, notificationSvc, _, _ := createApprovalServiceForTest(t)

			var saved []*domain.PendingAuthorization
			repo.SaveFunc = func(ctx context.Context, auth *domain.PendingAuthorization) error {
				saved = append(saved, auth)
				return nil
			}
			var sent []string
			notificationSvc.SendWhatsAppFunc = func(to, message string) error {
				sent = append(sent, to)
				return nil
			}

			if tt.setupMocks != nil {
				tt.setupMocks(repo, notificationSvc)
			}

			result, err := svc.Enqueue(context.Background(), tt.request)
			if tt.expectedError {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Enqueue failed: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, result, saved, sent)
			}
		})
	}
}

func TestApprovalServiceImpl_ForceApprove(t *testing.T) {
	svc, repo, _, gate, _ := createApprovalServiceForTest(t)

	pending := &domain.PendingAuthorization{
		ID:          "auth_1",
		VisitorName: "Marcos Lima",
		HostName:    "Paula",
		HostUnit:    "302",
		Channel:     domain.ChannelWhatsApp,
	}
	deleted := false
	repo.FindByIDFunc = func(ctx context.Context, id string) (*domain.PendingAuthorization, error) {
		if id == pending.ID && !deleted {
			return pending, nil
		}
		return nil, domain.ErrApprovalNotFound
	}
	repo.DeleteFunc = func(ctx context.Context, id string) error {
		deleted = true
		return nil
	}

	if err := svc.ForceApprove(context.Background(), "auth_1"); err != nil {
		t.Fatalf("ForceApprove failed: %v", err)
	}

	if !deleted {
		t.Error("expected the entry to be removed from the queue")
	}

	unlocks := gate.UnlockCalls()
	if len(unlocks) != 1 {
		t.Fatalf("expected one gate unlock, got %d", len(unlocks))
	}
	if unlocks[0].Method != domain.MethodManual {
		t.Errorf("expected manual unlock method, got %s", unlocks[0].Method)
	}
	if unlocks[0].Reason != "manual override: Marcos Lima" {
		t.Errorf("expected the unlock reason to carry the visitor name, got %q", unlocks[0].Reason)
	}

	// The same ID cannot be approved twice.
	if err := svc.ForceApprove(context.Background(), "auth_1"); !errors.Is(err, domain.ErrApprovalNotFound) {
		t.Errorf("expected ErrApprovalNotFound on second approval, got %v", err)
	}
	if len(gate.UnlockCalls()) != 1 {
		t.Errorf("expected no second unlock, got %d", len(gate.UnlockCalls()))
	}
}

func TestApprovalServiceImpl_ForceApprove_UnknownID(t *testing.T) {
	svc, _, _, gate, _ := createApprovalServiceForTest(t)

	err := svc.ForceApprove(context.Background(), "missing")
	if !errors.Is(err, domain.ErrApprovalNotFound) {
		t.Errorf("expected ErrApprovalNotFound, got %v", err)
	}
	if len(gate.UnlockCalls()) != 0 {
		t.Error("expected no gate unlock for an unknown ID")
	}
}

func TestApprovalServiceImpl_Resend(t *testing.T) {
	svc, repo, notificationSvc, gate, mr := createApprovalServiceForTest(t)

	pending := &domain.PendingAuthorization{
		ID:        "auth_9",
		HostName:  "Jorge",
		HostUnit:  "108",
		HostPhone: "+5511888880000",
		Channel:   domain.ChannelSMS,
	}
	repo.FindByIDFunc = func(ctx context.Context, id string) (*domain.PendingAuthorization, error) {
		if id == pending.ID {
			return pending, nil
		}
		return nil, domain.ErrApprovalNotFound
	}

	sends := 0
	notificationSvc.SendSMSFunc = func(to, message string) error {
		sends++
		return nil
	}

	if err := svc.Resend(context.Background(), "auth_9"); err != nil {
		t.Fatalf("first resend failed: %v", err)
	}
	if sends != 1 {
		t.Fatalf("expected one SMS sent, got %d", sends)
	}

	// Within the window the resend is throttled.
	err := svc.Resend(context.Background(), "auth_9")
	if !errors.Is(err, domain.ErrResendThrottled) {
		t.Fatalf("expected ErrResendThrottled, got %v", err)
	}
	if sends != 1 {
		t.Errorf("expected no additional SMS while throttled, got %d", sends)
	}

	// Resend never touches queue membership or gate state.
	if len(gate.UnlockCalls()) != 0 {
		t.Error("expected no gate unlock from resend")
	}

	// After the window elapses the resend goes through again.
	mr.FastForward(31 * time.Second)
	if err := svc.Resend(context.Background(), "auth_9"); err != nil {
		t.Fatalf("resend after window failed: %v", err)
	}
	if sends != 2 {
		t.Errorf("expected a second SMS after the window, got %d", sends)
	}
}

func TestApprovalServiceImpl_ResendThrottleIsPerEntry(t *testing.T) {
	svc, repo, notificationSvc, _, _ := createApprovalServiceForTest(t)

	repo.FindByIDFunc = func(ctx context.Context, id string) (*domain.PendingAuthorization, error) {
		return &domain.PendingAuthorization{
			ID:        id,
			HostPhone: fmt.Sprintf("+55%s", id),
			Channel:   domain.ChannelSMS,
		}, nil
	}
	notificationSvc.SendSMSFunc = func(to, message string) error { return nil }

	if err := svc.Resend(context.Background(), "auth_a"); err != nil {
		t.Fatalf("resend auth_a failed: %v", err)
	}
	// A different entry has its own window.
	if err := svc.Resend(context.Background(), "auth_b"); err != nil {
		t.Fatalf("resend auth_b failed: %v", err)
	}
}

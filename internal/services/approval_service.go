package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/you/gatesvc/domain"
)

// ApprovalServiceImpl implements domain.ApprovalService. Queue membership
// lives in the approval repository; the resend throttle is a Redis TTL
// key, one per pending entry.
type ApprovalServiceImpl struct {
	repo            domain.ApprovalRepository
	notificationSvc domain.NotificationService
	gate            domain.GateController
	redisClient     *redis.Client
	config          ApprovalConfig
}

type ApprovalConfig struct {
	ResendWindow time.Duration
}

// NewApprovalService creates a new pending-authorization service
func NewApprovalService(repo domain.ApprovalRepository, notificationSvc domain.NotificationService, gate domain.GateController, redisClient *redis.Client, config ApprovalConfig) domain.ApprovalService {
	return &ApprovalServiceImpl{
		repo:            repo,
		notificationSvc: notificationSvc,
		gate:            gate,
		redisClient:     redisClient,
		config:          config,
	}
}

// Enqueue implements domain.ApprovalService. Requests are not
// deduplicated: several pending entries for the same visitor are allowed.
// A failed host notification keeps the entry queued; the operator can
// resend from the dashboard.
func (s *ApprovalServiceImpl) Enqueue(ctx context.Context, req *domain.PendingAuthorization) (*domain.PendingAuthorization, error) {
	req.ID = uuid.NewString()
	req.RequestedAt = time.Now()

	if err := s.repo.Save(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to store pending authorization: %w", err)
	}

	if err := s.dispatch(req); err != nil {
		log.Printf("APPROVAL_NOTIFY_FAILED: id=%s channel=%s error=%v", req.ID, req.Channel, err)
	}

	log.Printf("%s: id=%s visitor=%q host=%q unit=%s channel=%s",
		domain.ApprovalQueuedEvent, req.ID, req.VisitorName, req.HostName, req.HostUnit, req.Channel)
	return req, nil
}

// List implements domain.ApprovalService
func (s *ApprovalServiceImpl) List(ctx context.Context) ([]*domain.PendingAuthorization, error) {
	return s.repo.List(ctx)
}

// ForceApprove implements domain.ApprovalService. Removing the entry and
// unlocking the gate bypasses token validation entirely; the unlock reason
// carries the visitor name for the audit trail.
func (s *ApprovalServiceImpl) ForceApprove(ctx context.Context, id string) error {
	auth, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to remove pending authorization: %w", err)
	}

	log.Printf("%s: id=%s visitor=%q host=%q", domain.ApprovalForcedEvent, auth.ID, auth.VisitorName, auth.HostName)
	s.gate.Unlock(ctx, domain.MethodManual, "manual override: "+auth.VisitorName)
	return nil
}

// Resend implements domain.ApprovalService. It re-triggers the host
// notification without touching queue membership or gate state, throttled
// per entry by a Redis TTL key.
func (s *ApprovalServiceImpl) Resend(ctx context.Context, id string) error {
	auth, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	resendKey := fmt.Sprintf("approval:res:%s", id)
	ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
	if err != nil {
		return fmt.Errorf("failed to check resend TTL: %w", err)
	}
	if ttl > 0 {
		return domain.ErrResendThrottled
	}

	if err := s.dispatch(auth); err != nil {
		return fmt.Errorf("failed to resend authorization request: %w", err)
	}

	if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
		return fmt.Errorf("failed to set resend throttle: %w", err)
	}

	log.Printf("%s: id=%s channel=%s host=%q", domain.ApprovalResentEvent, auth.ID, auth.Channel, auth.HostName)
	return nil
}

// dispatch sends the authorization request over the entry's channel.
func (s *ApprovalServiceImpl) dispatch(auth *domain.PendingAuthorization) error {
	message := fmt.Sprintf("Visitor %s is at the gate for unit %s (%s). Reply to authorize entry.",
		auth.VisitorName, auth.HostUnit, auth.Purpose)

	switch auth.Channel {
	case domain.ChannelWhatsApp:
		return s.notificationSvc.SendWhatsApp(auth.HostPhone, message)
	case domain.ChannelSMS:
		return s.notificationSvc.SendSMS(auth.HostPhone, message)
	case domain.ChannelEmail:
		return s.notificationSvc.SendEmail(auth.HostEmail, "Visitor authorization request", message)
	default:
		return fmt.Errorf("unknown approval channel %q", auth.Channel)
	}
}

// Compile-time interface compliance verification
var _ domain.ApprovalService = (*ApprovalServiceImpl)(nil)

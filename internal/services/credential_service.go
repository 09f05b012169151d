package services

import (
	"context"
	"fmt"
	"log"

	"github.com/you/gatesvc/domain"
)

const millisPerHour = 3_600_000

// CredentialServiceImpl implements domain.CredentialService
type CredentialServiceImpl struct {
	codec domain.TokenCodec
	clock domain.Clock
}

// NewCredentialService creates a new credential service
func NewCredentialService(codec domain.TokenCodec, clock domain.Clock) domain.CredentialService {
	return &CredentialServiceImpl{
		codec: codec,
		clock: clock,
	}
}

// Issue implements domain.CredentialService. validityHours may be
// fractional (0.5 is thirty minutes). Non-positive values are not an
// error: they yield an already-expired token.
func (s *CredentialServiceImpl) Issue(ctx context.Context, subjectID, subjectName string, role domain.AccessRole, validityHours float64, unit string) (string, error) {
	payload := &domain.CredentialPayload{
		Role:        role,
		SubjectID:   subjectID,
		SubjectName: subjectName,
		ExpiresAt:   s.clock.Now().UnixMilli() + int64(validityHours*millisPerHour),
		Unit:        unit,
	}

	token, err := s.codec.Encode(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode credential: %w", err)
	}
	return token, nil
}

// Validate implements domain.CredentialService. The verdict is a
// point-in-time snapshot: the clock is read on every call and the result
// is never cached.
func (s *CredentialServiceImpl) Validate(ctx context.Context, token string) *domain.AccessVerdict {
	payload, err := s.codec.Decode(token)
	if err != nil {
		log.Printf("CREDENTIAL_DECODE_FAILED: error=%v", err)
		return &domain.AccessVerdict{Accepted: false, Reason: domain.ReasonMalformed}
	}

	if !payload.IsComplete() {
		// Grouped with malformed for user messaging but kept apart in
		// logs for debugging.
		log.Printf("CREDENTIAL_INCOMPLETE: subject_id=%q subject_name=%q exp=%d", payload.SubjectID, payload.SubjectName, payload.ExpiresAt)
		return &domain.AccessVerdict{Accepted: false, Reason: domain.ReasonIncompletePayload}
	}

	if payload.ExpiredAt(s.clock.Now()) {
		return &domain.AccessVerdict{Accepted: false, Reason: domain.ReasonExpired, Payload: payload}
	}

	return &domain.AccessVerdict{Accepted: true, Reason: domain.ReasonGranted, Payload: payload}
}

// Compile-time interface compliance verification
var _ domain.CredentialService = (*CredentialServiceImpl)(nil)

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/you/gatesvc/domain"
)

// AuthServiceImpl implements domain.AuthService for dashboard operators.
type AuthServiceImpl struct {
	personRepo  domain.PersonRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
}

// NewAuthService creates a new operator auth service
func NewAuthService(
	personRepo domain.PersonRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
) domain.AuthService {
	return &AuthServiceImpl{
		personRepo:  personRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Login implements domain.AuthService. Only active operator accounts may
// open dashboard sessions; everyone else gets the same invalid-credentials
// answer so the endpoint does not leak directory roles.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	person, err := s.personRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !person.IsActive {
		return nil, domain.ErrPersonInactive
	}

	if person.Role != domain.RoleOperator {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(person.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		ID:        fmt.Sprintf("sess_%d_%d", person.ID, time.Now().UnixNano()),
		PersonID:  person.ID,
		ExpiresAt: time.Now().Add(12 * time.Hour), // one shift
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(person.ID, string(person.Role), session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	log.Printf("%s: person_id=%d email=%s timestamp=%s",
		domain.OperatorLoginEvent, person.ID, person.Email, time.Now().UTC().Format(time.RFC3339))

	return &domain.AuthResult{
		Person:      person,
		AccessToken: accessToken,
		SessionID:   session.ID,
		ExpiresIn:   15 * 60, // access token lifetime in seconds
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	log.Printf("%s: session_id=%s timestamp=%s",
		domain.OperatorLogoutEvent, sessionID, time.Now().UTC().Format(time.RFC3339))
	return s.sessionRepo.Delete(ctx, sessionID)
}

// Profile implements domain.AuthService
func (s *AuthServiceImpl) Profile(ctx context.Context, personID uint) (*domain.Person, error) {
	return s.personRepo.FindByID(ctx, personID)
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*AuthServiceImpl)(nil)

package domain

import (
	"context"
	"time"
)

// TokenCodec defines the reversible transport encoding of a credential.
type TokenCodec interface {
	Encode(payload *CredentialPayload) (string, error)
	Decode(token string) (*CredentialPayload, error)
}

// CredentialService defines credential issuance and validation.
type CredentialService interface {
	Issue(ctx context.Context, subjectID, subjectName string, role AccessRole, validityHours float64, unit string) (string, error)
	Validate(ctx context.Context, token string) *AccessVerdict
}

// GateController owns the locked/unlocked phase and its relock timer.
// All transitions are serialized by the implementation; other components
// never mutate gate state directly.
type GateController interface {
	// Apply feeds a validation verdict into the state machine. Accepted
	// verdicts unlock the gate; rejected ones are audit-logged only.
	Apply(ctx context.Context, verdict *AccessVerdict, direction AccessDirection)
	Unlock(ctx context.Context, method AccessMethod, reason string)
	Lock(ctx context.Context)
	Status() GateStatus
}

// ApprovalService defines the pending-authorization queue operations.
type ApprovalService interface {
	Enqueue(ctx context.Context, req *PendingAuthorization) (*PendingAuthorization, error)
	List(ctx context.Context) ([]*PendingAuthorization, error)
	ForceApprove(ctx context.Context, id string) error
	Resend(ctx context.Context, id string) error
}

// PersonRepository defines directory data access operations.
type PersonRepository interface {
	Create(ctx context.Context, person *Person) error
	FindByEmail(ctx context.Context, email string) (*Person, error)
	FindByID(ctx context.Context, id uint) (*Person, error)
	FindByUnit(ctx context.Context, unit string) ([]*Person, error)
	Update(ctx context.Context, person *Person) error
}

// SessionRepository defines operator session data access operations.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context) error
}

// ApprovalRepository defines storage for pending authorizations.
type ApprovalRepository interface {
	Save(ctx context.Context, auth *PendingAuthorization) error
	FindByID(ctx context.Context, id string) (*PendingAuthorization, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*PendingAuthorization, error)
}

// AccessEventRepository defines storage for the gate audit trail.
type AccessEventRepository interface {
	Record(ctx context.Context, event *AccessEvent) error
	Recent(ctx context.Context, limit int) ([]*AccessEvent, error)
}

// AuthService defines operator authentication business logic.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	Profile(ctx context.Context, personID uint) (*Person, error)
}

// PasswordService defines password operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines operator token operations.
type TokenService interface {
	GenerateAccessToken(personID uint, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// NotificationService defines host notification dispatch.
type NotificationService interface {
	SendSMS(to, message string) error
	SendWhatsApp(to, message string) error
	SendEmail(to, subject, body string) error
}

// FaceAnalyzer is the boundary to the external AI analysis collaborator.
// Implementations must return a typed result; a transport failure is an
// error, which callers treat as "not granted", never as a crash.
type FaceAnalyzer interface {
	Analyze(ctx context.Context, image []byte) (*FaceAnalysis, error)
}

// PolicyService defines authorization policy operations.
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}

// TokenClaims represents operator JWT claims.
type TokenClaims struct {
	PersonID  uint   `json:"person_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Clock abstracts wall-clock reads and relock scheduling so the gate and
// credential logic can be driven by a simulated clock in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) RelockTimer
}

// RelockTimer is a cancellable scheduled task. Stop reports whether the
// timer was stopped before firing.
type RelockTimer interface {
	Stop() bool
}

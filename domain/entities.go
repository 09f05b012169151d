package domain

import "time"

// AccessRole is the closed set of roles a credential can be tagged with.
type AccessRole string

const (
	RoleVisitor   AccessRole = "visitor"
	RoleResident  AccessRole = "resident"
	RoleEmployee  AccessRole = "employee"
	RoleProvider  AccessRole = "provider"
	RoleDependent AccessRole = "dependent"
	RoleAssociate AccessRole = "associate"

	// RoleOperator is a directory-only role for concierge/security staff
	// allowed to drive the gate from the dashboard. It is never encoded
	// into a credential.
	RoleOperator AccessRole = "operator"
)

// CredentialPayload is the unit of trust encoded into a QR token.
// The JSON keys are the wire format and must not change: tokens already
// issued to residents and visitors carry them.
type CredentialPayload struct {
	Role        AccessRole `json:"t,omitempty"`
	SubjectID   string     `json:"id"`
	SubjectName string     `json:"nm"`
	ExpiresAt   int64      `json:"exp"` // epoch millis
	Unit        string     `json:"unt,omitempty"`
}

// IsComplete reports whether the payload carries every required field.
// Role and Unit are optional so legacy tokens still decode.
func (p *CredentialPayload) IsComplete() bool {
	return p.SubjectID != "" && p.SubjectName != "" && p.ExpiresAt != 0
}

// ExpiredAt reports whether the payload is expired at the given instant.
func (p *CredentialPayload) ExpiredAt(now time.Time) bool {
	return now.UnixMilli() > p.ExpiresAt
}

// Verdict reasons. Handlers and logs rely on these exact strings to
// distinguish the rejection classes.
const (
	ReasonGranted           = "access granted"
	ReasonMalformed         = "unreadable code"
	ReasonIncompletePayload = "invalid credential format"
	ReasonExpired           = "credential expired"
)

// AccessVerdict is the outcome of validating a token at a specific instant.
// It is derived fresh on every validation call and never cached.
type AccessVerdict struct {
	Accepted bool               `json:"accepted"`
	Reason   string             `json:"reason"`
	Payload  *CredentialPayload `json:"payload,omitempty"`
}

// GatePhase is the state of the simulated entry point.
type GatePhase string

const (
	GateLocked   GatePhase = "locked"
	GateUnlocked GatePhase = "unlocked"
)

// GateStatus is a snapshot of the gate state machine.
// RelockDeadline is nil whenever the gate is locked.
type GateStatus struct {
	Phase          GatePhase  `json:"phase"`
	RelockDeadline *time.Time `json:"relock_deadline,omitempty"`
}

// ApprovalChannel identifies how the host is asked to authorize a visitor.
type ApprovalChannel string

const (
	ChannelEmail    ApprovalChannel = "email"
	ChannelWhatsApp ApprovalChannel = "whatsapp"
	ChannelSMS      ApprovalChannel = "sms"
)

// PendingAuthorization represents a visitor entry awaiting host approval.
type PendingAuthorization struct {
	ID          string          `json:"id"`
	VisitorName string          `json:"visitor_name"`
	HostName    string          `json:"host_name"`
	HostUnit    string          `json:"host_unit"`
	HostPhone   string          `json:"host_phone,omitempty"`
	HostEmail   string          `json:"host_email,omitempty"`
	Purpose     string          `json:"purpose,omitempty"`
	Channel     ApprovalChannel `json:"channel"`
	RequestedAt time.Time       `json:"requested_at"`
}

// AccessMethod is how an access attempt reached the gate.
type AccessMethod string

const (
	MethodQR     AccessMethod = "qr"
	MethodFacial AccessMethod = "facial"
	MethodManual AccessMethod = "manual"
	MethodAuto   AccessMethod = "auto"
)

// AccessDirection of a scan at the entry point.
type AccessDirection string

const (
	DirectionEntry AccessDirection = "entry"
	DirectionExit  AccessDirection = "exit"
)

// AccessEvent is one line of the gate audit trail.
type AccessEvent struct {
	ID          uint
	SubjectName string
	Role        AccessRole
	Method      AccessMethod
	Direction   AccessDirection
	Granted     bool
	Reason      string
	Confidence  int
	OccurredAt  time.Time
}

// FaceAnalysis is the typed result of the external AI collaborator.
// The boundary adapter maps the collaborator's free-text response into
// this shape so the core never inspects substrings to decide control flow.
type FaceAnalysis struct {
	Matched    bool   `json:"matched"`
	Detail     string `json:"detail"`
	Confidence int    `json:"confidence"`
}

// Person is an entry in the condominium directory: residents, employees,
// providers, dependents, associates and dashboard operators.
type Person struct {
	ID           uint
	Name         string
	Email        string
	Phone        string
	Role         AccessRole
	Unit         string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is an operator dashboard session.
type Session struct {
	ID        string
	PersonID  uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AuthResult is the outcome of an operator login.
type AuthResult struct {
	Person      *Person
	AccessToken string
	SessionID   string
	ExpiresIn   int64
}

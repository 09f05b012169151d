package domain

import "errors"

// Credential errors
var (
	ErrCredentialMalformed  = errors.New("malformed credential token")
	ErrCredentialIncomplete = errors.New("incomplete credential payload")
	ErrCredentialExpired    = errors.New("credential has expired")
)

// Approval queue errors
var (
	ErrApprovalNotFound = errors.New("pending authorization not found")
	ErrResendThrottled  = errors.New("resend window still active")
)

// Directory errors
var (
	ErrPersonNotFound      = errors.New("person not found")
	ErrPersonAlreadyExists = errors.New("person already exists")
	ErrPersonInactive      = errors.New("person account is inactive")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// Operator token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Collaborator errors
var (
	ErrAnalysisUnavailable = errors.New("analysis service unavailable")
)

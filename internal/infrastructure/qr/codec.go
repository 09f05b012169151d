package qr

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/you/gatesvc/domain"
)

// CodecImpl implements domain.TokenCodec as base64-wrapped canonical JSON.
// The base64 alphabet keeps the token printable ASCII so it survives URL
// query parameters and QR rendering, while the JSON body preserves UTF-8
// subject names (accents included) byte for byte.
type CodecImpl struct{}

// NewCodec creates a new token codec
func NewCodec() domain.TokenCodec {
	return &CodecImpl{}
}

// Encode implements domain.TokenCodec
func (c *CodecImpl) Encode(payload *domain.CredentialPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal credential payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode implements domain.TokenCodec. It never panics on garbage input:
// any structural failure maps to domain.ErrCredentialMalformed.
func (c *CodecImpl) Decode(token string) (*domain.CredentialPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, domain.ErrCredentialMalformed
	}

	// The body must be a JSON object; bare scalars and null decode
	// cleanly into a zero struct and would be misreported as incomplete
	// instead of malformed.
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, domain.ErrCredentialMalformed
	}

	var payload domain.CredentialPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, domain.ErrCredentialMalformed
	}
	return &payload, nil
}

// Compile-time interface compliance verification
var _ domain.TokenCodec = (*CodecImpl)(nil)

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/you/gatesvc/domain"
)

// CredentialHandlers handles QR credential issuance and inspection
type CredentialHandlers struct {
	credentialSvc domain.CredentialService
}

// NewCredentialHandlers creates new credential handlers
func NewCredentialHandlers(credentialSvc domain.CredentialService) *CredentialHandlers {
	return &CredentialHandlers{credentialSvc: credentialSvc}
}

// IssueRequest represents a credential issuance request
type IssueRequest struct {
	SubjectID     string  `json:"subject_id,omitempty"`
	SubjectName   string  `json:"subject_name" binding:"required"`
	Role          string  `json:"role" binding:"required"`
	ValidityHours float64 `json:"validity_hours" binding:"required,gt=0"`
	Unit          string  `json:"unit,omitempty"`
}

// ValidateRequest represents a dry-run token inspection
type ValidateRequest struct {
	Token string `json:"token" binding:"required"`
}

var issuableRoles = map[domain.AccessRole]bool{
	domain.RoleVisitor:   true,
	domain.RoleResident:  true,
	domain.RoleEmployee:  true,
	domain.RoleProvider:  true,
	domain.RoleDependent: true,
	domain.RoleAssociate: true,
}

// Issue handles credential creation (requires authentication)
func (h *CredentialHandlers) Issue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := domain.AccessRole(req.Role)
	if !issuableRoles[role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown credential role"})
		return
	}

	subjectID := req.SubjectID
	if subjectID == "" {
		subjectID = uuid.NewString()
	}

	token, err := h.credentialSvc.Issue(c.Request.Context(), subjectID, req.SubjectName, role, req.ValidityHours, req.Unit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue credential"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"token":      token,
			"subject_id": subjectID,
		},
	})
}

// Validate inspects a token without driving the gate. Unlike Scan it
// never unlocks anything, so operators can preview a code safely.
func (h *CredentialHandlers) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verdict := h.credentialSvc.Validate(c.Request.Context(), req.Token)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"verdict": verdict}})
}

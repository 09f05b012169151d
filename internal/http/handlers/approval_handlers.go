package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/you/gatesvc/domain"
)

// ApprovalHandlers handles visitor registration and the pending queue
type ApprovalHandlers struct {
	approvalSvc   domain.ApprovalService
	credentialSvc domain.CredentialService
	personRepo    domain.PersonRepository
}

// NewApprovalHandlers creates new approval handlers
func NewApprovalHandlers(approvalSvc domain.ApprovalService, credentialSvc domain.CredentialService, personRepo domain.PersonRepository) *ApprovalHandlers {
	return &ApprovalHandlers{
		approvalSvc:   approvalSvc,
		credentialSvc: credentialSvc,
		personRepo:    personRepo,
	}
}

// RegisterVisitorRequest represents a visitor arriving at the concierge.
// Channel "qr_instant" issues a short-lived credential on the spot; the
// notification channels queue the visitor until the host answers.
type RegisterVisitorRequest struct {
	VisitorName string `json:"visitor_name" binding:"required"`
	HostUnit    string `json:"host_unit" binding:"required"`
	Purpose     string `json:"purpose,omitempty"`
	Channel     string `json:"channel" binding:"required"`
}

const channelInstantQR = "qr_instant"

// RegisterVisitor handles a new visitor registration (requires authentication)
func (h *ApprovalHandlers) RegisterVisitor(c *gin.Context) {
	var req RegisterVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Channel == channelInstantQR {
		subjectID := uuid.NewString()
		token, err := h.credentialSvc.Issue(c.Request.Context(), subjectID, req.VisitorName, domain.RoleVisitor, 2, req.HostUnit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue visitor credential"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"token": token, "subject_id": subjectID}})
		return
	}

	channel := domain.ApprovalChannel(req.Channel)
	switch channel {
	case domain.ChannelEmail, domain.ChannelWhatsApp, domain.ChannelSMS:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown notification channel"})
		return
	}

	host, err := h.resolveHost(c, req.HostUnit)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active resident found for unit"})
		return
	}

	auth, err := h.approvalSvc.Enqueue(c.Request.Context(), &domain.PendingAuthorization{
		VisitorName: req.VisitorName,
		HostName:    host.Name,
		HostUnit:    req.HostUnit,
		HostPhone:   host.Phone,
		HostEmail:   host.Email,
		Purpose:     req.Purpose,
		Channel:     channel,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue authorization"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"authorization": auth}})
}

// resolveHost picks the unit's resident as notification target. Dependents
// and associates share the unit but are not asked to authorize visitors.
func (h *ApprovalHandlers) resolveHost(c *gin.Context, unit string) (*domain.Person, error) {
	people, err := h.personRepo.FindByUnit(c.Request.Context(), unit)
	if err != nil {
		return nil, err
	}
	for _, p := range people {
		if p.Role == domain.RoleResident {
			return p, nil
		}
	}
	return nil, domain.ErrPersonNotFound
}

// List returns all pending authorizations, oldest first (requires
// authentication)
func (h *ApprovalHandlers) List(c *gin.Context) {
	pending, err := h.approvalSvc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending authorizations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"pending": pending}})
}

// ForceApprove removes a pending entry and unlocks the gate for the
// visitor (requires authentication)
func (h *ApprovalHandlers) ForceApprove(c *gin.Context) {
	id := c.Param("id")
	if err := h.approvalSvc.ForceApprove(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrApprovalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Authorization not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve authorization"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"approved": id}})
}

// Resend re-dispatches the host notification for a pending entry
// (requires authentication)
func (h *ApprovalHandlers) Resend(c *gin.Context) {
	id := c.Param("id")
	if err := h.approvalSvc.Resend(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrApprovalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Authorization not found"})
		case errors.Is(err, domain.ErrResendThrottled):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Notification already sent recently"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resend notification"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"resent": id}})
}

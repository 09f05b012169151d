package handlers

import (
	"encoding/base64"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/gatesvc/domain"
)

// AccessHandlers handles scan, gate and audit-trail HTTP requests
type AccessHandlers struct {
	credentialSvc domain.CredentialService
	gate          domain.GateController
	analyzer      domain.FaceAnalyzer
	events        domain.AccessEventRepository
}

// NewAccessHandlers creates new access handlers
func NewAccessHandlers(credentialSvc domain.CredentialService, gate domain.GateController, analyzer domain.FaceAnalyzer, events domain.AccessEventRepository) *AccessHandlers {
	return &AccessHandlers{
		credentialSvc: credentialSvc,
		gate:          gate,
		analyzer:      analyzer,
		events:        events,
	}
}

// ScanRequest represents a token scan at the entry point
type ScanRequest struct {
	Token     string `json:"token" binding:"required"`
	Direction string `json:"direction,omitempty"`
}

// UnlockRequest represents a manual operator unlock
type UnlockRequest struct {
	Reason string `json:"reason,omitempty"`
}

// FaceScanRequest carries a base64-encoded camera frame
type FaceScanRequest struct {
	Image string `json:"image" binding:"required"`
}

// Scan validates a scanned token and feeds the verdict into the gate.
func (h *AccessHandlers) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	direction := domain.DirectionEntry
	if req.Direction == string(domain.DirectionExit) {
		direction = domain.DirectionExit
	}

	verdict := h.credentialSvc.Validate(c.Request.Context(), req.Token)
	h.gate.Apply(c.Request.Context(), verdict, direction)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"verdict": verdict,
			"gate":    h.gate.Status(),
		},
	})
}

// Unlock handles a manual operator unlock (requires authentication)
func (h *AccessHandlers) Unlock(c *gin.Context) {
	var req UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "manual trigger (button)"
	}

	h.gate.Unlock(c.Request.Context(), domain.MethodManual, reason)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"gate": h.gate.Status()}})
}

// Lock handles a manual operator lock (requires authentication)
func (h *AccessHandlers) Lock(c *gin.Context) {
	h.gate.Lock(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"gate": h.gate.Status()}})
}

// Status reports the current gate phase and relock deadline
func (h *AccessHandlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"gate": h.gate.Status()}})
}

// FaceScan runs the external analysis on a camera frame. Collaborator
// failures are mapped to a not-matched answer; they never surface as a
// 5xx from the gate flow.
func (h *AccessHandlers) FaceScan(c *gin.Context) {
	var req FaceScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be base64 encoded"})
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), image)
	if err != nil {
		log.Printf("FACE_ANALYSIS_FAILED: error=%v", err)
		analysis = &domain.FaceAnalysis{Matched: false, Detail: "analysis unavailable"}
	}

	if h.events != nil {
		if recErr := h.events.Record(c.Request.Context(), &domain.AccessEvent{
			Method:     domain.MethodFacial,
			Direction:  domain.DirectionEntry,
			Granted:    analysis.Matched,
			Reason:     analysis.Detail,
			Confidence: analysis.Confidence,
		}); recErr != nil {
			log.Printf("ACCESS_EVENT_RECORD_FAILED: error=%v", recErr)
		}
	}

	if analysis.Matched {
		h.gate.Unlock(c.Request.Context(), domain.MethodFacial, "biometric match")
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"analysis": analysis,
			"gate":     h.gate.Status(),
		},
	})
}

// History returns the most recent audit trail entries (requires
// authentication)
func (h *AccessHandlers) History(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}
		limit = parsed
	}

	events, err := h.events.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load access history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"events": events}})
}

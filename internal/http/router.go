package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/gatesvc/internal/http/handlers"
	"github.com/you/gatesvc/internal/http/middleware"
)

func BuildRouter(
	ah *handlers.AuthHandlers,
	ach *handlers.AccessHandlers,
	ch *handlers.CredentialHandlers,
	aph *handlers.ApprovalHandlers,
	ph *handlers.PolicyHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login", ah.Login)

	// The scanner kiosk at the entry point is unauthenticated hardware;
	// the token itself is the credential being checked.
	r.POST("/access/scan", ach.Scan)
	r.POST("/access/face", ach.FaceScan)
	r.GET("/access/status", ach.Status)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)
	v.POST("/access/unlock", ach.Unlock)
	v.POST("/access/lock", ach.Lock)
	v.GET("/access/events", ach.History)
	v.POST("/credentials", ch.Issue)
	v.POST("/credentials/validate", ch.Validate)
	v.POST("/visitors", aph.RegisterVisitor)
	v.GET("/approvals", aph.List)
	v.POST("/approvals/:id/approve", aph.ForceApprove)
	v.POST("/approvals/:id/resend", aph.Resend)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}

package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/gatesvc/internal/config"
	httpx "github.com/you/gatesvc/internal/http"
	"github.com/you/gatesvc/internal/http/handlers"
	"github.com/you/gatesvc/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	accessH := handlers.NewAccessHandlers(c.CredentialSvc, c.Gate, c.Analyzer, c.EventRepo)
	credH := handlers.NewCredentialHandlers(c.CredentialSvc)
	apprH := handlers.NewApprovalHandlers(c.ApprovalSvc, c.CredentialSvc, c.PersonRepo)
	polH := handlers.NewPolicyHandlers(c.PolicySvc)

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)
	casbinMW := middleware.NewCasbinMW(c.Enforcer)

	r := httpx.BuildRouter(authH, accessH, credH, apprH, polH, jwtMW, casbinMW)

	seedPolicies(c)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default operator RBAC on first boot.
func seedPolicies(c *Container) {
	policies, _ := c.Enforcer.GetPolicy()
	if len(policies) > 0 {
		return
	}
	c.Enforcer.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
	c.Enforcer.AddPolicy("role_operator", "/auth/me", "GET")
	c.Enforcer.AddPolicy("role_operator", "/auth/logout", "POST")
	c.Enforcer.AddPolicy("role_operator", "/access/*", "(GET|POST)")
	c.Enforcer.AddPolicy("role_operator", "/credentials*", "POST")
	c.Enforcer.AddPolicy("role_operator", "/visitors", "POST")
	c.Enforcer.AddPolicy("role_operator", "/approvals*", "(GET|POST)")
	_ = c.Enforcer.SavePolicy()
	log.Println("casbin: seeded default policies")
}

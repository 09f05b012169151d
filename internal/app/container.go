package app

import (
	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/gatesvc/domain"
	"github.com/you/gatesvc/internal/config"
	"github.com/you/gatesvc/internal/infrastructure/auth"
	"github.com/you/gatesvc/internal/infrastructure/database"
	"github.com/you/gatesvc/internal/infrastructure/notifications"
	"github.com/you/gatesvc/internal/infrastructure/qr"
	"github.com/you/gatesvc/internal/infrastructure/repositories"
	"github.com/you/gatesvc/internal/infrastructure/vision"
	"github.com/you/gatesvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Enforcer    *casbin.Enforcer

	// Repositories
	PersonRepo   domain.PersonRepository
	SessionRepo  domain.SessionRepository
	ApprovalRepo domain.ApprovalRepository
	EventRepo    domain.AccessEventRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	CredentialSvc   domain.CredentialService
	Gate            domain.GateController
	ApprovalSvc     domain.ApprovalService
	AuthSvc         domain.AuthService
	PolicySvc       domain.PolicyService
	Analyzer        domain.FaceAnalyzer
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return nil, err
	}
	c.DB = gdb

	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return nil, err
	}
	c.Enforcer = cas.E

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	c.PersonRepo = repositories.NewPersonRepository(gdb)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, cfg.SessionTTL)
	c.ApprovalRepo = repositories.NewApprovalRepository(c.RedisClient)
	c.EventRepo = repositories.NewAccessEventRepository(gdb)

	clock := services.NewSystemClock()

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL)
	c.NotificationSvc = notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	c.Analyzer = vision.NewAnalyzer(cfg.VisionEndpoint, cfg.VisionAPIKey, cfg.FacialThreshold, cfg.VisionTimeout)

	c.CredentialSvc = services.NewCredentialService(qr.NewCodec(), clock)
	c.Gate = services.NewGateService(clock, c.EventRepo, cfg.AutoRelockDelay)
	c.ApprovalSvc = services.NewApprovalService(c.ApprovalRepo, c.NotificationSvc, c.Gate, c.RedisClient, services.ApprovalConfig{
		ResendWindow: cfg.ResendWindow,
	})
	c.AuthSvc = services.NewAuthService(c.PersonRepo, c.SessionRepo, c.PasswordSvc, c.TokenSvc)
	c.PolicySvc = services.NewPolicyService(cas.E)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}

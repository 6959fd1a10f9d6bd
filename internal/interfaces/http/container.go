package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"banking/internal/application/user"
	"banking/internal/application/user/usecases"
	domainUser "banking/internal/domain/user"
	"banking/internal/infrastructure/auth"
	"banking/internal/infrastructure/cache"
	"banking/internal/infrastructure/config"
	"banking/internal/infrastructure/email"
	"banking/internal/infrastructure/metrics"
	"banking/internal/infrastructure/permission"
	"banking/internal/infrastructure/ratelimit"
	"banking/internal/infrastructure/repository"
	"banking/internal/interfaces/http/handlers"
	"banking/internal/interfaces/http/middleware"
	shareddb "banking/internal/shared/db"
	"banking/internal/shared/id"
	"banking/internal/shared/logger"
)

// Container holds the infrastructure components, application service, handlers
// and middlewares, and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	metrics  *metrics.Metrics
	jwtSvc   *auth.JWTService
	enforcer *permission.Enforcer
	limiter  ratelimit.RateLimiter

	userService *user.Service

	// Handlers
	healthHandler   *handlers.HealthHandler
	identityHandler *handlers.IdentityHandler
	authHandler     *handlers.AuthHandler
	userHandler     *handlers.UserHandler

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer creates a new Container with all dependencies wired together
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(ctx); err != nil {
		c.Shutdown()
		return nil, err
	}

	c.initUserService()
	c.initHandlers()

	return c, nil
}

// initInfrastructure sets up metrics, tokens, permissions and the rate limiter backend
func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.cfg

	c.metrics = metrics.New()

	c.jwtSvc = auth.NewJWTService(
		cfg.Auth.JWT.Secret,
		cfg.Auth.JWT.Issuer,
		cfg.Auth.JWT.AccessExpMinutes,
		cfg.Auth.JWT.RefreshExpDays,
	)

	enforcer, err := permission.NewEnforcer(c.db, c.log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	if err := permission.InitDefaultPolicies(enforcer, c.log); err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}
	c.enforcer = enforcer

	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return err
		}
		c.redis = client
		c.limiter = ratelimit.NewRedisRateLimiter(client)
		c.log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	} else {
		c.limiter = ratelimit.NewMemoryRateLimiter()
		c.log.Infow("redis disabled, using in-memory rate limiter")
	}

	return nil
}

func (c *Container) initUserService() {
	cfg := c.cfg
	log := c.log

	var emailSender usecases.EmailSender
	if cfg.Email.Enabled {
		emailSender = email.NewSMTPEmailService(email.SMTPConfig{
			Host:            cfg.Email.SMTPHost,
			Port:            cfg.Email.SMTPPort,
			Username:        cfg.Email.SMTPUser,
			Password:        cfg.Email.SMTPPassword,
			FromAddress:     cfg.Email.FromAddress,
			FromName:        cfg.Email.FromName,
			BaseURL:         cfg.Server.BaseURL,
			AppName:         cfg.Email.FromName,
			VerificationTTL: cfg.Auth.Token.VerificationTTL(),
		}, log.Named("email"))
	} else {
		emailSender = email.NewLogEmailSender(cfg.Server.BaseURL, log.Named("email"))
	}

	c.userService = user.NewService(user.ServiceDeps{
		UserRepo:       repository.NewUserRepository(c.db, log),
		TxManager:      shareddb.NewTransactionManager(c.db),
		PasswordHasher: auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		TokenIssuer:    &jwtServiceAdapter{c.jwtSvc},
		EmailSender:    emailSender,
		GenerateSID:    id.NewUserSID,
		SecurityPolicy: &domainUser.SecurityPolicy{
			MaxLoginAttempts:       cfg.Auth.Lockout.MaxAttempts,
			LockoutDurationMinutes: cfg.Auth.Lockout.DurationMinutes,
		},
		Metrics: c.metrics,
		Register: usecases.RegisterOptions{
			VerificationTTL: cfg.Auth.Token.VerificationTTL(),
			MinimumAge:      cfg.Auth.MinimumAge,
		},
		Logger: log.Named("user"),
	})
}

func (c *Container) initHandlers() {
	log := c.log

	var pinger handlers.DatabasePinger
	if sqlDB, err := c.db.DB(); err == nil {
		pinger = sqlDB
	} else {
		log.Warnw("database handle unavailable for health checks", "error", err)
	}

	c.healthHandler = handlers.NewHealthHandler(pinger, log)
	c.identityHandler = handlers.NewIdentityHandler(c.userService, log)
	c.authHandler = handlers.NewAuthHandler(c.userService, log)
	c.userHandler = handlers.NewUserHandler(c.userService, log)

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	c.rateLimiter = middleware.NewRateLimiter(c.limiter, ratelimit.Rule{
		Limit:  c.cfg.RateLimit.Requests,
		Window: c.cfg.RateLimit.Window(),
	}, log)
}

// Shutdown releases the connections owned by the container
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
		c.redis = nil
	}
}

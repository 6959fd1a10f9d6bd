package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"banking/internal/infrastructure/config"
	"banking/internal/infrastructure/permission"
	"banking/internal/interfaces/http/middleware"
	"banking/internal/shared/logger"
	"banking/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	engine    *gin.Engine
	container *Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	utils.RegisterBindingValidators()

	container, err := NewContainer(ctx, db, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Router{
		engine:    container.engine,
		container: container,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(c.log))
	r.engine.Use(middleware.Recovery(c.log))
	r.engine.Use(middleware.Metrics(c.metrics))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.APIVersion())

	r.engine.GET("/", c.healthHandler.Root)
	r.engine.GET("/health", c.healthHandler.Health)
	r.engine.GET("/version", c.healthHandler.Version)
	r.engine.GET("/metrics", gin.WrapH(c.metrics.Handler()))

	// callers may be anonymous; a valid token only tags the request log with the user
	r.engine.POST("/validate", c.authMiddleware.OptionalAuth(), c.identityHandler.Validate)

	r.setupAuthRoutes()
	r.setupAdminRoutes()
}

func (r *Router) setupAuthRoutes() {
	c := r.container

	auth := r.engine.Group("/auth")
	{
		auth.POST("/register", c.rateLimiter.Limit("register"), c.authHandler.Register)
		auth.POST("/login", c.rateLimiter.Limit("login"), c.authHandler.Login)
		auth.POST("/verify-email", c.authHandler.VerifyEmail)
		auth.GET("/verify-email", c.authHandler.VerifyEmail)
		auth.GET("/me",
			c.authMiddleware.RequireAuth(),
			c.permissionMiddleware.RequirePermission(permission.ResourceProfile, permission.ActionRead),
			c.authHandler.GetCurrentUser,
		)
	}
}

func (r *Router) setupAdminRoutes() {
	c := r.container

	users := r.engine.Group("/admin/users")
	users.Use(c.authMiddleware.RequireAuth())
	{
		users.GET("",
			c.permissionMiddleware.RequirePermission(permission.ResourceUsers, permission.ActionList),
			c.userHandler.ListUsers,
		)
		users.GET("/:sid",
			c.permissionMiddleware.RequirePermission(permission.ResourceUsers, permission.ActionRead),
			c.userHandler.GetUser,
		)
		users.PATCH("/:sid/status",
			c.permissionMiddleware.RequirePermission(permission.ResourceUsers, permission.ActionUpdateStatus),
			c.userHandler.UpdateUserStatus,
		)
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Shutdown releases resources held by the router's dependencies
func (r *Router) Shutdown() {
	r.container.Shutdown()
}

package leave

import (
	"time"

	"go-hris-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type RouteConfig struct {
	JWTSecret      string
	Redis          *redis.Client
	IdempotencyTTL time.Duration
	RateLimit      rate.Limit
	RateBurst      int
	Logger         *zap.Logger
}

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	cfg RouteConfig,
) {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = rate.Inf
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.L()
	}

	authed := r.Group("")
	authed.Use(
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.ContextLogger(logger),
		middleware.RateLimitByUser(cfg.RateLimit, cfg.RateBurst),
	)

	submit := []gin.HandlerFunc{middleware.RBACAuthorize(rbacService, "leave", "create")}
	if cfg.Redis != nil {
		submit = append(submit, middleware.Idempotency(cfg.Redis, cfg.IdempotencyTTL, logger))
	}
	submit = append(submit, handler.Submit)

	requests := authed.Group("/leave-requests")
	{
		requests.POST("", submit...)
		requests.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.FindAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.FindOne)
		requests.PATCH("/:id/decision", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Decide)
		requests.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), handler.Remove)
	}

	authed.GET("/employees/:id/leave-balances", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetBalances)
}

package app

import (
	"database/sql"
	"net/http"

	"go-hris-leave/internal/config"
	"go-hris-leave/internal/employee"
	"go-hris-leave/internal/leave"
	"go-hris-leave/internal/messaging/kafka"
	"go-hris-leave/internal/rbac"
	"go-hris-leave/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Services ---
	leaveService := leave.NewService(db, leaveRepo, employeeRepo,
		leave.WithLogger(logger),
		leave.WithOutbox(outboxRepo),
		leave.WithCounter(counterRepo),
	)

	// --- Handlers ---
	leaveHandler := leave.NewHandler(leaveService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := router.Group("/api/v1")
	{
		leave.RegisterRoutes(api, leaveHandler, rbacService, leave.RouteConfig{
			JWTSecret:      cfg.JWTSecret,
			Redis:          rdb,
			IdempotencyTTL: cfg.IdempotencyTTL,
			RateLimit:      rate.Limit(cfg.RateLimitRPS),
			RateBurst:      cfg.RateLimitBurst,
			Logger:         logger,
		})
		rbac.RegisterRoutes(api, rbacHandler, cfg.JWTSecret)
	}

	return nil
}

package app

import (
	"go-hris-leave/internal/config"
	"go-hris-leave/internal/middleware"
	"go-hris-leave/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects infrastructure and registers every module on router.
// The returned cleanup closes the connections it opened.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres(), cfg.DBMaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBMaxRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, idempotency keys disabled")
	}

	router.Use(middleware.RequestID())

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb); err != nil {
		_ = sqlDB.Close()
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, err
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}
	return cleanup, nil
}

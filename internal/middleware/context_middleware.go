package middleware

import (
	"go-hris-leave/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger copies request metadata from gin into the request context and
// attaches a logger carrying it. Run it after AuthMiddleware so identity is known.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		rid := contextutil.GetRequestID(ctx)
		if rid == "" {
			rid = c.GetString("request_id")
			ctx = contextutil.WithRequestID(ctx, rid)
		}
		uid := c.GetString("user_id")
		tid := c.GetString("tenant_id")

		ctx = contextutil.WithUserID(ctx, uid)
		ctx = contextutil.WithTenantID(ctx, tid)
		ctx = contextutil.WithLogger(ctx, logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", uid),
			zap.String("tenant_id", tid),
		))

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

package middleware

import (
	"context"
	"net/http"

	"go-hris-leave/internal/domain"
	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetString("employee_id")
		tenantID := c.GetString("tenant_id")
		if employeeID == "" || tenantID == "" {
			response.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
			return
		}

		allowed, err := service.Enforce(c.Request.Context(), domain.EnforceRequest{
			EmployeeID: employeeID,
			TenantID:   tenantID,
			Resource:   resource,
			Action:     action,
		})
		if err != nil {
			abortWith(c, apperror.ErrInternal)
			return
		}
		if !allowed {
			response.Abort(c,
				apperror.ErrForbidden.HTTPStatus,
				apperror.ErrForbidden.Code,
				apperror.ErrForbidden.Message,
				gin.H{"required": resource + ":" + action},
			)
			return
		}
		c.Next()
	}
}

package middleware

import (
	"errors"
	"fmt"
	"strings"

	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Abort(c, err.HTTPStatus, err.Code, err.Message, nil)
}

func bearerToken(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && token != "" {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware validates an HS256 token and exposes user_id, employee_id,
// tenant_id and role on the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Abort(c, apperror.ErrUnauthorized.HTTPStatus, apperror.CodeUnauthorized, "Token not found", nil)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, apperror.ErrTokenExpired)
				return
			}
			abortWith(c, apperror.ErrInvalidToken)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, apperror.ErrInvalidToken)
			return
		}

		ids := map[string]string{}
		for _, key := range []string{"user_id", "tenant_id", "employee_id"} {
			v, _ := claims[key].(string)
			if _, err := uuid.Parse(v); err != nil {
				response.Abort(c, apperror.ErrInvalidToken.HTTPStatus, apperror.CodeInvalidToken, key+" not found in token", nil)
				return
			}
			ids[key] = v
		}
		role, _ := claims["role"].(string)

		c.Set("user_id", ids["user_id"])
		c.Set("user_id_validated", ids["user_id"])
		c.Set("employee_id", ids["employee_id"])
		c.Set("tenant_id", ids["tenant_id"])
		c.Set("role", role)

		c.Next()
	}
}

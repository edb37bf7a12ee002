package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoplens/backend/internal/interfaces/http/dto"
)

// AdminKeyHeader carries the shared operator secret for onboarding calls
const AdminKeyHeader = "X-Admin-Key"

// AdminKeyMiddleware guards operator-only routes with a shared key.
// An empty configured key disables the routes entirely.
func AdminKeyMiddleware(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKey == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrCodeForbidden,
				"Admin access is not configured",
			))
			return
		}

		provided := c.GetHeader(AdminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized,
				"Invalid admin key",
			))
			return
		}

		c.Next()
	}
}

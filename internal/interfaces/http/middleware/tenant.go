package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoplens/backend/internal/interfaces/http/dto"
)

// TenantParamKey is the path parameter carrying the addressed tenant
const TenantParamKey = "tenantId"

// TenantGuard rejects requests whose token is bound to a different tenant
// than the one addressed by the path. Anonymous requests pass; the guard
// only constrains identified callers.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimTenant := GetJWTTenantID(c)
		if claimTenant == "" {
			c.Next()
			return
		}

		pathTenant := c.Param(TenantParamKey)
		if pathTenant != "" && pathTenant != claimTenant {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrCodeForbidden,
				"Token is not valid for this tenant",
			))
			return
		}

		c.Next()
	}
}

// RequireTenantGuard is TenantGuard for routes where an identity is
// mandatory: anonymous requests are rejected with 401
func RequireTenantGuard() gin.HandlerFunc {
	guard := TenantGuard()
	return func(c *gin.Context) {
		if GetJWTTenantID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized,
				"Authentication required",
			))
			return
		}
		guard(c)
	}
}

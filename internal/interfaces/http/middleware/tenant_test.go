package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTenantGuard_MatchingTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestJWTService()
	tenantID := uuid.New()
	token, err := svc.GenerateToken(tenantID, uuid.New())
	require.NoError(t, err)

	router := gin.New()
	router.Use(OptionalJWTAuthMiddleware(svc), TenantGuard())
	router.GET("/sync/:tenantId/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sync/"+tenantID.String()+"/metrics", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTenantGuard_MismatchedTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestJWTService()
	token, err := svc.GenerateToken(uuid.New(), uuid.New())
	require.NoError(t, err)

	router := gin.New()
	router.Use(OptionalJWTAuthMiddleware(svc), TenantGuard())
	router.GET("/sync/:tenantId/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sync/"+uuid.NewString()+"/metrics", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
}

func TestTenantGuard_AnonymousPasses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(OptionalJWTAuthMiddleware(newTestJWTService()), TenantGuard())
	router.GET("/sync/:tenantId/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sync/"+uuid.NewString()+"/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireTenantGuard_AnonymousRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestJWTService()

	router := gin.New()
	router.Use(OptionalJWTAuthMiddleware(svc), RequireTenantGuard())
	router.POST("/events/:tenantId", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/events/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireTenantGuard_MatchingTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestJWTService()
	tenantID := uuid.New()
	token, err := svc.GenerateToken(tenantID, uuid.New())
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc, zap.NewNop()), RequireTenantGuard())
	router.POST("/events/:tenantId", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/events/"+tenantID.String(), nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

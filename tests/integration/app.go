package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventapp "github.com/shoplens/backend/internal/application/event"
	insightsapp "github.com/shoplens/backend/internal/application/insights"
	syncapp "github.com/shoplens/backend/internal/application/sync"
	tenantapp "github.com/shoplens/backend/internal/application/tenant"
	"github.com/shoplens/backend/internal/domain/shared"
	"github.com/shoplens/backend/internal/infrastructure/auth"
	"github.com/shoplens/backend/internal/infrastructure/cache"
	"github.com/shoplens/backend/internal/infrastructure/config"
	"github.com/shoplens/backend/internal/infrastructure/persistence"
	"github.com/shoplens/backend/internal/infrastructure/shopify"
	"github.com/shoplens/backend/internal/interfaces/http/handler"
	"github.com/shoplens/backend/internal/interfaces/http/middleware"
	"github.com/shoplens/backend/internal/interfaces/http/router"
)

const testAdminKey = "integration-admin-key"

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testApp wires the full HTTP stack over a real database and a fake
// Shopify Admin API, the way cmd/server does in production.
type testApp struct {
	engine     *gin.Engine
	jwtService *auth.JWTService
	db         *gorm.DB
}

type gormPinger struct {
	db *gorm.DB
}

func (p *gormPinger) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// newTestApp builds the application over the given database. shopifyURL
// points the Shopify adapter at a local fake Admin API server.
func newTestApp(t *testing.T, db *gorm.DB, shopifyURL string) *testApp {
	t.Helper()

	log := zap.NewNop()

	tenantRepo := persistence.NewGormTenantRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	eventRepo := persistence.NewGormEventRepository(db)
	insightsRepo := persistence.NewGormInsightsRepository(db)

	shopifyCfg := shopify.NewConfig()
	shopifyCfg.BaseURLOverride = shopifyURL
	gateway, err := shopify.NewAdapter(shopifyCfg)
	require.NoError(t, err)

	idemStore := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idemStore.Close() })

	syncService := syncapp.NewService(tenantRepo, productRepo, customerRepo, orderRepo, gateway, log)
	insightsService := insightsapp.NewService(insightsRepo, tenantRepo)
	eventService := eventapp.NewService(eventRepo, tenantRepo, idemStore, shared.DefaultIdempotencyConfig(), log)
	tenantService := tenantapp.NewService(tenantRepo, log)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "integration-secret-key-32-chars!!",
		Expiration: time.Hour,
		Issuer:     "shoplens-test",
	})

	engine := gin.New()
	engine.Use(middleware.RequestID())

	router.NewRouter(engine).
		Register(router.NewSyncRoutes(handler.NewSyncHandler(syncService, insightsService), jwtService)).
		Register(router.NewEventRoutes(handler.NewEventHandler(eventService, insightsService), jwtService, log)).
		Register(router.NewTenantRoutes(handler.NewTenantHandler(tenantService), testAdminKey)).
		Register(router.NewSystemRoutes(handler.NewSystemHandler(&gormPinger{db: db}))).
		Setup()

	return &testApp{engine: engine, jwtService: jwtService, db: db}
}

// request performs one HTTP request against the app and decodes nothing.
func (a *testApp) request(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// onboardTenant creates a tenant through the admin API and returns its ID
func (a *testApp) onboardTenant(t *testing.T, name, shopDomain, token string) uuid.UUID {
	t.Helper()

	w := a.request(t, http.MethodPost, "/api/v1/tenants", map[string]string{
		"name":             name,
		"shopDomain":       shopDomain,
		"adminAccessToken": token,
	}, map[string]string{"X-Admin-Key": testAdminKey})
	require.Equal(t, http.StatusCreated, w.Code, "onboarding failed: %s", w.Body.String())

	var resp struct {
		Data struct {
			ID uuid.UUID `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEqual(t, uuid.Nil, resp.Data.ID)
	return resp.Data.ID
}

// bearerFor issues a dashboard token bound to the given tenant
func (a *testApp) bearerFor(t *testing.T, tenantID uuid.UUID) string {
	t.Helper()

	token, err := a.jwtService.GenerateToken(tenantID, uuid.New())
	require.NoError(t, err)
	return "Bearer " + token
}

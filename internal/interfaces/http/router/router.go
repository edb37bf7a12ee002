// Package router assembles the versioned API surface from per-domain
// route registrars.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shoplens/backend/internal/infrastructure/auth"
	"github.com/shoplens/backend/internal/interfaces/http/handler"
	"github.com/shoplens/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered on Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes under the versioned API group
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// SyncRoutes registers the sync trigger and store metric endpoints.
// All routes take an optional bearer identity; a token bound to a
// different tenant than the path is rejected.
type SyncRoutes struct {
	handler    *handler.SyncHandler
	jwtService *auth.JWTService
}

// NewSyncRoutes creates the sync route registrar
func NewSyncRoutes(h *handler.SyncHandler, jwtService *auth.JWTService) *SyncRoutes {
	return &SyncRoutes{handler: h, jwtService: jwtService}
}

// RegisterRoutes implements RouteRegistrar
func (r *SyncRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sync/:tenantId")
	group.Use(middleware.OptionalJWTAuthMiddleware(r.jwtService), middleware.TenantGuard())
	{
		group.POST("/run", r.handler.Run)
		group.GET("/metrics/overview", r.handler.Overview)
		group.GET("/metrics/orders-by-date", r.handler.OrdersByDate)
		group.GET("/metrics/top-customers", r.handler.TopCustomers)
	}
}

// EventRoutes registers event ingestion and event metric endpoints.
// Ingestion requires an identity; the metric reads take an optional one.
type EventRoutes struct {
	handler    *handler.EventHandler
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewEventRoutes creates the event route registrar
func NewEventRoutes(h *handler.EventHandler, jwtService *auth.JWTService, logger *zap.Logger) *EventRoutes {
	return &EventRoutes{handler: h, jwtService: jwtService, logger: logger}
}

// RegisterRoutes implements RouteRegistrar
func (r *EventRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/events/:tenantId")

	ingest := group.Group("")
	ingest.Use(middleware.JWTAuthMiddleware(r.jwtService, r.logger), middleware.RequireTenantGuard())
	ingest.POST("", r.handler.Record)

	metrics := group.Group("/metrics")
	metrics.Use(middleware.OptionalJWTAuthMiddleware(r.jwtService), middleware.TenantGuard())
	{
		metrics.GET("/by-type", r.handler.ByType)
		metrics.GET("/by-date", r.handler.ByDate)
	}
}

// TenantRoutes registers the operator-only onboarding endpoints
type TenantRoutes struct {
	handler  *handler.TenantHandler
	adminKey string
}

// NewTenantRoutes creates the tenant route registrar
func NewTenantRoutes(h *handler.TenantHandler, adminKey string) *TenantRoutes {
	return &TenantRoutes{handler: h, adminKey: adminKey}
}

// RegisterRoutes implements RouteRegistrar
func (r *TenantRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/tenants")
	group.Use(middleware.AdminKeyMiddleware(r.adminKey))
	{
		group.POST("", r.handler.Onboard)
		group.GET("", r.handler.List)
	}
}

// SystemRoutes registers unauthenticated liveness endpoints
type SystemRoutes struct {
	handler *handler.SystemHandler
}

// NewSystemRoutes creates the system route registrar
func NewSystemRoutes(h *handler.SystemHandler) *SystemRoutes {
	return &SystemRoutes{handler: h}
}

// RegisterRoutes implements RouteRegistrar
func (r *SystemRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", r.handler.Health)
	rg.GET("/ping", r.handler.Ping)
}

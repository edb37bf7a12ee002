package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tenantapp "github.com/shoplens/backend/internal/application/tenant"
	"github.com/shoplens/backend/internal/domain/tenant"
	"github.com/shoplens/backend/internal/interfaces/http/middleware"
)

// TenantHandler handles tenant onboarding and listing
type TenantHandler struct {
	BaseHandler
	tenantService *tenantapp.Service
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *tenantapp.Service) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// OnboardTenantRequest carries the fields to connect a new store
type OnboardTenantRequest struct {
	Name             string `json:"name" binding:"required"`
	ShopDomain       string `json:"shopDomain" binding:"required"`
	AdminAccessToken string `json:"adminAccessToken" binding:"required"`
}

// TenantResponse is the public view of a tenant. The access token is
// never serialized.
type TenantResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	ShopDomain string    `json:"shopDomain"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toTenantResponse(t *tenant.Tenant) TenantResponse {
	return TenantResponse{
		ID:         t.ID,
		Name:       t.Name,
		ShopDomain: t.ShopDomain,
		CreatedAt:  t.CreatedAt,
	}
}

// Onboard godoc
// @Summary      Onboard a new tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body OnboardTenantRequest true "Onboarding request"
// @Success      201 {object} dto.Response{data=TenantResponse}
// @Router       /tenants [post]
func (h *TenantHandler) Onboard(c *gin.Context) {
	var req OnboardTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	created, err := h.tenantService.Onboard(c.Request.Context(), tenantapp.OnboardInput{
		Name:             req.Name,
		ShopDomain:       req.ShopDomain,
		AdminAccessToken: req.AdminAccessToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toTenantResponse(created))
}

// List godoc
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Success      200 {object} dto.Response{data=[]TenantResponse}
// @Router       /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.tenantService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		out = append(out, toTenantResponse(&tenants[i]))
	}
	h.Success(c, out)
}

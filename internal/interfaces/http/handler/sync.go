package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	insightsapp "github.com/shoplens/backend/internal/application/insights"
	syncapp "github.com/shoplens/backend/internal/application/sync"
	"github.com/shoplens/backend/internal/domain/integration"
)

// SyncHandler exposes the manual sync trigger and the store metric endpoints
type SyncHandler struct {
	BaseHandler
	syncService     *syncapp.Service
	insightsService *insightsapp.Service
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *syncapp.Service, insightsService *insightsapp.Service) *SyncHandler {
	return &SyncHandler{
		syncService:     syncService,
		insightsService: insightsService,
	}
}

// SyncRunResponse reports the outcome of one sync run
type SyncRunResponse struct {
	OK     bool          `json:"ok"`
	Counts syncapp.Counts `json:"counts"`
}

// OverviewResponse carries the headline store totals
type OverviewResponse struct {
	TotalCustomers int64   `json:"totalCustomers"`
	TotalOrders    int64   `json:"totalOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalProducts  int64   `json:"totalProducts"`
}

// DailyOrdersResponse is one day of the order series
type DailyOrdersResponse struct {
	Date    string  `json:"d"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// TopCustomerResponse is one ranked customer
type TopCustomerResponse struct {
	Email  string  `json:"email"`
	Orders int64   `json:"orders"`
	Spend  float64 `json:"spend"`
}

// Run godoc
// @Summary      Trigger a sync run for a tenant
// @Tags         sync
// @Produce      json
// @Success      200 {object} dto.Response{data=SyncRunResponse}
// @Router       /sync/{tenantId}/run [post]
func (h *SyncHandler) Run(c *gin.Context) {
	tenantID, err := tenantIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	counts, err := h.syncService.SyncTenant(c.Request.Context(), tenantID)
	if err != nil {
		if isUpstreamError(err) {
			h.BadGateway(c, "Store data could not be fetched")
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, SyncRunResponse{OK: true, Counts: *counts})
}

// Overview godoc
// @Summary      Get headline store totals
// @Tags         sync
// @Produce      json
// @Success      200 {object} dto.Response{data=OverviewResponse}
// @Router       /sync/{tenantId}/metrics/overview [get]
func (h *SyncHandler) Overview(c *gin.Context) {
	tenantID, err := tenantIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	overview, err := h.insightsService.Overview(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, OverviewResponse{
		TotalCustomers: overview.TotalCustomers,
		TotalOrders:    overview.TotalOrders,
		TotalRevenue:   decimalToFloat(overview.TotalRevenue),
		TotalProducts:  overview.TotalProducts,
	})
}

// OrdersByDate godoc
// @Summary      Get the daily order series
// @Tags         sync
// @Produce      json
// @Param        from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param        to   query string false "Inclusive end date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]DailyOrdersResponse}
// @Router       /sync/{tenantId}/metrics/orders-by-date [get]
func (h *SyncHandler) OrdersByDate(c *gin.Context) {
	tenantID, err := tenantIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	series, err := h.insightsService.OrdersByDate(c.Request.Context(), tenantID, c.Query("from"), c.Query("to"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]DailyOrdersResponse, 0, len(series))
	for _, m := range series {
		out = append(out, DailyOrdersResponse{
			Date:    m.Date,
			Orders:  m.Orders,
			Revenue: decimalToFloat(m.Revenue),
		})
	}
	h.Success(c, out)
}

// TopCustomers godoc
// @Summary      Get the customers ranked by total spend
// @Tags         sync
// @Produce      json
// @Success      200 {object} dto.Response{data=[]TopCustomerResponse}
// @Router       /sync/{tenantId}/metrics/top-customers [get]
func (h *SyncHandler) TopCustomers(c *gin.Context) {
	tenantID, err := tenantIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	ranked, err := h.insightsService.TopCustomers(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]TopCustomerResponse, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, TopCustomerResponse{
			Email:  m.Email,
			Orders: m.Orders,
			Spend:  decimalToFloat(m.Spend),
		})
	}
	h.Success(c, out)
}

func isUpstreamError(err error) bool {
	return errors.Is(err, integration.ErrGatewayUnavailable) ||
		errors.Is(err, integration.ErrGatewayRequestFailed) ||
		errors.Is(err, integration.ErrGatewayInvalidResponse)
}

func decimalToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

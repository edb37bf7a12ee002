package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	eventapp "github.com/shoplens/backend/internal/application/event"
	insightsapp "github.com/shoplens/backend/internal/application/insights"
	"github.com/shoplens/backend/internal/interfaces/http/middleware"
)

// EventHandler ingests behavioral events and serves their breakdowns
type EventHandler struct {
	BaseHandler
	eventService    *eventapp.Service
	insightsService *insightsapp.Service
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *eventapp.Service, insightsService *insightsapp.Service) *EventHandler {
	return &EventHandler{
		eventService:    eventService,
		insightsService: insightsService,
	}
}

// RecordEventRequest is one event submission
type RecordEventRequest struct {
	Type           string          `json:"type" binding:"required"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"`
}

// RecordEventResponse reports the stored event. Dedup is set when the
// submission replayed an earlier one.
type RecordEventResponse struct {
	OK    bool      `json:"ok"`
	ID    uuid.UUID `json:"id"`
	Dedup bool      `json:"dedup,omitempty"`
}

// EventTypeResponse is the event count for one type
type EventTypeResponse struct {
	Type  string `json:"type"`
	Count int64  `json:"cnt"`
}

// DailyEventsResponse is one day of the event series
type DailyEventsResponse struct {
	Date   string `json:"d"`
	Events int64  `json:"events"`
}

// Record godoc
// @Summary      Record a behavioral event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body RecordEventRequest true "Event payload"
// @Success      201 {object} dto.Response{data=RecordEventResponse}
// @Security     BearerAuth
// @Router       /events/{tenantId} [post]
func (h *EventHandler) Record(c *gin.Context) {
	tenantID, err := tenantIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.eventService.Record(c.Request.Context(), tenantID, eventapp.RecordInput{
		Type:           req.Type,
		Metadata:       string(req.Metadata),
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := RecordEventResponse{
		OK:    true,
		ID:    result.Event.ID,
		Dedup: result.Deduplicated,
	}
	if result.Deduplicated {
		h.Success(c, resp)
		return
	}
	h.Created(c, resp)
}

// ByType godoc
// @Summary      Get event counts per type
// @Tags         events
// @Produce      json
// @Success      200 {object} dto.Response{data=[]EventTypeResponse}
// @Router       /events/{tenantId}/metrics/by-type [get]
func (h *EventHandler) ByType(c *gin.Context) {
	tenantID, err := tenantIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	counts, err := h.insightsService.EventsByType(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]EventTypeResponse, 0, len(counts))
	for _, m := range counts {
		out = append(out, EventTypeResponse{Type: m.Type, Count: m.Count})
	}
	h.Success(c, out)
}

// ByDate godoc
// @Summary      Get the daily event series
// @Tags         events
// @Produce      json
// @Param        from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param        to   query string false "Inclusive end date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]DailyEventsResponse}
// @Router       /events/{tenantId}/metrics/by-date [get]
func (h *EventHandler) ByDate(c *gin.Context) {
	tenantID, err := tenantIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	series, err := h.insightsService.EventsByDate(c.Request.Context(), tenantID, c.Query("from"), c.Query("to"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]DailyEventsResponse, 0, len(series))
	for _, m := range series {
		out = append(out, DailyEventsResponse{Date: m.Date, Events: m.Count})
	}
	h.Success(c, out)
}

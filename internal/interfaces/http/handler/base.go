package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shoplens/backend/internal/domain/shared"
	"github.com/shoplens/backend/internal/interfaces/http/dto"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "X-Request-ID"

// BaseHandler carries the response helpers shared by every handler.
// Handlers embed it and speak through Success/Created/fail so the wire
// envelope stays uniform.
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDKey)
}

// tenantIDParam parses the :tenantId path parameter
func tenantIDParam(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("tenantId"))
}

func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 with the bad-request error code.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.fail(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// BadGateway sends a 502 when an upstream store call failed.
func (h *BaseHandler) BadGateway(c *gin.Context, message string) {
	h.fail(c, http.StatusBadGateway, dto.ErrCodeUpstream, message)
}

// HandleError maps domain errors to HTTP responses. Errors without a
// domain code collapse into an opaque 500 so internals never leak to
// API clients.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.fail(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	h.fail(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

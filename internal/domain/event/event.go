package event

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shoplens/backend/internal/domain/shared"
)

// Event is one behavioral event recorded against a tenant, such as a
// cart abandonment or a checkout start
type Event struct {
	shared.TenantEntity
	Type           string
	Metadata       string
	IdempotencyKey *string
}

// NewEvent creates an event. Metadata is the raw JSON payload attached by
// the caller, empty when none was sent.
func NewEvent(tenantID uuid.UUID, eventType, metadata string, idempotencyKey *string) (*Event, error) {
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return nil, shared.NewDomainError("INVALID_EVENT_TYPE", "event type is required")
	}
	if idempotencyKey != nil && strings.TrimSpace(*idempotencyKey) == "" {
		idempotencyKey = nil
	}
	return &Event{
		TenantEntity:   shared.NewTenantEntity(tenantID),
		Type:           eventType,
		Metadata:       metadata,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// Repository persists behavioral events
type Repository interface {
	// Save inserts the event. When the tenant already holds an event of
	// the same type under the same idempotency key it returns
	// shared.ErrAlreadyExists.
	Save(ctx context.Context, e *Event) error

	// FindByIdempotencyKey returns the event previously recorded under
	// the key, or shared.ErrNotFound
	FindByIdempotencyKey(ctx context.Context, tenantID uuid.UUID, eventType, key string) (*Event, error)

	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

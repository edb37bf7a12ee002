package models

import (
	"github.com/google/uuid"

	"github.com/shoplens/backend/internal/domain/event"
	"github.com/shoplens/backend/internal/domain/shared"
)

// Event is the persistence model for a behavioral event. The composite
// unique index backs idempotent ingestion: a NULL idempotency key never
// collides, so events without a key always insert.
type Event struct {
	BaseModel
	TenantID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_events_dedup"`
	Type           string    `gorm:"not null;uniqueIndex:idx_events_dedup"`
	Metadata       string
	IdempotencyKey *string `gorm:"uniqueIndex:idx_events_dedup"`
}

// TableName specifies the table name
func (Event) TableName() string {
	return "events"
}

// ToDomain converts the persistence model to a domain entity
func (m *Event) ToDomain() *event.Event {
	return &event.Event{
		TenantEntity: shared.TenantEntity{
			BaseEntity: m.BaseModel.ToDomain(),
			TenantID:   m.TenantID,
		},
		Type:           m.Type,
		Metadata:       m.Metadata,
		IdempotencyKey: m.IdempotencyKey,
	}
}

// FromDomain populates the persistence model from a domain entity
func (m *Event) FromDomain(e *event.Event) {
	m.setBase(e.BaseEntity)
	m.TenantID = e.TenantID
	m.Type = e.Type
	m.Metadata = e.Metadata
	m.IdempotencyKey = e.IdempotencyKey
}

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoplens/backend/internal/domain/event"
	"github.com/shoplens/backend/internal/domain/shared"
	"github.com/shoplens/backend/internal/infrastructure/persistence/models"
)

// GormEventRepository implements event.Repository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

var _ event.Repository = (*GormEventRepository)(nil)

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Save inserts the event. The (tenant_id, type, idempotency_key) unique
// index rejects replays; the violation surfaces as shared.ErrAlreadyExists.
func (r *GormEventRepository) Save(ctx context.Context, e *event.Event) error {
	var model models.Event
	model.FromDomain(e)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByIdempotencyKey returns the event previously recorded under the key
func (r *GormEventRepository) FindByIdempotencyKey(ctx context.Context, tenantID uuid.UUID, eventType, key string) (*event.Event, error) {
	var model models.Event
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND type = ? AND idempotency_key = ?", tenantID, eventType, key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountForTenant returns the number of events recorded for a tenant
func (r *GormEventRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

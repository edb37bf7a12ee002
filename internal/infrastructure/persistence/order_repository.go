package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoplens/backend/internal/domain/commerce"
	"github.com/shoplens/backend/internal/domain/shared"
	"github.com/shoplens/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements commerce.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

var _ commerce.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save persists an order, inserting or updating by primary key
func (r *GormOrderRepository) Save(ctx context.Context, o *commerce.Order) error {
	var model models.Order
	model.FromDomain(o)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByExternalID finds an order by its platform ID within a tenant
func (r *GormOrderRepository) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID int64) (*commerce.Order, error) {
	var model models.Order
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND external_id = ?", tenantID, externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountForTenant returns the number of orders synced for a tenant
func (r *GormOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

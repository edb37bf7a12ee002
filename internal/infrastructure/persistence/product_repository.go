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

// GormProductRepository implements commerce.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

var _ commerce.ProductRepository = (*GormProductRepository)(nil)

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save persists a product, inserting or updating by primary key
func (r *GormProductRepository) Save(ctx context.Context, p *commerce.Product) error {
	var model models.Product
	model.FromDomain(p)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByExternalID finds a product by its platform ID within a tenant
func (r *GormProductRepository) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID int64) (*commerce.Product, error) {
	var model models.Product
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

// CountForTenant returns the number of products synced for a tenant
func (r *GormProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

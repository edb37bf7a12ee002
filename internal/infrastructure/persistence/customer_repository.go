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

// GormCustomerRepository implements commerce.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

var _ commerce.CustomerRepository = (*GormCustomerRepository)(nil)

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Save persists a customer, inserting or updating by primary key
func (r *GormCustomerRepository) Save(ctx context.Context, c *commerce.Customer) error {
	var model models.Customer
	model.FromDomain(c)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByExternalID finds a customer by its platform ID within a tenant
func (r *GormCustomerRepository) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID int64) (*commerce.Customer, error) {
	var model models.Customer
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

// CountForTenant returns the number of customers synced for a tenant
func (r *GormCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shoplens/backend/internal/domain/shared"
	"github.com/shoplens/backend/internal/domain/tenant"
	"github.com/shoplens/backend/internal/infrastructure/persistence/models"
)

// GormTenantRepository implements tenant.Repository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

var _ tenant.Repository = (*GormTenantRepository)(nil)

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// Save persists a tenant. Saving a tenant whose shop domain is already
// registered returns shared.ErrAlreadyExists.
func (r *GormTenantRepository) Save(ctx context.Context, t *tenant.Tenant) error {
	var model models.Tenant
	model.FromDomain(t)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	var model models.Tenant
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShopDomain finds a tenant by its store domain
func (r *GormTenantRepository) FindByShopDomain(ctx context.Context, shopDomain string) (*tenant.Tenant, error) {
	if shopDomain == "" {
		return nil, shared.ErrNotFound
	}
	var model models.Tenant
	if err := r.db.WithContext(ctx).
		Where("LOWER(shop_domain) = ?", strings.ToLower(shopDomain)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all registered tenants, newest first
func (r *GormTenantRepository) FindAll(ctx context.Context) ([]tenant.Tenant, error) {
	var tenantModels []models.Tenant
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}

	tenants := make([]tenant.Tenant, len(tenantModels))
	for i := range tenantModels {
		tenants[i] = *tenantModels[i].ToDomain()
	}
	return tenants, nil
}

// Exists reports whether a tenant with the given ID is registered
func (r *GormTenantRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

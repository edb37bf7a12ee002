package commerce

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplens/backend/internal/domain/shared"
)

// Product is a tenant-scoped mirror of a Shopify product. PriceMin and
// PriceMax are derived from the parseable variant prices at sync time; both
// stay nil when no variant carries a parseable price.
type Product struct {
	shared.TenantEntity
	ExternalID int64
	Title      string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
}

// NewProduct creates a new product mirror for a tenant
func NewProduct(tenantID uuid.UUID, externalID int64) *Product {
	return &Product{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ExternalID:   externalID,
	}
}

// ProductRepository defines the persistence contract for product mirrors
type ProductRepository interface {
	// Save creates or updates a product
	Save(ctx context.Context, p *Product) error

	// FindByExternalID finds a product by its natural key;
	// shared.ErrNotFound when absent
	FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID int64) (*Product, error)

	// CountForTenant counts products for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

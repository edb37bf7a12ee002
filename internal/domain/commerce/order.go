package commerce

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplens/backend/internal/domain/shared"
)

// Order is a tenant-scoped mirror of a Shopify order.
//
// CustomerID is a weak, nullable reference to a local Customer of the same
// tenant. It is re-resolved on every sync from the customers known at that
// point; an order whose customer has not been synced yet stays unlinked
// until a later run sees both.
type Order struct {
	shared.TenantEntity
	ExternalID  int64
	TotalPrice  *decimal.Decimal
	Currency    *string
	PlacedAt    time.Time
	ProcessedAt *time.Time
	CustomerID  *uuid.UUID
}

// NewOrder creates a new order mirror for a tenant
func NewOrder(tenantID uuid.UUID, externalID int64) *Order {
	return &Order{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ExternalID:   externalID,
	}
}

// OrderRepository defines the persistence contract for order mirrors
type OrderRepository interface {
	// Save creates or updates an order
	Save(ctx context.Context, o *Order) error

	// FindByExternalID finds an order by its natural key;
	// shared.ErrNotFound when absent
	FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID int64) (*Order, error)

	// CountForTenant counts orders for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

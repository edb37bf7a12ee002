package commerce

import (
	"context"

	"github.com/google/uuid"

	"github.com/shoplens/backend/internal/domain/shared"
)

// Customer is a tenant-scoped mirror of a Shopify customer.
// (TenantID, ExternalID) is its natural key; Email and the name fields are
// the mutable attributes refreshed on every sync.
type Customer struct {
	shared.TenantEntity
	ExternalID int64
	Email      *string
	FirstName  *string
	LastName   *string
}

// NewCustomer creates a new customer mirror for a tenant
func NewCustomer(tenantID uuid.UUID, externalID int64) *Customer {
	return &Customer{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ExternalID:   externalID,
	}
}

// CustomerRepository defines the persistence contract for customer mirrors
type CustomerRepository interface {
	// Save creates or updates a customer
	Save(ctx context.Context, c *Customer) error

	// FindByExternalID finds a customer by its natural key;
	// shared.ErrNotFound when absent
	FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID int64) (*Customer, error)

	// CountForTenant counts customers for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// Package tenant defines the tenant aggregate and its repository contract.
// Tenants are created once at onboarding and are read-only for the sync and
// insights cores.
package tenant

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shoplens/backend/internal/domain/shared"
)

// Tenant represents an isolated customer account connected to one Shopify store
type Tenant struct {
	shared.BaseEntity
	Name             string
	ShopDomain       string
	AdminAccessToken string
}

// NewTenant creates a new tenant after validating the onboarding fields
func NewTenant(name, shopDomain, adminAccessToken string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	shopDomain = strings.TrimSpace(strings.ToLower(shopDomain))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Tenant name is required")
	}
	if shopDomain == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shop domain is required")
	}
	if adminAccessToken == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Admin access token is required")
	}

	return &Tenant{
		BaseEntity:       shared.NewBaseEntity(),
		Name:             name,
		ShopDomain:       shopDomain,
		AdminAccessToken: adminAccessToken,
	}, nil
}

// Repository defines the persistence contract for tenants
type Repository interface {
	// Save creates or updates a tenant
	Save(ctx context.Context, t *Tenant) error

	// FindByID finds a tenant by its ID; shared.ErrNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByShopDomain finds a tenant by its shop domain
	FindByShopDomain(ctx context.Context, shopDomain string) (*Tenant, error)

	// FindAll returns all tenants, newest first
	FindAll(ctx context.Context) ([]Tenant, error)

	// Exists reports whether a tenant with the given ID exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Package tenant handles tenant onboarding and listing.
package tenant

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shoplens/backend/internal/domain/tenant"
)

// OnboardInput carries the fields required to connect a new store
type OnboardInput struct {
	Name             string
	ShopDomain       string
	AdminAccessToken string
}

// Service onboards and lists tenants
type Service struct {
	tenants tenant.Repository
	logger  *zap.Logger
}

// NewService creates a new tenant service
func NewService(tenants tenant.Repository, logger *zap.Logger) *Service {
	return &Service{
		tenants: tenants,
		logger:  logger.Named("tenant"),
	}
}

// Onboard registers a new tenant for a store. A shop domain can only belong
// to one tenant; a second registration returns shared.ErrAlreadyExists.
func (s *Service) Onboard(ctx context.Context, input OnboardInput) (*tenant.Tenant, error) {
	t, err := tenant.NewTenant(input.Name, input.ShopDomain, input.AdminAccessToken)
	if err != nil {
		return nil, err
	}

	if err := s.tenants.Save(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("Tenant onboarded",
		zap.String("tenant_id", t.ID.String()),
		zap.String("shop_domain", t.ShopDomain),
	)
	return t, nil
}

// List returns all tenants, newest first
func (s *Service) List(ctx context.Context) ([]tenant.Tenant, error) {
	return s.tenants.FindAll(ctx)
}

// Get returns one tenant by ID; shared.ErrNotFound when absent
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return s.tenants.FindByID(ctx, id)
}

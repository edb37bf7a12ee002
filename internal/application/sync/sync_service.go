// Package sync orchestrates one full data pull from a tenant's store into
// the local mirror tables.
package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shoplens/backend/internal/domain/commerce"
	"github.com/shoplens/backend/internal/domain/integration"
	"github.com/shoplens/backend/internal/domain/shared"
	"github.com/shoplens/backend/internal/domain/tenant"
)

// Counts reports how many records of each entity type a sync run upserted
type Counts struct {
	Products  int `json:"products"`
	Customers int `json:"customers"`
	Orders    int `json:"orders"`
}

// Service coordinates fetch and upsert for one tenant at a time. Runs are
// idempotent: re-syncing unchanged store data converges to the same rows.
type Service struct {
	tenants   tenant.Repository
	products  commerce.ProductRepository
	customers commerce.CustomerRepository
	orders    commerce.OrderRepository
	gateway   integration.CommerceGateway
	logger    *zap.Logger
}

// NewService creates a new sync service
func NewService(
	tenants tenant.Repository,
	products commerce.ProductRepository,
	customers commerce.CustomerRepository,
	orders commerce.OrderRepository,
	gateway integration.CommerceGateway,
	logger *zap.Logger,
) *Service {
	return &Service{
		tenants:   tenants,
		products:  products,
		customers: customers,
		orders:    orders,
		gateway:   gateway,
		logger:    logger.Named("sync"),
	}
}

// SyncTenant pulls products, customers and orders for one tenant and upserts
// them into the mirror tables.
//
// The three fetches run concurrently and are joined before any write: a
// failed fetch fails the run with zero writes. Upserts then apply in fixed
// order products, customers, orders, so that the order step can link against
// the customers of the same cycle. A store error mid-batch aborts the run;
// rows already written stay, and the next successful run converges them.
func (s *Service) SyncTenant(ctx context.Context, tenantID uuid.UUID) (*Counts, error) {
	t, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	store := integration.StoreCredentials{
		ShopDomain:  t.ShopDomain,
		AccessToken: t.AdminAccessToken,
	}

	var (
		wg           sync.WaitGroup
		rawProducts  []integration.RawProduct
		rawCustomers []integration.RawCustomer
		rawOrders    []integration.RawOrder
		prodErr      error
		custErr      error
		orderErr     error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		rawProducts, prodErr = s.gateway.FetchProducts(ctx, store)
	}()
	go func() {
		defer wg.Done()
		rawCustomers, custErr = s.gateway.FetchCustomers(ctx, store)
	}()
	go func() {
		defer wg.Done()
		rawOrders, orderErr = s.gateway.FetchOrders(ctx, store)
	}()
	wg.Wait()

	for _, fetchErr := range []error{prodErr, custErr, orderErr} {
		if fetchErr != nil {
			s.logger.Error("Store fetch failed",
				zap.String("tenant_id", tenantID.String()),
				zap.String("shop_domain", t.ShopDomain),
				zap.Error(fetchErr),
			)
			return nil, fmt.Errorf("fetch store data: %w", fetchErr)
		}
	}

	counts := &Counts{}

	if counts.Products, err = s.upsertProducts(ctx, tenantID, rawProducts); err != nil {
		return nil, fmt.Errorf("upsert products: %w", err)
	}
	if counts.Customers, err = s.upsertCustomers(ctx, tenantID, rawCustomers); err != nil {
		return nil, fmt.Errorf("upsert customers: %w", err)
	}
	if counts.Orders, err = s.upsertOrders(ctx, tenantID, rawOrders); err != nil {
		return nil, fmt.Errorf("upsert orders: %w", err)
	}

	s.logger.Info("Sync completed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("shop_domain", t.ShopDomain),
		zap.Int("products", counts.Products),
		zap.Int("customers", counts.Customers),
		zap.Int("orders", counts.Orders),
	)

	return counts, nil
}

func (s *Service) upsertProducts(ctx context.Context, tenantID uuid.UUID, records []integration.RawProduct) (int, error) {
	count := 0
	for _, rec := range records {
		externalID, ok := rec.ExternalID()
		if !ok {
			s.logger.Debug("Skipping product without usable id",
				zap.String("tenant_id", tenantID.String()))
			continue
		}

		p, err := s.products.FindByExternalID(ctx, tenantID, externalID)
		if errors.Is(err, shared.ErrNotFound) {
			p = commerce.NewProduct(tenantID, externalID)
		} else if err != nil {
			return count, err
		}

		p.Title = rec.Title()
		p.PriceMin, p.PriceMax = rec.PriceRange()

		if err := s.products.Save(ctx, p); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (s *Service) upsertCustomers(ctx context.Context, tenantID uuid.UUID, records []integration.RawCustomer) (int, error) {
	count := 0
	for _, rec := range records {
		externalID, ok := rec.ExternalID()
		if !ok {
			s.logger.Debug("Skipping customer without usable id",
				zap.String("tenant_id", tenantID.String()))
			continue
		}

		c, err := s.customers.FindByExternalID(ctx, tenantID, externalID)
		if errors.Is(err, shared.ErrNotFound) {
			c = commerce.NewCustomer(tenantID, externalID)
		} else if err != nil {
			return count, err
		}

		c.Email = rec.Email()
		c.FirstName = rec.FirstName()
		c.LastName = rec.LastName()

		if err := s.customers.Save(ctx, c); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (s *Service) upsertOrders(ctx context.Context, tenantID uuid.UUID, records []integration.RawOrder) (int, error) {
	count := 0
	for _, rec := range records {
		externalID, ok := rec.ExternalID()
		if !ok {
			s.logger.Debug("Skipping order without usable id",
				zap.String("tenant_id", tenantID.String()))
			continue
		}

		placedAt, ok := rec.PlacedAt()
		if !ok {
			s.logger.Debug("Skipping order without placement time",
				zap.String("tenant_id", tenantID.String()),
				zap.Int64("external_id", externalID))
			continue
		}

		o, err := s.orders.FindByExternalID(ctx, tenantID, externalID)
		if errors.Is(err, shared.ErrNotFound) {
			o = commerce.NewOrder(tenantID, externalID)
		} else if err != nil {
			return count, err
		}

		o.TotalPrice = rec.TotalPrice()
		o.Currency = rec.Currency()
		o.PlacedAt = placedAt
		o.ProcessedAt = rec.ProcessedAt()
		o.CustomerID, err = s.resolveCustomer(ctx, tenantID, rec)
		if err != nil {
			return count, err
		}

		if err := s.orders.Save(ctx, o); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// resolveCustomer maps the order's platform customer reference to a local
// customer of the same tenant. Orders referencing a customer that has not
// been synced yet stay unlinked until a later run sees both.
func (s *Service) resolveCustomer(ctx context.Context, tenantID uuid.UUID, rec integration.RawOrder) (*uuid.UUID, error) {
	customerExternalID, ok := rec.CustomerExternalID()
	if !ok {
		return nil, nil
	}

	c, err := s.customers.FindByExternalID(ctx, tenantID, customerExternalID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id := c.ID
	return &id, nil
}

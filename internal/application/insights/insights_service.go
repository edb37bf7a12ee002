// Package insights serves aggregated metrics over the synced store data and
// recorded behavioral events.
package insights

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shoplens/backend/internal/domain/insights"
	"github.com/shoplens/backend/internal/domain/shared"
	"github.com/shoplens/backend/internal/domain/tenant"
)

// topCustomerLimit caps the customer ranking to the heaviest spenders
const topCustomerLimit = 5

// Default range bounds used when a date filter is omitted. The upper bound
// is generous rather than open-ended so that both range parameters always
// resolve to concrete values in the query.
var (
	rangeFloor   = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeCeiling = time.Date(2999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// Service answers metric queries for one tenant
type Service struct {
	repo    insights.Repository
	tenants tenant.Repository
}

// NewService creates a new insights service
func NewService(repo insights.Repository, tenants tenant.Repository) *Service {
	return &Service{
		repo:    repo,
		tenants: tenants,
	}
}

// Overview returns the headline totals for a tenant
func (s *Service) Overview(ctx context.Context, tenantID uuid.UUID) (*insights.Overview, error) {
	if err := s.requireTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.repo.Overview(ctx, tenantID)
}

// OrdersByDate returns the daily order series for the inclusive date window
// [from, to]. Both parameters are optional ISO dates (YYYY-MM-DD).
func (s *Service) OrdersByDate(ctx context.Context, tenantID uuid.UUID, from, to string) ([]insights.DailyOrderMetric, error) {
	if err := s.requireTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	dateRange, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.OrdersByDate(ctx, tenantID, dateRange)
}

// TopCustomers ranks the tenant's customers by total spend
func (s *Service) TopCustomers(ctx context.Context, tenantID uuid.UUID) ([]insights.TopCustomerMetric, error) {
	if err := s.requireTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.repo.TopCustomers(ctx, tenantID, topCustomerLimit)
}

// EventsByType returns event counts per type, busiest first
func (s *Service) EventsByType(ctx context.Context, tenantID uuid.UUID) ([]insights.EventTypeCount, error) {
	if err := s.requireTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.repo.EventsByType(ctx, tenantID)
}

// EventsByDate returns the daily event series for the inclusive date window
// [from, to]
func (s *Service) EventsByDate(ctx context.Context, tenantID uuid.UUID, from, to string) ([]insights.DailyEventMetric, error) {
	if err := s.requireTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	dateRange, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.EventsByDate(ctx, tenantID, dateRange)
}

func (s *Service) requireTenant(ctx context.Context, tenantID uuid.UUID) error {
	exists, err := s.tenants.Exists(ctx, tenantID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}
	return nil
}

// parseDateRange converts the inclusive ISO date pair into the half-open
// [From, To) range the repository queries with. The inclusive upper date is
// widened by one day so that every timestamp of that day falls inside.
func parseDateRange(from, to string) (insights.DateRange, error) {
	lower := rangeFloor
	upper := rangeCeiling

	if from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return insights.DateRange{}, shared.NewDomainError("INVALID_DATE", "from must be a YYYY-MM-DD date")
		}
		lower = parsed
	}
	if to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return insights.DateRange{}, shared.NewDomainError("INVALID_DATE", "to must be a YYYY-MM-DD date")
		}
		upper = parsed
	}

	return insights.DateRange{
		From: lower,
		To:   upper.AddDate(0, 0, 1),
	}, nil
}

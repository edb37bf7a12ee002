package insights

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Overview summarizes a tenant's synced store
type Overview struct {
	TotalCustomers int64           `json:"total_customers"`
	TotalOrders    int64           `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalProducts  int64           `json:"total_products"`
}

// DailyOrderMetric is order count and revenue for one calendar day
type DailyOrderMetric struct {
	Date    string          `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopCustomerMetric is one customer ranked by total spend
type TopCustomerMetric struct {
	Email  string          `json:"email"`
	Orders int64           `json:"orders"`
	Spend  decimal.Decimal `json:"spend"`
}

// EventTypeCount is the event count for one event type
type EventTypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// DailyEventMetric is the event count for one calendar day
type DailyEventMetric struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// DateRange bounds a query to [From, To). Callers build the half-open
// upper bound from an inclusive end date.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Repository reads aggregated metrics from the synced store data
type Repository interface {
	Overview(ctx context.Context, tenantID uuid.UUID) (*Overview, error)
	OrdersByDate(ctx context.Context, tenantID uuid.UUID, dateRange DateRange) ([]DailyOrderMetric, error)
	TopCustomers(ctx context.Context, tenantID uuid.UUID, limit int) ([]TopCustomerMetric, error)
	EventsByType(ctx context.Context, tenantID uuid.UUID) ([]EventTypeCount, error)
	EventsByDate(ctx context.Context, tenantID uuid.UUID, dateRange DateRange) ([]DailyEventMetric, error)
}

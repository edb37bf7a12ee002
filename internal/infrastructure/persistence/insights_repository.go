package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shoplens/backend/internal/domain/insights"
)

// GormInsightsRepository implements insights.Repository using GORM.
// All metrics are computed in SQL over the synced tables.
type GormInsightsRepository struct {
	db *gorm.DB
}

var _ insights.Repository = (*GormInsightsRepository)(nil)

// NewGormInsightsRepository creates a new GormInsightsRepository
func NewGormInsightsRepository(db *gorm.DB) *GormInsightsRepository {
	return &GormInsightsRepository{db: db}
}

// dayBucket renders a timestamp column as an ISO date string in SQL.
// Postgres hands DATE columns back as time.Time, which a string scan
// target would serialize as a full RFC3339 timestamp, so the formatting
// happens in the query. Sqlite's DATE() already yields the ISO string.
func (r *GormInsightsRepository) dayBucket(column string) string {
	if r.db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("to_char(DATE(%s), 'YYYY-MM-DD')", column)
	}
	return fmt.Sprintf("DATE(%s)", column)
}

// Overview returns totals across the tenant's synced store
func (r *GormInsightsRepository) Overview(ctx context.Context, tenantID uuid.UUID) (*insights.Overview, error) {
	type totals struct {
		TotalOrders  int64
		TotalRevenue decimal.Decimal
	}

	var orderTotals totals
	if err := r.db.WithContext(ctx).
		Table("orders").
		Select("COUNT(*) as total_orders, COALESCE(SUM(total_price), 0) as total_revenue").
		Where("tenant_id = ?", tenantID).
		Scan(&orderTotals).Error; err != nil {
		return nil, err
	}

	overview := &insights.Overview{
		TotalOrders:  orderTotals.TotalOrders,
		TotalRevenue: orderTotals.TotalRevenue,
	}

	if err := r.db.WithContext(ctx).
		Table("customers").
		Where("tenant_id = ?", tenantID).
		Count(&overview.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Table("products").
		Where("tenant_id = ?", tenantID).
		Count(&overview.TotalProducts).Error; err != nil {
		return nil, err
	}

	return overview, nil
}

// OrdersByDate returns per-day order counts and revenue within the range,
// grouped on the platform order placement date
func (r *GormInsightsRepository) OrdersByDate(ctx context.Context, tenantID uuid.UUID, dateRange insights.DateRange) ([]insights.DailyOrderMetric, error) {
	var results []insights.DailyOrderMetric
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(r.dayBucket("placed_at") + " as date, COUNT(*) as orders, COALESCE(SUM(total_price), 0) as revenue").
		Where("tenant_id = ?", tenantID).
		Where("placed_at >= ? AND placed_at < ?", dateRange.From, dateRange.To).
		Group("DATE(placed_at)").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// TopCustomers returns customers ranked by total spend. Orders without a
// linked customer or whose customer has no email group under "Unknown".
func (r *GormInsightsRepository) TopCustomers(ctx context.Context, tenantID uuid.UUID, limit int) ([]insights.TopCustomerMetric, error) {
	var results []insights.TopCustomerMetric
	err := r.db.WithContext(ctx).
		Table("orders o").
		Select("COALESCE(c.email, 'Unknown') as email, COUNT(*) as orders, COALESCE(SUM(o.total_price), 0) as spend").
		Joins("LEFT JOIN customers c ON c.id = o.customer_id").
		Where("o.tenant_id = ?", tenantID).
		Group("COALESCE(c.email, 'Unknown')").
		Order("spend DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// EventsByType returns event counts grouped by type
func (r *GormInsightsRepository) EventsByType(ctx context.Context, tenantID uuid.UUID) ([]insights.EventTypeCount, error) {
	var results []insights.EventTypeCount
	err := r.db.WithContext(ctx).
		Table("events").
		Select("type, COUNT(*) as count").
		Where("tenant_id = ?", tenantID).
		Group("type").
		Order("count DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// EventsByDate returns per-day event counts within the range
func (r *GormInsightsRepository) EventsByDate(ctx context.Context, tenantID uuid.UUID, dateRange insights.DateRange) ([]insights.DailyEventMetric, error) {
	var results []insights.DailyEventMetric
	err := r.db.WithContext(ctx).
		Table("events").
		Select(r.dayBucket("created_at") + " as date, COUNT(*) as count").
		Where("tenant_id = ?", tenantID).
		Where("created_at >= ? AND created_at < ?", dateRange.From, dateRange.To).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

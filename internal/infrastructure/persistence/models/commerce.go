package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplens/backend/internal/domain/commerce"
	"github.com/shoplens/backend/internal/domain/shared"
)

// Customer is the persistence model for a synced store customer
type Customer struct {
	BaseModel
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customers_tenant_external"`
	ExternalID int64     `gorm:"not null;uniqueIndex:idx_customers_tenant_external"`
	Email      *string
	FirstName  *string
	LastName   *string
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain entity
func (m *Customer) ToDomain() *commerce.Customer {
	return &commerce.Customer{
		TenantEntity: shared.TenantEntity{
			BaseEntity: m.BaseModel.ToDomain(),
			TenantID:   m.TenantID,
		},
		ExternalID: m.ExternalID,
		Email:      m.Email,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
	}
}

// FromDomain populates the persistence model from a domain entity
func (m *Customer) FromDomain(c *commerce.Customer) {
	m.setBase(c.BaseEntity)
	m.TenantID = c.TenantID
	m.ExternalID = c.ExternalID
	m.Email = c.Email
	m.FirstName = c.FirstName
	m.LastName = c.LastName
}

// Product is the persistence model for a synced store product
type Product struct {
	BaseModel
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_products_tenant_external"`
	ExternalID int64     `gorm:"not null;uniqueIndex:idx_products_tenant_external"`
	Title      string    `gorm:"not null"`
	PriceMin   *decimal.Decimal `gorm:"type:decimal(20,8)"`
	PriceMax   *decimal.Decimal `gorm:"type:decimal(20,8)"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain entity
func (m *Product) ToDomain() *commerce.Product {
	return &commerce.Product{
		TenantEntity: shared.TenantEntity{
			BaseEntity: m.BaseModel.ToDomain(),
			TenantID:   m.TenantID,
		},
		ExternalID: m.ExternalID,
		Title:      m.Title,
		PriceMin:   m.PriceMin,
		PriceMax:   m.PriceMax,
	}
}

// FromDomain populates the persistence model from a domain entity
func (m *Product) FromDomain(p *commerce.Product) {
	m.setBase(p.BaseEntity)
	m.TenantID = p.TenantID
	m.ExternalID = p.ExternalID
	m.Title = p.Title
	m.PriceMin = p.PriceMin
	m.PriceMax = p.PriceMax
}

// Order is the persistence model for a synced store order
type Order struct {
	BaseModel
	TenantID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_orders_tenant_external"`
	ExternalID  int64     `gorm:"not null;uniqueIndex:idx_orders_tenant_external"`
	TotalPrice  *decimal.Decimal `gorm:"type:decimal(20,8)"`
	Currency    *string
	PlacedAt    time.Time `gorm:"not null;index"`
	ProcessedAt *time.Time
	CustomerID  *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain entity
func (m *Order) ToDomain() *commerce.Order {
	return &commerce.Order{
		TenantEntity: shared.TenantEntity{
			BaseEntity: m.BaseModel.ToDomain(),
			TenantID:   m.TenantID,
		},
		ExternalID:  m.ExternalID,
		TotalPrice:  m.TotalPrice,
		Currency:    m.Currency,
		PlacedAt:    m.PlacedAt,
		ProcessedAt: m.ProcessedAt,
		CustomerID:  m.CustomerID,
	}
}

// FromDomain populates the persistence model from a domain entity
func (m *Order) FromDomain(o *commerce.Order) {
	m.setBase(o.BaseEntity)
	m.TenantID = o.TenantID
	m.ExternalID = o.ExternalID
	m.TotalPrice = o.TotalPrice
	m.Currency = o.Currency
	m.PlacedAt = o.PlacedAt
	m.ProcessedAt = o.ProcessedAt
	m.CustomerID = o.CustomerID
}

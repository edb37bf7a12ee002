package models

import (
	"github.com/shoplens/backend/internal/domain/tenant"
)

// Tenant is the persistence model for a connected store
type Tenant struct {
	BaseModel
	Name             string `gorm:"not null"`
	ShopDomain       string `gorm:"not null;uniqueIndex:idx_tenants_shop_domain"`
	AdminAccessToken string `gorm:"not null"`
}

// TableName specifies the table name
func (Tenant) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain entity
func (m *Tenant) ToDomain() *tenant.Tenant {
	return &tenant.Tenant{
		BaseEntity:       m.BaseModel.ToDomain(),
		Name:             m.Name,
		ShopDomain:       m.ShopDomain,
		AdminAccessToken: m.AdminAccessToken,
	}
}

// FromDomain populates the persistence model from a domain entity
func (m *Tenant) FromDomain(t *tenant.Tenant) {
	m.setBase(t.BaseEntity)
	m.Name = t.Name
	m.ShopDomain = t.ShopDomain
	m.AdminAccessToken = t.AdminAccessToken
}

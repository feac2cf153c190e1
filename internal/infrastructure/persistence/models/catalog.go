package models

import (
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for catalog products.
type ProductModel struct {
	BaseModel
	Name               string              `gorm:"type:varchar(200);not null;index"`
	Price              decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	SupplierPrice      decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	SalesCommission    decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	ManagerCommission  decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	DirectorCommission decimal.NullDecimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:         m.BaseModel.ToDomain(),
		Name:               m.Name,
		Price:              m.Price,
		SupplierPrice:      m.SupplierPrice,
		SalesCommission:    m.SalesCommission,
		ManagerCommission:  m.ManagerCommission,
		DirectorCommission: m.DirectorCommission,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:               p.Name,
		Price:              p.Price,
		SupplierPrice:      p.SupplierPrice,
		SalesCommission:    p.SalesCommission,
		ManagerCommission:  p.ManagerCommission,
		DirectorCommission: p.DirectorCommission,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

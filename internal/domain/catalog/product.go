package catalog

import (
	"github.com/crm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is the authoritative price and commission-rate source for order
// lines. The core only reads products; their lifecycle lives elsewhere.
type Product struct {
	shared.BaseEntity
	Name          string
	Price         decimal.Decimal
	SupplierPrice decimal.Decimal

	// Commission rates per unit sold. Any of them may be unset.
	SalesCommission    decimal.NullDecimal
	ManagerCommission  decimal.NullDecimal
	DirectorCommission decimal.NullDecimal
}

// CommissionRates is the per-unit payout of each commission tier.
type CommissionRates struct {
	Sales    decimal.Decimal
	Manager  decimal.Decimal
	Director decimal.Decimal
}

// Rates returns the product's current commission rates with unset tiers
// read as zero.
func (p *Product) Rates() CommissionRates {
	return CommissionRates{
		Sales:    orZero(p.SalesCommission),
		Manager:  orZero(p.ManagerCommission),
		Director: orZero(p.DirectorCommission),
	}
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

package order

import (
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionSummary is the revenue and commission rollup over a set of orders.
type CommissionSummary struct {
	TotalAmount             decimal.Decimal
	TotalSalesCommission    decimal.Decimal
	TotalManagerCommission  decimal.Decimal
	TotalDirectorCommission decimal.Decimal
	OrderCount              int
}

// RollupCommissions sums order totals and quantity * rate for each commission
// tier. Rates are the products' current ones, not values pinned on the order;
// a product missing from rates contributes nothing.
func RollupCommissions(orders []*Order, rates map[uuid.UUID]catalog.CommissionRates) CommissionSummary {
	sum := CommissionSummary{
		TotalAmount:             decimal.Zero,
		TotalSalesCommission:    decimal.Zero,
		TotalManagerCommission:  decimal.Zero,
		TotalDirectorCommission: decimal.Zero,
	}

	for _, o := range orders {
		sum.OrderCount++
		sum.TotalAmount = sum.TotalAmount.Add(o.TotalAmount)

		for _, item := range o.Items {
			r, ok := rates[item.ProductID]
			if !ok {
				continue
			}
			qty := decimal.NewFromInt(int64(item.Quantity))
			sum.TotalSalesCommission = sum.TotalSalesCommission.Add(qty.Mul(r.Sales))
			sum.TotalManagerCommission = sum.TotalManagerCommission.Add(qty.Mul(r.Manager))
			sum.TotalDirectorCommission = sum.TotalDirectorCommission.Add(qty.Mul(r.Director))
		}
	}

	return sum
}

package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultNumberPrefix prefixes generated order numbers.
const DefaultNumberPrefix = "SO"

// OrderItem is one line of an order. UnitPrice is captured from the product
// when the order is created and never re-read afterwards.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}

// Amount returns Quantity * UnitPrice
func (i OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the aggregate root of the ledger. TotalAmount is derived from the
// items and persisted alongside them.
type Order struct {
	shared.BaseEntity
	OrderNumber   string
	CustomerID    uuid.UUID
	SalesOwnerID  uuid.UUID
	Status        OrderStatus
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	PaymentDate   *time.Time
	StartDate     *time.Time
	EffectiveDate *time.Time
	ExpiryDate    *time.Time
	Items         []OrderItem
}

// ContractDates are the optional validity dates of an order.
type ContractDates struct {
	StartDate     *time.Time
	EffectiveDate *time.Time
	ExpiryDate    *time.Time
}

// Financials is the payment triple recorded against an order.
type Financials struct {
	Status      OrderStatus
	PaidAmount  decimal.Decimal
	PaymentDate *time.Time
}

// NewOrder creates an empty order header. An empty status defaults to PENDING.
func NewOrder(orderNumber string, customerID, salesOwnerID uuid.UUID, status OrderStatus) (*Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if salesOwnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_OWNER", "Sales owner ID cannot be empty")
	}
	if status == "" {
		status = OrderStatusPending
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", status))
	}

	return &Order{
		BaseEntity:   shared.NewBaseEntity(),
		OrderNumber:  orderNumber,
		CustomerID:   customerID,
		SalesOwnerID: salesOwnerID,
		Status:       status,
		TotalAmount:  decimal.Zero,
		PaidAmount:   decimal.Zero,
		Items:        make([]OrderItem, 0),
	}, nil
}

// SetContractDates sets the optional validity dates.
func (o *Order) SetContractDates(d ContractDates) error {
	if d.StartDate != nil && d.ExpiryDate != nil && d.ExpiryDate.Before(*d.StartDate) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Expiry date cannot be before start date")
	}
	o.StartDate = d.StartDate
	o.EffectiveDate = d.EffectiveDate
	o.ExpiryDate = d.ExpiryDate
	return nil
}

// AddItem appends a line priced at unitPrice and recalculates the total.
func (o *Order) AddItem(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	o.Items = append(o.Items, OrderItem{
		ID:        uuid.New(),
		OrderID:   o.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: o.CreatedAt,
	})
	o.recalculateTotal()
	return &o.Items[len(o.Items)-1], nil
}

// ApplyFinancials overwrites status, paid amount and payment date.
// Re-applying the values already stored is a no-op that returns false.
func (o *Order) ApplyFinancials(f Financials, policy TransitionPolicy) (bool, error) {
	if !f.Status.IsValid() {
		return false, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", f.Status))
	}
	if f.PaidAmount.IsNegative() {
		return false, shared.NewDomainError("INVALID_PAID_AMOUNT", "Paid amount cannot be negative")
	}
	if policy == StrictTransitions && !o.Status.CanTransitionTo(f.Status) {
		return false, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change order status from %s to %s", o.Status, f.Status))
	}

	if o.sameFinancials(f) {
		return false, nil
	}

	o.Status = f.Status
	o.PaidAmount = f.PaidAmount
	o.PaymentDate = f.PaymentDate
	o.Touch()
	return true, nil
}

func (o *Order) sameFinancials(f Financials) bool {
	if o.Status != f.Status || !o.PaidAmount.Equal(f.PaidAmount) {
		return false
	}
	switch {
	case o.PaymentDate == nil && f.PaymentDate == nil:
		return true
	case o.PaymentDate == nil || f.PaymentDate == nil:
		return false
	}
	return o.PaymentDate.Equal(*f.PaymentDate)
}

// recalculateTotal sets TotalAmount to the sum of the item amounts
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount())
	}
	o.TotalAmount = total
}

// ItemsTotal recomputes the sum of the item amounts without mutating the order.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount())
	}
	return total
}

// ProductIDs returns the distinct product ids referenced by the items.
func (o *Order) ProductIDs() []uuid.UUID {
	return ProductIDs([]*Order{o})
}

// ProductIDs returns the distinct product ids referenced by the given orders,
// in first-seen order.
func ProductIDs(orders []*Order) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, o := range orders {
		for _, item := range o.Items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

// NewOrderNumber returns an opaque order number such as SO20240601-9F1C2A7B3D4E.
// Uniqueness is enforced by the store; the format carries no meaning.
func NewOrderNumber(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s%s-%s", prefix, now.UTC().Format("20060102"), strings.ToUpper(token[:12]))
}

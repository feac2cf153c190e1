package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/order"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to create an order. Prices are
// never taken from the caller.
type CreateOrderRequest struct {
	CustomerID    uuid.UUID              `json:"customer_id" binding:"required"`
	SalesID       uuid.UUID              `json:"sales_id" binding:"required"`
	Status        string                 `json:"status"`
	StartDate     *time.Time             `json:"start_date"`
	EffectiveDate *time.Time             `json:"effective_date"`
	ExpiryDate    *time.Time             `json:"expiry_date"`
	OrderItems    []CreateOrderItemInput `json:"order_items" binding:"required,min=1,dive"`
}

// CreateOrderItemInput represents a line in the create order request
type CreateOrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// Lines converts the request items to domain lines
func (r CreateOrderRequest) Lines() []order.Line {
	lines := make([]order.Line, len(r.OrderItems))
	for i, item := range r.OrderItems {
		lines[i] = order.Line{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return lines
}

// UpdateFinancialsRequest overwrites the payment triple of an order
type UpdateFinancialsRequest struct {
	Status      string           `json:"status" binding:"required"`
	PaidAmount  *decimal.Decimal `json:"paid_amount" binding:"required"`
	PaymentDate *time.Time       `json:"payment_date"`
}

// ListOrdersQuery represents the query string of order listings.
// Dates accept either YYYY-MM-DD or RFC 3339.
type ListOrdersQuery struct {
	Company       string `form:"company"`
	ProductName   string `form:"product_name"`
	Status        string `form:"status"`
	SalesID       string `form:"sales_id"`
	CustomerID    string `form:"customer_id"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	EffectiveFrom string `form:"effective_from"`
	EffectiveTo   string `form:"effective_to"`
	ExpiryFrom    string `form:"expiry_from"`
	ExpiryTo      string `form:"expiry_to"`
	Skip          int    `form:"skip"`
	Limit         int    `form:"limit"`
}

// Filter converts the query to a domain filter
func (q ListOrdersQuery) Filter() (order.OrderFilter, error) {
	f := order.OrderFilter{
		Company:     strings.TrimSpace(q.Company),
		ProductName: strings.TrimSpace(q.ProductName),
	}

	if q.Status != "" {
		status := order.OrderStatus(strings.ToUpper(q.Status))
		if !status.IsValid() {
			return f, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", q.Status))
		}
		f.Status = status
	}

	var err error
	if f.SalesOwnerID, err = parseOptionalUUID("sales_id", q.SalesID); err != nil {
		return f, err
	}
	if f.CustomerID, err = parseOptionalUUID("customer_id", q.CustomerID); err != nil {
		return f, err
	}

	dates := []struct {
		name  string
		value string
		dst   **time.Time
	}{
		{"start_date", q.StartDate, &f.StartFrom},
		{"end_date", q.EndDate, &f.ExpiryTo},
		{"effective_from", q.EffectiveFrom, &f.EffectiveFrom},
		{"effective_to", q.EffectiveTo, &f.EffectiveTo},
		{"expiry_from", q.ExpiryFrom, &f.ExpiryFrom},
		{"expiry_to", q.ExpiryTo, &f.ExpiryTo},
	}
	for _, d := range dates {
		if d.value == "" {
			continue
		}
		t, err := parseDate(d.name, d.value)
		if err != nil {
			return f, err
		}
		// expiry_to wins over end_date when both are given
		*d.dst = &t
	}

	if inverted(f.EffectiveFrom, f.EffectiveTo) || inverted(f.ExpiryFrom, f.ExpiryTo) {
		return f, shared.NewDomainError("INVALID_DATE_RANGE", "Range start must not be after range end")
	}

	return f, nil
}

func inverted(from, to *time.Time) bool {
	return from != nil && to != nil && from.After(*to)
}

// Page returns the validated pagination window
func (q ListOrdersQuery) Page() (shared.Page, error) {
	return shared.NewPage(q.Skip, q.Limit)
}

func parseOptionalUUID(name, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ID", fmt.Sprintf("%s is not a valid UUID", name))
	}
	return &id, nil
}

func parseDate(name, value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE",
			fmt.Sprintf("%s must be YYYY-MM-DD or RFC 3339, got %q", name, value))
	}
	return t.UTC(), nil
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	CustomerID    uuid.UUID           `json:"customer_id"`
	SalesID       uuid.UUID           `json:"sales_id"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaidAmount    decimal.Decimal     `json:"paid_amount"`
	PaymentDate   *time.Time          `json:"payment_date"`
	StartDate     *time.Time          `json:"start_date"`
	EffectiveDate *time.Time          `json:"effective_date"`
	ExpiryDate    *time.Time          `json:"expiry_date"`
	OrderItems    []OrderItemResponse `json:"order_items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Amount:    item.Amount(),
		}
	}
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerID:    o.CustomerID,
		SalesID:       o.SalesOwnerID,
		Status:        o.Status.String(),
		TotalAmount:   o.TotalAmount,
		PaidAmount:    o.PaidAmount,
		PaymentDate:   o.PaymentDate,
		StartDate:     o.StartDate,
		EffectiveDate: o.EffectiveDate,
		ExpiryDate:    o.ExpiryDate,
		OrderItems:    items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderResponses converts domain orders to response DTOs
func ToOrderResponses(orders []*order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses
}

// CommissionSummaryResponse is the commission rollup over the matching orders
type CommissionSummaryResponse struct {
	TotalAmount             decimal.Decimal `json:"total_amount"`
	TotalSalesCommission    decimal.Decimal `json:"total_sales_commission"`
	TotalManagerCommission  decimal.Decimal `json:"total_manager_commission"`
	TotalDirectorCommission decimal.Decimal `json:"total_director_commission"`
	OrderCount              int             `json:"order_count"`
}

// ToCommissionSummaryResponse converts a domain rollup to a response DTO
func ToCommissionSummaryResponse(s order.CommissionSummary) CommissionSummaryResponse {
	return CommissionSummaryResponse{
		TotalAmount:             s.TotalAmount,
		TotalSalesCommission:    s.TotalSalesCommission,
		TotalManagerCommission:  s.TotalManagerCommission,
		TotalDirectorCommission: s.TotalDirectorCommission,
		OrderCount:              s.OrderCount,
	}
}

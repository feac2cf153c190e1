package models

import (
	"time"

	"github.com/crm/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the order header.
type OrderModel struct {
	BaseModel
	OrderNumber   string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	SalesOwnerID  uuid.UUID         `gorm:"column:sales_id;type:uuid;not null;index"`
	Status        order.OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	TotalAmount   decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount    decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentDate   *time.Time
	StartDate     *time.Time `gorm:"index"`
	EffectiveDate *time.Time
	ExpiryDate    *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the header to a domain Order. Items are attached by the
// repository from a separate query.
func (m *OrderModel) ToDomain(items []OrderItemModel) *order.Order {
	o := &order.Order{
		BaseEntity:    m.BaseModel.ToDomain(),
		OrderNumber:   m.OrderNumber,
		CustomerID:    m.CustomerID,
		SalesOwnerID:  m.SalesOwnerID,
		Status:        m.Status,
		TotalAmount:   m.TotalAmount,
		PaidAmount:    m.PaidAmount,
		PaymentDate:   m.PaymentDate,
		StartDate:     m.StartDate,
		EffectiveDate: m.EffectiveDate,
		ExpiryDate:    m.ExpiryDate,
		Items:         make([]order.OrderItem, len(items)),
	}
	for i := range items {
		o.Items[i] = items[i].ToDomain()
	}
	return o
}

// OrderModelFromDomain creates a header model from a domain Order.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		OrderNumber:   o.OrderNumber,
		CustomerID:    o.CustomerID,
		SalesOwnerID:  o.SalesOwnerID,
		Status:        o.Status,
		TotalAmount:   o.TotalAmount,
		PaidAmount:    o.PaidAmount,
		PaymentDate:   o.PaymentDate,
		StartDate:     o.StartDate,
		EffectiveDate: o.EffectiveDate,
		ExpiryDate:    o.ExpiryDate,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	return m
}

// OrderItemModel is the persistence model for an order line.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo    int             `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() order.OrderItem {
	return order.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		CreatedAt: m.CreatedAt,
	}
}

// OrderItemModelsFromDomain maps every item of o.
func OrderItemModelsFromDomain(o *order.Order) []OrderItemModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemModel{
			ID:        it.ID,
			OrderID:   o.ID,
			ProductID: it.ProductID,
			LineNo:    i + 1,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			CreatedAt: it.CreatedAt,
		}
	}
	return items
}

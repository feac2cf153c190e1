package order

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderFilter narrows order listings. Zero values mean "no constraint".
type OrderFilter struct {
	// Company matches the customer's company name, case-insensitive substring
	Company string
	// ProductName matches any item's product name, case-insensitive substring
	ProductName  string
	Status       OrderStatus
	SalesOwnerID *uuid.UUID
	CustomerID   *uuid.UUID

	// StartFrom keeps orders whose start date is on or after it
	StartFrom *time.Time
	// ExpiryTo keeps orders whose expiry date is on or before it
	ExpiryTo      *time.Time
	ExpiryFrom    *time.Time
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID loads an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// Create inserts the order header and all of its items
	Create(ctx context.Context, o *Order) error

	// UpdateFinancials overwrites status, paid amount and payment date
	UpdateFinancials(ctx context.Context, o *Order) error

	// List returns one page of matching orders with items, newest first
	List(ctx context.Context, filter OrderFilter, page shared.Page) ([]*Order, error)

	// ListAll returns every matching order with items
	ListAll(ctx context.Context, filter OrderFilter) ([]*Order, error)

	// Count counts matching orders
	Count(ctx context.Context, filter OrderFilter) (int64, error)
}

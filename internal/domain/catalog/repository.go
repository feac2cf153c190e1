package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductReader is the read-only view of the product catalog.
type ProductReader interface {
	// FindByID returns shared.ErrNotFound when the product does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs returns the products that exist, keyed by id. Missing ids are
	// simply absent from the map.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error)
}

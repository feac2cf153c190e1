package order

import (
	"fmt"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Line is a requested order line before pricing.
type Line struct {
	ProductID uuid.UUID
	Quantity  int
}

// ValidateLines rejects an empty line list and non-positive quantities
// before anything touches storage.
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	for i, l := range lines {
		if l.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Item %d: product ID cannot be empty", i))
		}
		if l.Quantity <= 0 {
			return shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Item %d: quantity must be positive", i))
		}
	}
	return nil
}

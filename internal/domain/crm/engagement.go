package crm

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EngagementSummary is the computed per-customer row of the sales pipeline
// view. It is never stored.
type EngagementSummary struct {
	CustomerID     uuid.UUID
	Province       string
	City           string
	Company        string
	Status         string
	NextFollowDate *time.Time
	UpdatedAt      time.Time
	SalesOwnerName *string

	ContactCount     int64
	SalesFollowCount int64
	OrderCount       int64

	// LatestIntentionLevel is the intention of the follow-up with the greatest
	// follow date. Ties resolve to the most recently created row, then the
	// highest id. Nil when the customer has no follow-ups.
	LatestIntentionLevel *string
}

// HasActivity reports whether any child record exists for the customer.
func (s EngagementSummary) HasActivity() bool {
	return s.ContactCount > 0 || s.SalesFollowCount > 0 || s.OrderCount > 0
}

// EngagementReader computes engagement summaries.
type EngagementReader interface {
	// Aggregate returns one summary per customer in the page. Pagination
	// applies to customers, not to the child counts.
	Aggregate(ctx context.Context, page shared.Page) ([]EngagementSummary, error)

	// CountCustomers returns the number of customers in the view
	CountCustomers(ctx context.Context) (int64, error)
}

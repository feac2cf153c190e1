package shared

import "fmt"

const (
	// DefaultLimit is used when a caller does not send a limit.
	DefaultLimit = 100
	// MaxLimit caps a single page.
	MaxLimit = 1000
)

// Page is an offset window over an ordered result set.
type Page struct {
	Skip  int
	Limit int
}

// NewPage validates skip/limit and applies the defaults.
// A zero limit means "use the default"; values above MaxLimit are clamped.
func NewPage(skip, limit int) (Page, error) {
	if skip < 0 {
		return Page{}, NewDomainError("INVALID_PAGINATION", fmt.Sprintf("skip must be >= 0, got %d", skip))
	}
	if limit < 0 {
		return Page{}, NewDomainError("INVALID_PAGINATION", fmt.Sprintf("limit must be >= 0, got %d", limit))
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Skip: skip, Limit: limit}, nil
}

// DefaultPage returns the first page with the default limit.
func DefaultPage() Page {
	return Page{Skip: 0, Limit: DefaultLimit}
}

// Paginated represents one page of results plus the unpaginated total.
type Paginated[T any] struct {
	Items []T
	Total int64
	Page  Page
}

package engagement

import (
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SalesViewQuery represents the pagination of the sales view
type SalesViewQuery struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// Page returns the validated pagination window
func (q SalesViewQuery) Page() (shared.Page, error) {
	return shared.NewPage(q.Skip, q.Limit)
}

// SalesViewRow is one customer row of the sales pipeline dashboard
type SalesViewRow struct {
	ID               uuid.UUID  `json:"id"`
	Province         string     `json:"province"`
	City             string     `json:"city"`
	Company          string     `json:"company"`
	ContactCount     int64      `json:"contact_count"`
	Status           string     `json:"status"`
	IntentionLevel   *string    `json:"intention_level"`
	SalesFollowCount int64      `json:"sales_follow_count"`
	OrderCount       int64      `json:"order_count"`
	NextFollowDate   *time.Time `json:"next_follow_date"`
	UpdatedAt        time.Time  `json:"updated_at"`
	SalesOwnerName   *string    `json:"sales_owner_name"`
}

// ToSalesViewRow converts an engagement summary to a response row
func ToSalesViewRow(s crm.EngagementSummary) SalesViewRow {
	return SalesViewRow{
		ID:               s.CustomerID,
		Province:         s.Province,
		City:             s.City,
		Company:          s.Company,
		ContactCount:     s.ContactCount,
		Status:           s.Status,
		IntentionLevel:   s.LatestIntentionLevel,
		SalesFollowCount: s.SalesFollowCount,
		OrderCount:       s.OrderCount,
		NextFollowDate:   s.NextFollowDate,
		UpdatedAt:        s.UpdatedAt,
		SalesOwnerName:   s.SalesOwnerName,
	}
}

package persistence

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// engagementQuery computes one row per customer. Child counts come from
// pre-aggregated derived tables so the joins never multiply each other, and
// the latest follow-up is picked with a window function.
const engagementQuery = `
SELECT
	c.id AS customer_id,
	COALESCE(c.province, '') AS province,
	COALESCE(c.city, '') AS city,
	c.company,
	COALESCE(c.status, '') AS status,
	c.next_follow_date,
	c.updated_at,
	e.name AS sales_owner_name,
	COALESCE(ct.cnt, 0) AS contact_count,
	COALESCE(sf.cnt, 0) AS sales_follow_count,
	COALESCE(o.cnt, 0) AS order_count,
	li.intention_level AS latest_intention_level
FROM customers c
LEFT JOIN employees e ON e.id = c.sales_owner_id
LEFT JOIN (
	SELECT customer_id, COUNT(*) AS cnt FROM contacts GROUP BY customer_id
) ct ON ct.customer_id = c.id
LEFT JOIN (
	SELECT customer_id, COUNT(*) AS cnt FROM sales_follows GROUP BY customer_id
) sf ON sf.customer_id = c.id
LEFT JOIN (
	SELECT customer_id, COUNT(*) AS cnt FROM orders GROUP BY customer_id
) o ON o.customer_id = c.id
LEFT JOIN (
	SELECT customer_id, intention_level,
		ROW_NUMBER() OVER (
			PARTITION BY customer_id
			ORDER BY follow_date DESC, created_at DESC, id DESC
		) AS rn
	FROM sales_follows
) li ON li.customer_id = c.id AND li.rn = 1
ORDER BY c.updated_at DESC, c.id
LIMIT ? OFFSET ?`

type engagementRow struct {
	CustomerID           uuid.UUID
	Province             string
	City                 string
	Company              string
	Status               string
	NextFollowDate       *time.Time
	UpdatedAt            time.Time
	SalesOwnerName       *string
	ContactCount         int64
	SalesFollowCount     int64
	OrderCount           int64
	LatestIntentionLevel *string
}

// GormEngagementRepository computes the sales pipeline view in one query.
type GormEngagementRepository struct {
	db *gorm.DB
}

// NewGormEngagementRepository creates a new GormEngagementRepository
func NewGormEngagementRepository(db *gorm.DB) *GormEngagementRepository {
	return &GormEngagementRepository{db: db}
}

// Aggregate returns the summaries for one page of customers
func (r *GormEngagementRepository) Aggregate(ctx context.Context, page shared.Page) ([]crm.EngagementSummary, error) {
	var rows []engagementRow
	if err := r.db.WithContext(ctx).Raw(engagementQuery, page.Limit, page.Skip).Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]crm.EngagementSummary, len(rows))
	for i, row := range rows {
		summaries[i] = crm.EngagementSummary{
			CustomerID:           row.CustomerID,
			Province:             row.Province,
			City:                 row.City,
			Company:              row.Company,
			Status:               row.Status,
			NextFollowDate:       row.NextFollowDate,
			UpdatedAt:            row.UpdatedAt,
			SalesOwnerName:       row.SalesOwnerName,
			ContactCount:         row.ContactCount,
			SalesFollowCount:     row.SalesFollowCount,
			OrderCount:           row.OrderCount,
			LatestIntentionLevel: row.LatestIntentionLevel,
		}
	}
	return summaries, nil
}

// CountCustomers counts all customers
func (r *GormEngagementRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Count(&count).Error
	return count, err
}

var _ crm.EngagementReader = (*GormEngagementRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/order"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
// Headers and items are separate tables; items are always read with an
// explicit query instead of an ORM association.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var header models.OrderModel
	if err := r.db.WithContext(ctx).First(&header, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Order %s not found", id))
		}
		return nil, err
	}

	orders, err := r.attachItems(ctx, []models.OrderModel{header})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// Create inserts the header and every item. When called inside an outer
// transaction the nested call becomes a savepoint.
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	header := models.OrderModelFromDomain(o)
	items := models.OrderItemModelsFromDomain(o)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(header).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.NewDomainError("DUPLICATE_ORDER_NUMBER",
					fmt.Sprintf("Order number %s already exists", o.OrderNumber))
			}
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// UpdateFinancials overwrites status, paid amount and payment date
func (r *GormOrderRepository) UpdateFinancials(ctx context.Context, o *order.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]any{
			"status":       o.Status,
			"paid_amount":  o.PaidAmount,
			"payment_date": o.PaymentDate,
			"updated_at":   o.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Order %s not found", o.ID))
	}
	return nil
}

// List returns one page of matching orders, newest first
func (r *GormOrderRepository) List(ctx context.Context, filter order.OrderFilter, page shared.Page) ([]*order.Order, error) {
	var headers []models.OrderModel
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).
		Order("orders.created_at DESC").
		Order("orders.id").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&headers).Error
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, headers)
}

// ListAll returns every matching order
func (r *GormOrderRepository) ListAll(ctx context.Context, filter order.OrderFilter) ([]*order.Order, error) {
	var headers []models.OrderModel
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).
		Order("orders.created_at DESC").
		Order("orders.id").
		Find(&headers).Error
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, headers)
}

// Count counts matching orders
func (r *GormOrderRepository) Count(ctx context.Context, filter order.OrderFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).
		Count(&count).Error
	return count, err
}

// attachItems loads the items of all headers in a single query and returns
// domain orders in header order.
func (r *GormOrderRepository) attachItems(ctx context.Context, headers []models.OrderModel) ([]*order.Order, error) {
	result := make([]*order.Order, 0, len(headers))
	if len(headers) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(headers))
	for i := range headers {
		ids[i] = headers[i].ID
	}

	var items []models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", ids).
		Order("order_id").
		Order("line_no").
		Find(&items).Error; err != nil {
		return nil, err
	}

	byOrder := make(map[uuid.UUID][]models.OrderItemModel, len(headers))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	for i := range headers {
		result = append(result, headers[i].ToDomain(byOrder[headers[i].ID]))
	}
	return result, nil
}

// applyFilter applies the order filter to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter order.OrderFilter) *gorm.DB {
	if filter.Company != "" {
		query = query.Where(
			"orders.customer_id IN (SELECT c.id FROM customers c WHERE LOWER(c.company) LIKE ? ESCAPE '\\')",
			containsPattern(filter.Company),
		)
	}
	if filter.ProductName != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM order_items oi JOIN products p ON p.id = oi.product_id "+
				"WHERE oi.order_id = orders.id AND LOWER(p.name) LIKE ? ESCAPE '\\')",
			containsPattern(filter.ProductName),
		)
	}
	if filter.Status != "" {
		query = query.Where("orders.status = ?", filter.Status)
	}
	if filter.SalesOwnerID != nil {
		query = query.Where("orders.sales_id = ?", *filter.SalesOwnerID)
	}
	if filter.CustomerID != nil {
		query = query.Where("orders.customer_id = ?", *filter.CustomerID)
	}
	query = whereTime(query, "orders.start_date >= ?", filter.StartFrom)
	query = whereTime(query, "orders.expiry_date <= ?", filter.ExpiryTo)
	query = whereTime(query, "orders.expiry_date >= ?", filter.ExpiryFrom)
	query = whereTime(query, "orders.effective_date >= ?", filter.EffectiveFrom)
	query = whereTime(query, "orders.effective_date <= ?", filter.EffectiveTo)
	return query
}

func whereTime(query *gorm.DB, clause string, t *time.Time) *gorm.DB {
	if t == nil {
		return query
	}
	return query.Where(clause, t.UTC())
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive LIKE pattern that matches s
// literally anywhere in the column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository reads catalog products
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s not found", id))
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs loads all existing products among ids in one query
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	result := make(map[uuid.UUID]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		result[rows[i].ID] = rows[i].ToDomain()
	}
	return result, nil
}

var _ catalog.ProductReader = (*GormProductRepository)(nil)

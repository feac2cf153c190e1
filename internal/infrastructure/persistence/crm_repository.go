package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository reads customers
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Customer %s not found", id))
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GormEmployeeRepository reads employees
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Employee %s not found", id))
		}
		return nil, err
	}
	return &crm.Employee{ID: model.ID, Name: model.Name}, nil
}

var (
	_ crm.CustomerReader = (*GormCustomerRepository)(nil)
	_ crm.EmployeeReader = (*GormEmployeeRepository)(nil)
)

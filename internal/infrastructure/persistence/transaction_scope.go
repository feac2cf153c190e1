package persistence

import (
	"context"

	apporder "github.com/crm/backend/internal/application/order"
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction. Any error from fn rolls
// back every write made through the scoped repositories.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Orders() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) Products() catalog.ProductReader {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) Customers() crm.CustomerReader {
	return NewGormCustomerRepository(r.tx)
}

func (r *gormTransactionalRepositories) Employees() crm.EmployeeReader {
	return NewGormEmployeeRepository(r.tx)
}

var _ apporder.TransactionScope = (*GormTransactionScope)(nil)
var _ apporder.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

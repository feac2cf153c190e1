package order

import (
	"context"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/order"
)

// TransactionalRepositories exposes the repositories bound to one transaction.
type TransactionalRepositories interface {
	Orders() order.OrderRepository
	Products() catalog.ProductReader
	Customers() crm.CustomerReader
	Employees() crm.EmployeeReader
}

// TransactionScope runs fn inside a single database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

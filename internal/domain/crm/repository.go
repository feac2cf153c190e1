package crm

import (
	"context"

	"github.com/google/uuid"
)

// CustomerReader gives read access to customers by id
type CustomerReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
}

// EmployeeReader gives read access to employees by id
type EmployeeReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
}

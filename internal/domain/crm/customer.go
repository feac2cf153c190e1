package crm

import (
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer is the account a sales owner follows up. Its maintenance lives
// in the CRUD layer; this package only reads it.
type Customer struct {
	shared.BaseEntity
	Company        string
	Province       string
	City           string
	Status         string
	NextFollowDate *time.Time
	SalesOwnerID   *uuid.UUID
}

// Employee is the minimal view of a staff member needed for display.
type Employee struct {
	ID   uuid.UUID
	Name string
}

// Contact belongs to exactly one customer.
type Contact struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Name       string
	Phone      string
	CreatedAt  time.Time
}

// SalesFollow is one entry of the follow-up log kept against a customer.
type SalesFollow struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	EmployeeID     uuid.UUID
	FollowDate     time.Time
	IntentionLevel string
	Content        string
	CreatedAt      time.Time
}

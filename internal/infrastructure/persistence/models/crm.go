package models

import (
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/google/uuid"
)

// EmployeeModel is the read model for staff members.
type EmployeeModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// CustomerModel is the persistence model for customers.
type CustomerModel struct {
	BaseModel
	Company        string     `gorm:"type:varchar(200);not null;index"`
	Province       string     `gorm:"type:varchar(50)"`
	City           string     `gorm:"type:varchar(50)"`
	Status         string     `gorm:"type:varchar(30)"`
	NextFollowDate *time.Time
	SalesOwnerID   *uuid.UUID `gorm:"column:sales_owner_id;type:uuid;index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer.
func (m *CustomerModel) ToDomain() *crm.Customer {
	return &crm.Customer{
		BaseEntity:     m.BaseModel.ToDomain(),
		Company:        m.Company,
		Province:       m.Province,
		City:           m.City,
		Status:         m.Status,
		NextFollowDate: m.NextFollowDate,
		SalesOwnerID:   m.SalesOwnerID,
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer.
func CustomerModelFromDomain(c *crm.Customer) *CustomerModel {
	m := &CustomerModel{
		Company:        c.Company,
		Province:       c.Province,
		City:           c.City,
		Status:         c.Status,
		NextFollowDate: c.NextFollowDate,
		SalesOwnerID:   c.SalesOwnerID,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ContactModel is the persistence model for customer contacts.
type ContactModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
	Phone      string    `gorm:"type:varchar(30)"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ContactModelFromDomain creates a persistence model from a domain Contact.
func ContactModelFromDomain(c *crm.Contact) *ContactModel {
	return &ContactModel{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
	}
}

// SalesFollowModel is the persistence model for sales follow-up records.
type SalesFollowModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_sales_follows_customer_date,priority:1"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FollowDate     time.Time `gorm:"not null;index:idx_sales_follows_customer_date,priority:2"`
	IntentionLevel string    `gorm:"type:varchar(30)"`
	Content        string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesFollowModel) TableName() string {
	return "sales_follows"
}

// SalesFollowModelFromDomain creates a persistence model from a domain SalesFollow.
func SalesFollowModelFromDomain(f *crm.SalesFollow) *SalesFollowModel {
	return &SalesFollowModel{
		ID:             f.ID,
		CustomerID:     f.CustomerID,
		EmployeeID:     f.EmployeeID,
		FollowDate:     f.FollowDate,
		IntentionLevel: f.IntentionLevel,
		Content:        f.Content,
		CreatedAt:      f.CreatedAt,
	}
}

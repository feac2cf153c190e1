package persistence

import (
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/order"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// A single connection keeps every statement on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedEmployee(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&models.EmployeeModel{ID: id, Name: name}).Error)
	return id
}

func seedCustomer(t *testing.T, db *gorm.DB, company string, ownerID *uuid.UUID, updatedAt time.Time) uuid.UUID {
	t.Helper()
	c := &crm.Customer{
		BaseEntity:   shared.BaseEntity{ID: uuid.New(), CreatedAt: updatedAt, UpdatedAt: updatedAt},
		Company:      company,
		Province:     "Zhejiang",
		City:         "Hangzhou",
		Status:       "ACTIVE",
		SalesOwnerID: ownerID,
	}
	require.NoError(t, db.Create(models.CustomerModelFromDomain(c)).Error)
	return c.ID
}

func seedContact(t *testing.T, db *gorm.DB, customerID uuid.UUID, name string) {
	t.Helper()
	c := &crm.Contact{ID: uuid.New(), CustomerID: customerID, Name: name, CreatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(models.ContactModelFromDomain(c)).Error)
}

func seedFollow(t *testing.T, db *gorm.DB, customerID, employeeID uuid.UUID, followDate, createdAt time.Time, level string) uuid.UUID {
	t.Helper()
	f := &crm.SalesFollow{
		ID:             uuid.New(),
		CustomerID:     customerID,
		EmployeeID:     employeeID,
		FollowDate:     followDate,
		IntentionLevel: level,
		CreatedAt:      createdAt,
	}
	require.NoError(t, db.Create(models.SalesFollowModelFromDomain(f)).Error)
	return f.ID
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string, rates ...string) *catalog.Product {
	t.Helper()
	p := &catalog.Product{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		Price:         decimal.RequireFromString(price),
		SupplierPrice: decimal.Zero,
	}
	nullable := func(i int) decimal.NullDecimal {
		if i >= len(rates) {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(decimal.RequireFromString(rates[i]))
	}
	p.SalesCommission = nullable(0)
	p.ManagerCommission = nullable(1)
	p.DirectorCommission = nullable(2)
	require.NoError(t, db.Create(models.ProductModelFromDomain(p)).Error)
	return p
}

// buildOrder creates an unsaved order priced from the given products, one unit each
// unless quantities are given.
func buildOrder(t *testing.T, customerID, ownerID uuid.UUID, products []*catalog.Product, quantities ...int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.NewOrderNumber("SO", time.Now()), customerID, ownerID, "")
	require.NoError(t, err)
	for i, p := range products {
		qty := 1
		if i < len(quantities) {
			qty = quantities[i]
		}
		_, err := o.AddItem(p.ID, qty, p.Price)
		require.NoError(t, err)
	}
	return o
}

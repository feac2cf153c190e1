package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crm/backend/internal/domain/order"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockOrderRepository creates a GormOrderRepository over a mocked PostgreSQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func TestGormOrderRepository_FindByID_Postgres(t *testing.T) {
	t.Run("loads header then items by line", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		now := time.Now().UTC()

		header := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "order_number", "customer_id", "sales_id", "status", "total_amount", "paid_amount"}).
			AddRow(orderID.String(), now, now, "SO20240601-ABCDEF123456", uuid.NewString(), uuid.NewString(), "PENDING", "25.0000", "0")
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(header)

		items := sqlmock.NewRows([]string{"id", "order_id", "product_id", "line_no", "quantity", "unit_price", "created_at"}).
			AddRow(uuid.NewString(), orderID.String(), uuid.NewString(), 1, 2, "10.0000", now).
			AddRow(uuid.NewString(), orderID.String(), uuid.NewString(), 2, 2, "2.5000", now)
		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE order_id IN \(\$1\) ORDER BY order_id,line_no`).
			WithArgs(orderID).
			WillReturnRows(items)

		o, err := repo.FindByID(context.Background(), orderID)
		require.NoError(t, err)
		assert.Equal(t, order.OrderStatusPending, o.Status)
		require.Len(t, o.Items, 2)
		assert.True(t, o.TotalAmount.Equal(o.ItemsTotal()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), orderID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_UpdateFinancials_Postgres(t *testing.T) {
	t.Run("writes only the financial columns", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		o := &order.Order{BaseEntity: shared.NewBaseEntity(), Status: order.OrderStatusPaid, PaidAmount: decimal.NewFromInt(100)}
		mock.ExpectExec(`UPDATE "orders" SET "paid_amount"=\$1,"payment_date"=\$2,"status"=\$3,"updated_at"=\$4 WHERE id = \$5`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), o.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateFinancials(context.Background(), o))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no affected rows is not found", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		o := &order.Order{BaseEntity: shared.NewBaseEntity(), Status: order.OrderStatusPaid}
		mock.ExpectExec(`UPDATE "orders" SET .* WHERE id = \$5`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateFinancials(context.Background(), o), shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

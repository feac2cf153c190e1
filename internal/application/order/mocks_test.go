package order

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/order"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateFinancials(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, filter order.OrderFilter, page shared.Page) ([]*order.Order, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context, filter order.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter order.OrderFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductReader is a mock implementation of ProductReader
type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductReader) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*catalog.Product), args.Error(1)
}

// MockCustomerReader is a mock implementation of CustomerReader
type MockCustomerReader struct {
	mock.Mock
}

func (m *MockCustomerReader) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

// MockEmployeeReader is a mock implementation of EmployeeReader
type MockEmployeeReader struct {
	mock.Mock
}

func (m *MockEmployeeReader) FindByID(ctx context.Context, id uuid.UUID) (*crm.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Employee), args.Error(1)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Bind(ctx context.Context, key, resourceID string, ttl time.Duration) error {
	args := m.Called(ctx, key, resourceID, ttl)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

// MockMetrics records business metric calls
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordOrderCreated(ctx context.Context, total decimal.Decimal) {
	m.Called(ctx, total)
}

func (m *MockMetrics) RecordFinancialUpdate(ctx context.Context, status string) {
	m.Called(ctx, status)
}

// fakeScope runs the callback directly against the mocks. committed reports
// whether the last callback returned nil.
type fakeScope struct {
	repos     *fakeRepos
	committed bool
	calls     int
}

func (s *fakeScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	s.calls++
	err := fn(s.repos)
	s.committed = err == nil
	return err
}

type fakeRepos struct {
	orders    *MockOrderRepository
	products  *MockProductReader
	customers *MockCustomerReader
	employees *MockEmployeeReader
}

func (r *fakeRepos) Orders() order.OrderRepository   { return r.orders }
func (r *fakeRepos) Products() catalog.ProductReader { return r.products }
func (r *fakeRepos) Customers() crm.CustomerReader   { return r.customers }
func (r *fakeRepos) Employees() crm.EmployeeReader   { return r.employees }

var (
	_ order.OrderRepository     = (*MockOrderRepository)(nil)
	_ catalog.ProductReader     = (*MockProductReader)(nil)
	_ shared.IdempotencyStore   = (*MockIdempotencyStore)(nil)
	_ MetricsRecorder           = (*MockMetrics)(nil)
	_ TransactionScope          = (*fakeScope)(nil)
	_ TransactionalRepositories = (*fakeRepos)(nil)
)

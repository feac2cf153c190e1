package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/order"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MetricsRecorder receives ledger business events
type MetricsRecorder interface {
	RecordOrderCreated(ctx context.Context, total decimal.Decimal)
	RecordFinancialUpdate(ctx context.Context, status string)
}

// ServiceConfig holds the ledger settings
type ServiceConfig struct {
	// EnforceStatusGraph rejects financial updates that leave the lifecycle graph
	EnforceStatusGraph bool
	NumberPrefix       string
	IdempotencyTTL     time.Duration
}

// OrderService handles the order ledger use cases
type OrderService struct {
	orders      order.OrderRepository
	products    catalog.ProductReader
	scope       TransactionScope
	idempotency shared.IdempotencyStore
	metrics     MetricsRecorder
	cfg         ServiceConfig
	now         func() time.Time
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders order.OrderRepository,
	products catalog.ProductReader,
	scope TransactionScope,
	cfg ServiceConfig,
	logger *zap.Logger,
) *OrderService {
	if cfg.NumberPrefix == "" {
		cfg.NumberPrefix = order.DefaultNumberPrefix
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = shared.DefaultIdempotencyConfig().TTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:   orders,
		products: products,
		scope:    scope,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger,
	}
}

// SetIdempotencyStore enables Idempotency-Key handling on CreateOrder
func (s *OrderService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// SetMetrics sets the business metrics recorder
func (s *OrderService) SetMetrics(m MetricsRecorder) {
	s.metrics = m
}

func (s *OrderService) policy() order.TransitionPolicy {
	if s.cfg.EnforceStatusGraph {
		return order.StrictTransitions
	}
	return order.PermissiveTransitions
}

// CreateOrder prices every line from the catalog and persists the order with
// its items in one transaction. A non-empty idempotencyKey makes retries of
// the same request return the order created by the first one.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest, idempotencyKey string) (*OrderResponse, error) {
	lines := req.Lines()
	if err := order.ValidateLines(lines); err != nil {
		return nil, err
	}

	if idempotencyKey != "" && s.idempotency != nil {
		existing, err := s.claimKey(ctx, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			s.logger.Info("Replaying idempotent order creation",
				zap.String("idempotency_key", idempotencyKey),
				zap.String("order_id", existing.ID.String()),
			)
			response := ToOrderResponse(existing)
			return &response, nil
		}
	}

	created, err := s.createInScope(ctx, req, lines)
	if err != nil {
		if idempotencyKey != "" && s.idempotency != nil {
			if relErr := s.idempotency.Release(ctx, idempotencyKey); relErr != nil {
				s.logger.Warn("Failed to release idempotency key",
					zap.String("idempotency_key", idempotencyKey), zap.Error(relErr))
			}
		}
		return nil, err
	}

	if idempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Bind(ctx, idempotencyKey, created.ID.String(), s.cfg.IdempotencyTTL); err != nil {
			s.logger.Warn("Failed to bind idempotency key",
				zap.String("idempotency_key", idempotencyKey), zap.Error(err))
		}
	}
	if s.metrics != nil {
		s.metrics.RecordOrderCreated(ctx, created.TotalAmount)
	}

	s.logger.Info("Order created",
		zap.String("order_id", created.ID.String()),
		zap.String("order_number", created.OrderNumber),
		zap.Int("items", len(created.Items)),
		zap.String("total_amount", created.TotalAmount.String()),
	)

	response := ToOrderResponse(created)
	return &response, nil
}

func (s *OrderService) createInScope(ctx context.Context, req CreateOrderRequest, lines []order.Line) (*order.Order, error) {
	var created *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Customers().FindByID(ctx, req.CustomerID); err != nil {
			return err
		}
		if _, err := repos.Employees().FindByID(ctx, req.SalesID); err != nil {
			return err
		}

		ids := make([]uuid.UUID, len(lines))
		for i, l := range lines {
			ids[i] = l.ProductID
		}
		products, err := repos.Products().FindByIDs(ctx, ids)
		if err != nil {
			return err
		}

		o, err := order.NewOrder(
			order.NewOrderNumber(s.cfg.NumberPrefix, s.now()),
			req.CustomerID,
			req.SalesID,
			order.OrderStatus(strings.ToUpper(req.Status)),
		)
		if err != nil {
			return err
		}
		if err := o.SetContractDates(order.ContractDates{
			StartDate:     req.StartDate,
			EffectiveDate: req.EffectiveDate,
			ExpiryDate:    req.ExpiryDate,
		}); err != nil {
			return err
		}

		for _, l := range lines {
			p, ok := products[l.ProductID]
			if !ok {
				return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s not found", l.ProductID))
			}
			if _, err := o.AddItem(l.ProductID, l.Quantity, p.Price); err != nil {
				return err
			}
		}

		if err := repos.Orders().Create(ctx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// claimKey reserves key for a new request. It returns the order already
// bound to key when the request is a retry.
func (s *OrderService) claimKey(ctx context.Context, key string) (*order.Order, error) {
	for attempt := 0; attempt < 2; attempt++ {
		reserved, err := s.idempotency.Reserve(ctx, key, s.cfg.IdempotencyTTL)
		if err != nil {
			return nil, err
		}
		if reserved {
			return nil, nil
		}

		resourceID, found, err := s.idempotency.Lookup(ctx, key)
		if err != nil {
			return nil, err
		}
		if !found {
			// expired between Reserve and Lookup
			continue
		}
		if resourceID == "" {
			return nil, shared.NewDomainError("CONFLICT", "A request with this idempotency key is still in progress")
		}

		id, err := uuid.Parse(resourceID)
		if err != nil {
			return nil, fmt.Errorf("idempotency key %q bound to invalid order id %q: %w", key, resourceID, err)
		}
		return s.orders.FindByID(ctx, id)
	}
	return nil, shared.NewDomainError("CONFLICT", "Could not reserve idempotency key")
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListOrders returns one page of matching orders and the total match count
func (s *OrderService) ListOrders(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, int64, error) {
	filter, err := query.Filter()
	if err != nil {
		return nil, 0, err
	}
	page, err := query.Page()
	if err != nil {
		return nil, 0, err
	}

	orders, err := s.orders.List(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// UpdateFinancials overwrites status, paid amount and payment date. Sending
// the values already stored succeeds without writing.
func (s *OrderService) UpdateFinancials(ctx context.Context, id uuid.UUID, req UpdateFinancialsRequest) (*OrderResponse, error) {
	if req.PaidAmount == nil {
		return nil, shared.NewDomainError("INVALID_PAID_AMOUNT", "Paid amount is required")
	}
	financials := order.Financials{
		Status:      order.OrderStatus(strings.ToUpper(req.Status)),
		PaidAmount:  *req.PaidAmount,
		PaymentDate: req.PaymentDate,
	}

	var (
		updated *order.Order
		changed bool
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		changed, err = o.ApplyFinancials(financials, s.policy())
		if err != nil {
			return err
		}
		if changed {
			if err := repos.Orders().UpdateFinancials(ctx, o); err != nil {
				return err
			}
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		if s.metrics != nil {
			s.metrics.RecordFinancialUpdate(ctx, updated.Status.String())
		}
		s.logger.Info("Order financials updated",
			zap.String("order_id", updated.ID.String()),
			zap.String("status", updated.Status.String()),
			zap.String("paid_amount", updated.PaidAmount.String()),
		)
	}

	response := ToOrderResponse(updated)
	return &response, nil
}

// CommissionSummary rolls up revenue and commissions over every order that
// matches the query, using the products' current commission rates.
func (s *OrderService) CommissionSummary(ctx context.Context, query ListOrdersQuery) (*CommissionSummaryResponse, error) {
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	products, err := s.products.FindByIDs(ctx, order.ProductIDs(orders))
	if err != nil {
		return nil, err
	}

	rates := make(map[uuid.UUID]catalog.CommissionRates, len(products))
	for id, p := range products {
		rates[id] = p.Rates()
	}

	response := ToCommissionSummaryResponse(order.RollupCommissions(orders, rates))
	return &response, nil
}

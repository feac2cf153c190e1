package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a nil meter is passed to a metrics constructor.
var ErrMeterNil = errors.New("telemetry: meter is nil")

// OrderMetrics counts ledger activity.
type OrderMetrics struct {
	created          *Counter
	amount           *FloatCounter
	financialUpdates *Counter
}

// NewOrderMetrics registers the order ledger instruments on meter.
func NewOrderMetrics(meter metric.Meter) (*OrderMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	created, err := NewCounter(meter, "crm_order_created_total", "Total number of orders created", "{order}")
	if err != nil {
		return nil, err
	}
	amount, err := NewFloatCounter(meter, "crm_order_amount_total", "Total amount of created orders", "{currency}")
	if err != nil {
		return nil, err
	}
	updates, err := NewCounter(meter, "crm_order_financial_update_total", "Total number of applied financial updates", "{update}")
	if err != nil {
		return nil, err
	}

	return &OrderMetrics{created: created, amount: amount, financialUpdates: updates}, nil
}

// RecordOrderCreated counts one order and adds its total.
func (m *OrderMetrics) RecordOrderCreated(ctx context.Context, total decimal.Decimal) {
	m.created.Inc(ctx)
	m.amount.Add(ctx, total.InexactFloat64())
}

// RecordFinancialUpdate counts one applied financial update by resulting status.
func (m *OrderMetrics) RecordFinancialUpdate(ctx context.Context, status string) {
	m.financialUpdates.Inc(ctx, attribute.String("status", status))
}

package engagement

import (
	"context"

	"github.com/crm/backend/internal/domain/crm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EngagementService serves the customer engagement view
type EngagementService struct {
	reader crm.EngagementReader
	logger *zap.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(reader crm.EngagementReader, logger *zap.Logger) *EngagementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EngagementService{reader: reader, logger: logger}
}

// SalesView returns one row per customer in the requested page together
// with the total number of customers. Both reads run concurrently.
func (s *EngagementService) SalesView(ctx context.Context, query SalesViewQuery) ([]SalesViewRow, int64, error) {
	page, err := query.Page()
	if err != nil {
		return nil, 0, err
	}

	var (
		summaries []crm.EngagementSummary
		total     int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summaries, err = s.reader.Aggregate(gctx, page)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.reader.CountCustomers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	rows := make([]SalesViewRow, len(summaries))
	idle := 0
	for i, summary := range summaries {
		if !summary.HasActivity() {
			idle++
		}
		rows[i] = ToSalesViewRow(summary)
	}
	s.logger.Debug("Sales view computed",
		zap.Int("skip", page.Skip),
		zap.Int("limit", page.Limit),
		zap.Int("rows", len(rows)),
		zap.Int("idle_customers", idle),
		zap.Int64("total", total),
	)

	return rows, total, nil
}

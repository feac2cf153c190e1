package engagement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockEngagementReader is a mock implementation of EngagementReader
type MockEngagementReader struct {
	mock.Mock
}

func (m *MockEngagementReader) Aggregate(ctx context.Context, page shared.Page) ([]crm.EngagementSummary, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.EngagementSummary), args.Error(1)
}

func (m *MockEngagementReader) CountCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestEngagementService_SalesView(t *testing.T) {
	ctx := context.Background()

	t.Run("maps summaries and total", func(t *testing.T) {
		reader := new(MockEngagementReader)
		svc := NewEngagementService(reader, zap.NewNop())

		high := "High"
		owner := "Alice"
		busy := crm.EngagementSummary{
			CustomerID:           uuid.New(),
			Company:              "Busy Co",
			UpdatedAt:            time.Now().UTC(),
			SalesOwnerName:       &owner,
			ContactCount:         2,
			SalesFollowCount:     3,
			OrderCount:           1,
			LatestIntentionLevel: &high,
		}
		idle := crm.EngagementSummary{CustomerID: uuid.New(), Company: "Idle Co"}

		reader.On("Aggregate", mock.Anything, shared.Page{Skip: 0, Limit: shared.DefaultLimit}).
			Return([]crm.EngagementSummary{busy, idle}, nil)
		reader.On("CountCustomers", mock.Anything).Return(int64(42), nil)

		rows, total, err := svc.SalesView(ctx, SalesViewQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(42), total)
		require.Len(t, rows, 2)

		assert.Equal(t, busy.CustomerID, rows[0].ID)
		require.NotNil(t, rows[0].IntentionLevel)
		assert.Equal(t, "High", *rows[0].IntentionLevel)
		assert.Equal(t, int64(3), rows[0].SalesFollowCount)

		assert.Zero(t, rows[1].ContactCount)
		assert.Zero(t, rows[1].SalesFollowCount)
		assert.Zero(t, rows[1].OrderCount)
		assert.Nil(t, rows[1].IntentionLevel)
		reader.AssertExpectations(t)
	})

	t.Run("clamps limit", func(t *testing.T) {
		reader := new(MockEngagementReader)
		svc := NewEngagementService(reader, nil)
		reader.On("Aggregate", mock.Anything, shared.Page{Skip: 5, Limit: shared.MaxLimit}).
			Return([]crm.EngagementSummary{}, nil)
		reader.On("CountCustomers", mock.Anything).Return(int64(0), nil)

		rows, _, err := svc.SalesView(ctx, SalesViewQuery{Skip: 5, Limit: 50000})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("negative pagination is rejected", func(t *testing.T) {
		reader := new(MockEngagementReader)
		svc := NewEngagementService(reader, nil)

		_, _, err := svc.SalesView(ctx, SalesViewQuery{Skip: -1})
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_PAGINATION", de.Code)
		reader.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything)
	})

	t.Run("either read failing fails the view", func(t *testing.T) {
		reader := new(MockEngagementReader)
		svc := NewEngagementService(reader, nil)
		boom := errors.New("db down")
		reader.On("Aggregate", mock.Anything, mock.Anything).Return([]crm.EngagementSummary{}, nil)
		reader.On("CountCustomers", mock.Anything).Return(int64(0), boom)

		_, _, err := svc.SalesView(ctx, SalesViewQuery{})
		assert.ErrorIs(t, err, boom)
	})
}

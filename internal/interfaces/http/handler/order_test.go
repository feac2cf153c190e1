package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	orderapp "github.com/crm/backend/internal/application/order"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// MockOrderService implements OrderService for testing
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req orderapp.CreateOrderRequest, key string) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, req, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, query orderapp.ListOrdersQuery) ([]orderapp.OrderResponse, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]orderapp.OrderResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) UpdateFinancials(ctx context.Context, id uuid.UUID, req orderapp.UpdateFinancialsRequest) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) CommissionSummary(ctx context.Context, query orderapp.ListOrdersQuery) (*orderapp.CommissionSummaryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.CommissionSummaryResponse), args.Error(1)
}

func setupOrderRouter(svc OrderService) *gin.Engine {
	h := NewOrderHandler(svc)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/orders", h.Create)
	r.GET("/orders", h.List)
	r.GET("/orders/commission-summary", h.CommissionSummary)
	r.GET("/orders/:id", h.GetByID)
	r.PUT("/orders/:id/financials", h.UpdateFinancials)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func sampleOrderResponse() *orderapp.OrderResponse {
	return &orderapp.OrderResponse{
		ID:          uuid.New(),
		OrderNumber: "SO20240601-0123456789AB",
		CustomerID:  uuid.New(),
		SalesID:     uuid.New(),
		Status:      "PENDING",
		TotalAmount: decimal.RequireFromString("25.00"),
		PaidAmount:  decimal.Zero,
		OrderItems: []orderapp.OrderItemResponse{
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.RequireFromString("10.00"), Amount: decimal.RequireFromString("20.00")},
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.RequireFromString("5.00"), Amount: decimal.RequireFromString("5.00")},
		},
		CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestOrderHandler_Create(t *testing.T) {
	customerID, salesID, productID := uuid.New(), uuid.New(), uuid.New()
	body := map[string]any{
		"customer_id": customerID,
		"sales_id":    salesID,
		"order_items": []map[string]any{{"product_id": productID, "quantity": 2}},
	}

	t.Run("returns 200 with the created order", func(t *testing.T) {
		svc := new(MockOrderService)
		created := sampleOrderResponse()
		svc.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req orderapp.CreateOrderRequest) bool {
			return req.CustomerID == customerID && req.SalesID == salesID &&
				len(req.OrderItems) == 1 && req.OrderItems[0].ProductID == productID && req.OrderItems[0].Quantity == 2
		}), "key-1").Return(created, nil)

		w, resp := doJSON(t, setupOrderRouter(svc), http.MethodPost, "/orders", body, map[string]string{"Idempotency-Key": " key-1 "})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "25", data["total_amount"])
		assert.Len(t, data["order_items"], 2)
		svc.AssertExpectations(t)
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("CreateOrder", mock.Anything, mock.Anything, "").
			Return(nil, shared.NewDomainError("NOT_FOUND", "Product not found"))

		w, resp := doJSON(t, setupOrderRouter(svc), http.MethodPost, "/orders", body, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
	})

	t.Run("in-flight duplicate is 409", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("CreateOrder", mock.Anything, mock.Anything, "dup").
			Return(nil, shared.NewDomainError("CONFLICT", "in flight"))

		w, _ := doJSON(t, setupOrderRouter(svc), http.MethodPost, "/orders", body, map[string]string{"Idempotency-Key": "dup"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	tests := []struct {
		name      string
		body      map[string]any
		wantField string
	}{
		{
			name:      "empty items",
			body:      map[string]any{"customer_id": customerID, "sales_id": salesID, "order_items": []any{}},
			wantField: "order_items",
		},
		{
			name:      "missing items",
			body:      map[string]any{"customer_id": customerID, "sales_id": salesID},
			wantField: "order_items",
		},
		{
			name:      "zero quantity",
			body:      map[string]any{"customer_id": customerID, "sales_id": salesID, "order_items": []map[string]any{{"product_id": productID, "quantity": 0}}},
			wantField: "order_items[0].quantity",
		},
		{
			name:      "negative quantity",
			body:      map[string]any{"customer_id": customerID, "sales_id": salesID, "order_items": []map[string]any{{"product_id": productID, "quantity": -3}}},
			wantField: "order_items[0].quantity",
		},
		{
			name:      "missing customer",
			body:      map[string]any{"sales_id": salesID, "order_items": []map[string]any{{"product_id": productID, "quantity": 1}}},
			wantField: "customer_id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOrderService)
			w, resp := doJSON(t, setupOrderRouter(svc), http.MethodPost, "/orders", tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
			fields := make([]string, 0, len(resp.Error.Details))
			for _, d := range resp.Error.Details {
				fields = append(fields, d.Field)
			}
			assert.Contains(t, fields, tt.wantField)
			svc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("malformed uuid", func(t *testing.T) {
		svc := new(MockOrderService)
		w, resp := doJSON(t, setupOrderRouter(svc), http.MethodPost, "/orders",
			map[string]any{"customer_id": "nope", "sales_id": salesID, "order_items": []map[string]any{{"product_id": productID, "quantity": 1}}}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
		svc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderHandler_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(MockOrderService)
		o := sampleOrderResponse()
		svc.On("GetOrder", mock.Anything, o.ID).Return(o, nil)

		w, resp := doJSON(t, setupOrderRouter(svc), http.MethodGet, "/orders/"+o.ID.String(), nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, o.OrderNumber, resp.Data.(map[string]any)["order_number"])
	})

	t.Run("bad id", func(t *testing.T) {
		w, resp := doJSON(t, setupOrderRouter(new(MockOrderService)), http.MethodGet, "/orders/not-a-uuid", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidID, resp.Error.Code)
	})

	t.Run("unexpected error is 500 without details", func(t *testing.T) {
		svc := new(MockOrderService)
		id := uuid.New()
		svc.On("GetOrder", mock.Anything, id).Return(nil, errors.New("connection reset"))

		w, resp := doJSON(t, setupOrderRouter(svc), http.MethodGet, "/orders/"+id.String(), nil, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "connection reset")
	})
}

func TestOrderHandler_List(t *testing.T) {
	t.Run("binds filters and returns meta", func(t *testing.T) {
		svc := new(MockOrderService)
		want := orderapp.ListOrdersQuery{Company: "acme", Status: "paid", StartDate: "2024-01-01", Skip: 20, Limit: 10}
		svc.On("ListOrders", mock.Anything, want).
			Return([]orderapp.OrderResponse{*sampleOrderResponse()}, int64(35), nil)

		w, resp := doJSON(t, setupOrderRouter(svc), http.MethodGet,
			"/orders?company=acme&status=paid&start_date=2024-01-01&skip=20&limit=10", nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(35), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.Page)
		assert.Equal(t, 10, resp.Meta.PageSize)
		assert.Equal(t, 4, resp.Meta.TotalPages)
		svc.AssertExpectations(t)
	})

	t.Run("defaults", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ListOrders", mock.Anything, orderapp.ListOrdersQuery{}).
			Return([]orderapp.OrderResponse{}, int64(0), nil)

		w, resp := doJSON(t, setupOrderRouter(svc), http.MethodGet, "/orders", nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, shared.DefaultLimit, resp.Meta.PageSize)
		assert.Equal(t, []any{}, resp.Data)
	})

	t.Run("negative skip", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ListOrders", mock.Anything, mock.Anything).
			Return(nil, int64(0), shared.NewDomainError("INVALID_PAGINATION", "skip must be >= 0, got -1"))

		w, resp := doJSON(t, setupOrderRouter(svc), http.MethodGet, "/orders?skip=-1", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidPagination, resp.Error.Code)
	})

	t.Run("non numeric limit", func(t *testing.T) {
		svc := new(MockOrderService)
		w, resp := doJSON(t, setupOrderRouter(svc), http.MethodGet, "/orders?limit=ten", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
		svc.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything)
	})
}

func TestOrderHandler_UpdateFinancials(t *testing.T) {
	id := uuid.New()

	t.Run("ok", func(t *testing.T) {
		svc := new(MockOrderService)
		updated := sampleOrderResponse()
		updated.Status = "PAID"
		svc.On("UpdateFinancials", mock.Anything, id, mock.MatchedBy(func(req orderapp.UpdateFinancialsRequest) bool {
			return req.Status == "PAID" && req.PaidAmount != nil && req.PaidAmount.Equal(decimal.RequireFromString("25.00")) &&
				req.PaymentDate != nil
		})).Return(updated, nil)

		w, resp := doJSON(t, setupOrderRouter(svc), http.MethodPut, "/orders/"+id.String()+"/financials",
			map[string]any{"status": "PAID", "paid_amount": "25.00", "payment_date": "2024-06-02T00:00:00Z"}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "PAID", resp.Data.(map[string]any)["status"])
		svc.AssertExpectations(t)
	})

	t.Run("missing paid amount", func(t *testing.T) {
		svc := new(MockOrderService)
		w, resp := doJSON(t, setupOrderRouter(svc), http.MethodPut, "/orders/"+id.String()+"/financials",
			map[string]any{"status": "PAID"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", shared.NewDomainError("NOT_FOUND", "Order not found"), http.StatusNotFound, dto.ErrCodeNotFound},
		{"unknown status", shared.NewDomainError("INVALID_STATUS", "Unknown order status"), http.StatusBadRequest, dto.ErrCodeInvalidStatus},
		{"edge outside graph", shared.NewDomainError("INVALID_STATE", "Cannot move"), http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"negative paid amount", shared.NewDomainError("INVALID_PAID_AMOUNT", "Paid amount must be >= 0"), http.StatusBadRequest, dto.ErrCodeInvalidPaidAmount},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOrderService)
			svc.On("UpdateFinancials", mock.Anything, id, mock.Anything).Return(nil, tt.err)

			w, resp := doJSON(t, setupOrderRouter(svc), http.MethodPut, "/orders/"+id.String()+"/financials",
				map[string]any{"status": "PAID", "paid_amount": 1}, nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestOrderHandler_CommissionSummary(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("CommissionSummary", mock.Anything, orderapp.ListOrdersQuery{ProductName: "widget"}).
		Return(&orderapp.CommissionSummaryResponse{
			TotalAmount:             decimal.RequireFromString("50.00"),
			TotalSalesCommission:    decimal.RequireFromString("5.00"),
			TotalManagerCommission:  decimal.RequireFromString("2.50"),
			TotalDirectorCommission: decimal.RequireFromString("1.25"),
			OrderCount:              2,
		}, nil)

	w, resp := doJSON(t, setupOrderRouter(svc), http.MethodGet, "/orders/commission-summary?product_name=widget", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "5", data["total_sales_commission"])
	assert.Equal(t, "2.5", data["total_manager_commission"])
	assert.Equal(t, "1.25", data["total_director_commission"])
	assert.Equal(t, float64(2), data["order_count"])
	svc.AssertExpectations(t)
}

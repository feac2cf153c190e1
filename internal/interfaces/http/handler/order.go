package handler

import (
	"context"
	"strings"

	orderapp "github.com/crm/backend/internal/application/order"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderService is the order ledger as seen by the HTTP layer
type OrderService interface {
	CreateOrder(ctx context.Context, req orderapp.CreateOrderRequest, idempotencyKey string) (*orderapp.OrderResponse, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*orderapp.OrderResponse, error)
	ListOrders(ctx context.Context, query orderapp.ListOrdersQuery) ([]orderapp.OrderResponse, int64, error)
	UpdateFinancials(ctx context.Context, id uuid.UUID, req orderapp.UpdateFinancialsRequest) (*orderapp.OrderResponse, error)
	CommissionSummary(ctx context.Context, query orderapp.ListOrdersQuery) (*orderapp.CommissionSummaryResponse, error)
}

// maxIdempotencyKeyLength bounds the Idempotency-Key header
const maxIdempotencyKeyLength = 255

// OrderHandler handles order ledger API endpoints
type OrderHandler struct {
	BaseHandler
	orderService OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create godoc
// @Summary      Create an order
// @Description  Create an order with its items. Unit prices are copied from the product catalog.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client key that makes retries return the first result"
// @Param        request body orderapp.CreateOrderRequest true "Order creation request"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	key := strings.TrimSpace(c.GetHeader(middleware.IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLength {
		h.BadRequest(c, "Idempotency-Key is too long")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByID godoc
// @Summary      Get order by ID
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List godoc
// @Summary      List orders
// @Description  Newest first. Text filters match case-insensitive substrings.
// @Tags         orders
// @Produce      json
// @Param        company query string false "Customer company contains"
// @Param        product_name query string false "Any item's product name contains"
// @Param        status query string false "Order status" Enums(PENDING, PARTIALLY_PAID, PAID, PROCESSING, SHIPPED, COMPLETED, CANCELED)
// @Param        sales_id query string false "Sales owner ID" format(uuid)
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        start_date query string false "Contract start on or after (YYYY-MM-DD)"
// @Param        end_date query string false "Contract expiry on or before (YYYY-MM-DD)"
// @Param        effective_from query string false "Effective date on or after"
// @Param        effective_to query string false "Effective date on or before"
// @Param        expiry_from query string false "Expiry date on or after"
// @Param        expiry_to query string false "Expiry date on or before"
// @Param        skip query int false "Rows to skip" default(0)
// @Param        limit query int false "Page size" default(100) maximum(1000)
// @Success      200 {object} dto.Response{data=[]orderapp.OrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var query orderapp.ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, err := query.Page()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithPage(c, orders, total, page)
}

// UpdateFinancials godoc
// @Summary      Update order financials
// @Description  Overwrite status, paid amount and payment date. Repeating the same values is a no-op.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body orderapp.UpdateFinancialsRequest true "Financial state"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/financials [put]
func (h *OrderHandler) UpdateFinancials(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req orderapp.UpdateFinancialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.UpdateFinancials(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// CommissionSummary godoc
// @Summary      Commission rollup
// @Description  Revenue and commission totals over every order matching the filters. Pagination is ignored.
// @Tags         orders
// @Produce      json
// @Param        company query string false "Customer company contains"
// @Param        product_name query string false "Any item's product name contains"
// @Param        status query string false "Order status"
// @Param        sales_id query string false "Sales owner ID" format(uuid)
// @Success      200 {object} dto.Response{data=orderapp.CommissionSummaryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/commission-summary [get]
func (h *OrderHandler) CommissionSummary(c *gin.Context) {
	var query orderapp.ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	summary, err := h.orderService.CommissionSummary(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

package handler

import (
	"context"

	"github.com/crm/backend/internal/application/engagement"
	"github.com/gin-gonic/gin"
)

// EngagementService computes the sales pipeline dashboard
type EngagementService interface {
	SalesView(ctx context.Context, query engagement.SalesViewQuery) ([]engagement.SalesViewRow, int64, error)
}

// SalesViewHandler handles the customer engagement view
type SalesViewHandler struct {
	BaseHandler
	engagementService EngagementService
}

// NewSalesViewHandler creates a new SalesViewHandler
func NewSalesViewHandler(engagementService EngagementService) *SalesViewHandler {
	return &SalesViewHandler{engagementService: engagementService}
}

// List godoc
// @Summary      Sales view
// @Description  One row per customer with contact, follow-up and order counts and the latest intention level.
// @Tags         sales-view
// @Produce      json
// @Param        skip query int false "Customers to skip" default(0)
// @Param        limit query int false "Page size" default(100) maximum(1000)
// @Success      200 {object} dto.Response{data=[]engagement.SalesViewRow,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales-view [get]
func (h *SalesViewHandler) List(c *gin.Context) {
	var query engagement.SalesViewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	rows, total, err := h.engagementService.SalesView(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, err := query.Page()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithPage(c, rows, total, page)
}

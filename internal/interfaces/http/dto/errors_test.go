package dto

import (
	"net/http"
	"testing"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		domainCode string
		want       string
		status     int
	}{
		{"NOT_FOUND", ErrCodeNotFound, http.StatusNotFound},
		{"EMPTY_ORDER", ErrCodeEmptyOrder, http.StatusBadRequest},
		{"INVALID_QUANTITY", ErrCodeInvalidQuantity, http.StatusBadRequest},
		{"INVALID_STATUS", ErrCodeInvalidStatus, http.StatusBadRequest},
		{"INVALID_PAGINATION", ErrCodeInvalidPagination, http.StatusBadRequest},
		{"INVALID_PRODUCT", ErrCodeInvalidInput, http.StatusBadRequest},
		{"INVALID_STATE", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"CONFLICT", ErrCodeConflict, http.StatusConflict},
		{"DUPLICATE_ORDER_NUMBER", ErrCodeAlreadyExists, http.StatusConflict},
		{"SOMETHING_ELSE", "SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.domainCode, func(t *testing.T) {
			got := NormalizeErrorCode(tt.domainCode)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.status, GetHTTPStatus(got))
		})
	}
}

func TestGetHTTPStatus_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_NOPE"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, GetHTTPStatus(ErrCodeRequestTooLarge))
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Order not found", "req-1")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	if assert.NotNil(t, resp.Error) {
		assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "Order not found", resp.Error.Message)
		assert.Equal(t, "req-1", resp.Error.RequestID)
		assert.NotZero(t, resp.Error.Timestamp)
	}
}

func TestNewErrorResponse_Normalizes(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "missing")
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "order_items", Message: "Must be at least 1"},
		{Field: "customer_id", Message: "This field is required"},
	}

	resp := NewValidationErrorResponse("Request validation failed", "req-2", details)

	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "order_items", resp.Error.Details[0].Field)
}

func TestNewSuccessResponseWithPage(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       shared.Page
		wantPage   int
		wantPages  int
		wantLength int
	}{
		{"first page", 250, shared.Page{Skip: 0, Limit: 100}, 1, 3, 100},
		{"third page", 250, shared.Page{Skip: 200, Limit: 100}, 3, 3, 100},
		{"unaligned skip", 10, shared.Page{Skip: 5, Limit: 3}, 2, 4, 3},
		{"empty", 0, shared.Page{Skip: 0, Limit: 10}, 1, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSuccessResponseWithPage([]int{}, tt.total, tt.page)
			assert.True(t, resp.Success)
			assert.Equal(t, tt.total, resp.Meta.Total)
			assert.Equal(t, tt.wantPage, resp.Meta.Page)
			assert.Equal(t, tt.wantPages, resp.Meta.TotalPages)
			assert.Equal(t, tt.wantLength, resp.Meta.PageSize)
		})
	}
}

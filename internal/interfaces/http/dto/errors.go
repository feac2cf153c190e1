package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown            = "ERR_UNKNOWN"
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// Validation error codes
const (
	// ErrCodeValidation is used when request binding fails field validation
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeEmptyOrder is used when an order has no lines
	ErrCodeEmptyOrder = "ERR_EMPTY_ORDER"
	// ErrCodeInvalidQuantity is used for non-positive line quantities
	ErrCodeInvalidQuantity = "ERR_INVALID_QUANTITY"
	// ErrCodeInvalidStatus is used for unknown order status strings
	ErrCodeInvalidStatus     = "ERR_INVALID_STATUS"
	ErrCodeInvalidPaidAmount = "ERR_INVALID_PAID_AMOUNT"
	ErrCodeInvalidDate       = "ERR_INVALID_DATE"
	ErrCodeInvalidDateRange  = "ERR_INVALID_DATE_RANGE"
	ErrCodeInvalidID         = "ERR_INVALID_ID"
	ErrCodeInvalidPagination = "ERR_INVALID_PAGINATION"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a referenced order, product, customer or employee does not exist
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when an order number is taken
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used when an idempotent request is still in flight
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when a status change leaves the lifecycle graph
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Input error codes
const (
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:            http.StatusInternalServerError,
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeEmptyOrder:        http.StatusBadRequest,
	ErrCodeInvalidQuantity:   http.StatusBadRequest,
	ErrCodeInvalidStatus:     http.StatusBadRequest,
	ErrCodeInvalidPaidAmount: http.StatusBadRequest,
	ErrCodeInvalidDate:       http.StatusBadRequest,
	ErrCodeInvalidDateRange:  http.StatusBadRequest,
	ErrCodeInvalidID:         http.StatusBadRequest,
	ErrCodeInvalidPagination: http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"CONFLICT":               ErrCodeConflict,
	"DUPLICATE_ORDER_NUMBER": ErrCodeAlreadyExists,
	"INVALID_STATE":          ErrCodeInvalidState,
	"INVALID_INPUT":          ErrCodeInvalidInput,
	"VALIDATION_ERROR":       ErrCodeValidation,
	"EMPTY_ORDER":            ErrCodeEmptyOrder,
	"INVALID_QUANTITY":       ErrCodeInvalidQuantity,
	"INVALID_STATUS":         ErrCodeInvalidStatus,
	"INVALID_PAID_AMOUNT":    ErrCodeInvalidPaidAmount,
	"INVALID_DATE":           ErrCodeInvalidDate,
	"INVALID_DATE_RANGE":     ErrCodeInvalidDateRange,
	"INVALID_ID":             ErrCodeInvalidID,
	"INVALID_PAGINATION":     ErrCodeInvalidPagination,
	"BAD_REQUEST":            ErrCodeBadRequest,
	"INTERNAL_ERROR":         ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unlisted INVALID_* codes fall back to ERR_INVALID_INPUT; anything else is
// returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	if strings.HasPrefix(code, "INVALID_") {
		return ErrCodeInvalidInput
	}
	return code
}

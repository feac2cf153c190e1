package handler

import (
	"errors"
	"net/http"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithPage sends a success response with pagination meta
func (h *BaseHandler) SuccessWithPage(c *gin.Context, data any, total int64, page shared.Page) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithPage(data, total, page))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// BindError sends a 400 response for a failed ShouldBind*
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	middleware.HandleBindError(c, err)
}

// HandleError converts domain errors to HTTP responses. Anything that is not
// a DomainError is logged and reported as a 500 without its message.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err))
	_ = c.Error(err)
	h.InternalError(c, "An unexpected error occurred")
}

// parseIDParam reads a UUID path parameter, answering 400 when malformed
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidID, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupValidatorOnce sync.Once

// SetupValidator makes validation errors report JSON (or form) field names
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name == "" {
					name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
				}
				return name
			})
		}
	})
}

// ValidationDetails converts validator errors to response details. It returns
// nil for errors that did not come from the validator, such as malformed JSON.
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   fieldPath(e),
			Message: getValidationMessage(e),
		})
	}
	return details
}

// HandleBindError answers a failed ShouldBind* with 400. Validator failures
// carry per-field details; decoding failures report the decoder message.
func HandleBindError(c *gin.Context, err error) {
	requestID := GetRequestID(c)
	if details := ValidationDetails(err); details != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Request validation failed", requestID, details))
		return
	}
	code := dto.ErrCodeBadRequest
	if isDecodeError(err) {
		code = dto.ErrCodeInvalidJSON
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(code, err.Error(), requestID))
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF)
}

// fieldPath drops the root struct name from the namespace,
// e.g. "CreateOrderRequest.order_items[0].quantity" -> "order_items[0].quantity".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind() == reflect.Slice {
			return "Must contain at least " + e.Param() + " item(s)"
		}
		return "Must be at least " + e.Param()
	case "max":
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}

// Package middleware provides HTTP middleware for the CRM API.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key holding the request ID
	RequestIDKey = "request_id"
	// RequestIDHeader carries the request ID in and out
	RequestIDHeader = "X-Request-ID"
	// MaxRequestIDLength bounds client supplied request IDs
	MaxRequestIDLength = 128
)

// RequestID adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > MaxRequestIDLength {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request ID set by RequestID, falling back to the header
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

// CORS builds the CORS middleware from the HTTP settings. An empty origin
// list disables cross-origin responses entirely.
func CORS(cfg config.HTTPConfig) gin.HandlerFunc {
	if len(cfg.CORSAllowOrigins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	corsCfg := cors.Config{
		AllowMethods:  cfg.CORSAllowMethods,
		AllowHeaders:  cfg.CORSAllowHeaders,
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(corsCfg.AllowMethods) == 0 {
		corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	}
	if len(corsCfg.AllowHeaders) == 0 {
		corsCfg.AllowHeaders = []string{"Authorization", "Content-Type", RequestIDHeader, IdempotencyKeyHeader}
	}

	for _, o := range cfg.CORSAllowOrigins {
		if o == "*" {
			corsCfg.AllowAllOrigins = true
			break
		}
	}
	if !corsCfg.AllowAllOrigins {
		corsCfg.AllowOrigins = cfg.CORSAllowOrigins
		corsCfg.AllowCredentials = true
	}

	return cors.New(corsCfg)
}

// IdempotencyKeyHeader is read by order creation
const IdempotencyKeyHeader = "Idempotency-Key"

// BodyLimit returns a middleware that limits request body size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size",
				GetRequestID(c),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// Secure adds the standard security headers
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// NoRoute answers unknown routes with the error envelope
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound,
			"Route "+strings.ToUpper(c.Request.Method)+" "+c.Request.URL.Path+" not found",
			GetRequestID(c),
		))
	}
}

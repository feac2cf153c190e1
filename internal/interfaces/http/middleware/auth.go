package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth context keys
const (
	AuthClaimsKey   = "auth_claims"
	AuthCallerIDKey = "auth_caller_id"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
)

// TokenVerifier validates a bearer token
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

// AuthConfig holds configuration for the bearer token middleware
type AuthConfig struct {
	Verifier TokenVerifier
	// SkipPaths are exact paths that need no token
	SkipPaths []string
	Logger    *zap.Logger
}

// Authenticate requires a valid bearer token and records the caller identity
// in both the gin context and the request context. It identifies the caller
// only; no authorization decision is taken here.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, log, auth.ErrInvalidToken, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, log, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		if token == "" {
			abortUnauthorized(c, log, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.Verifier.Verify(token)
		if err != nil {
			abortUnauthorized(c, log, err, "Token validation failed")
			return
		}

		callerID := claims.CallerID()
		c.Set(AuthClaimsKey, claims)
		c.Set(AuthCallerIDKey, callerID)
		c.Request = c.Request.WithContext(logger.WithCallerID(c.Request.Context(), callerID))

		c.Next()
	}
}

// GetCallerID returns the authenticated caller, or "" when auth is off
func GetCallerID(c *gin.Context) string {
	return c.GetString(AuthCallerIDKey)
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, err error, message string) {
	log.Warn("Authentication failed",
		zap.Error(err),
		zap.String("message", message),
		zap.String("path", c.Request.URL.Path),
	)

	code := dto.ErrCodeUnauthorized
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrCodeTokenExpired
		message = "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid), errors.Is(err, auth.ErrMissingSubject):
		code = dto.ErrCodeTokenInvalid
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

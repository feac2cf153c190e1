// Package auth reads the caller identity from bearer tokens issued by the
// identity service. Tokens are never minted here outside of tests.
package auth

import (
	"errors"
	"time"

	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingSubject   = errors.New("missing subject in claims")
)

// Claims are the token claims the CRM reads
type Claims struct {
	jwt.RegisteredClaims
	EmployeeID string `json:"employee_id,omitempty"`
	Username   string `json:"username,omitempty"`
}

// CallerID returns the employee id when present, else the subject
func (c *Claims) CallerID() string {
	if c.EmployeeID != "" {
		return c.EmployeeID
	}
	return c.Subject
}

// TokenVerifier validates HMAC-signed bearer tokens
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a verifier from the JWT settings
func NewTokenVerifier(cfg config.JWTConfig) *TokenVerifier {
	return &TokenVerifier{secret: []byte(cfg.Secret), issuer: cfg.Issuer}
}

// Verify parses tokenString and returns its claims
func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.CallerID() == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

// Sign issues an HS256 token for employeeID valid for ttl. Used by tests and
// local tooling.
func (v *TokenVerifier) Sign(employeeID uuid.UUID, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    v.issuer,
			Subject:   employeeID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		EmployeeID: employeeID.String(),
		Username:   username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

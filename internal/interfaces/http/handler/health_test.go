package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	healthy := pingFunc(func(context.Context) error { return nil })
	broken := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	newRouter := func(checks map[string]Pinger) *gin.Engine {
		h := NewHealthHandler(checks)
		r := gin.New()
		r.GET("/health", h.Health)
		r.GET("/ready", h.Ready)
		return r
	}

	t.Run("liveness ignores dependencies", func(t *testing.T) {
		w, resp := doJSON(t, newRouter(map[string]Pinger{"database": broken}), http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
	})

	t.Run("ready", func(t *testing.T) {
		w, resp := doJSON(t, newRouter(map[string]Pinger{"database": healthy, "redis": nil}), http.MethodGet, "/ready", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"database": "ok"}, resp.Data)
	})

	t.Run("not ready", func(t *testing.T) {
		w, resp := doJSON(t, newRouter(map[string]Pinger{"database": broken, "redis": healthy}), http.MethodGet, "/ready", nil, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodeServiceUnavailable, resp.Error.Code)
		assert.Equal(t, map[string]any{"database": "connection refused", "redis": "ok"}, resp.Data)
	})
}

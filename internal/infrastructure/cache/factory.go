package cache

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore returns a Redis store when Redis is enabled and
// reachable, and an in-memory store otherwise.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) shared.IdempotencyStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(0)
	}

	store, err := NewRedisIdempotencyStore(ctx, cfg.Addr(), cfg.Password, cfg.DB)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore(0)
	}

	logger.Info("Using Redis idempotency store", zap.String("addr", cfg.Addr()))
	return store
}

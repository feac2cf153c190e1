package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled    bool
	LogFullSQL bool   // include bound variables in spans (dev only)
	DBSystem   string // default: "postgresql"
}

// RegisterDBTracing installs the otelgorm plugin so every statement becomes
// a child span of the request span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	system := cfg.DBSystem
	if system == "" {
		system = "postgresql"
	}
	opts := []otelgorm.Option{otelgorm.WithDBName(system)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	logger.Info("Database tracing enabled", zap.Bool("full_sql", cfg.LogFullSQL))
	return nil
}

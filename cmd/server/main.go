package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crm/backend/internal/application/engagement"
	orderapp "github.com/crm/backend/internal/application/order"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/cache"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/infrastructure/telemetry"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	})
	if err != nil {
		panic("Failed to initialize log export: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, logsProvider.Core(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting CRM Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.Profiling.ApplicationName,
	}, log)
	if err != nil {
		log.Warn("Continuous profiling unavailable", zap.Error(err))
	} else if cfg.Profiling.Enabled {
		tracerProvider.LinkProfiles()
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
	}, log); err != nil {
		log.Warn("Database tracing unavailable", zap.Error(err))
	}

	idempotencyStore := cache.NewIdempotencyStore(ctx, cfg.Redis, log)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	engagementRepo := persistence.NewGormEngagementRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	orderService := orderapp.NewOrderService(orderRepo, productRepo, scope, orderapp.ServiceConfig{
		EnforceStatusGraph: cfg.Order.EnforceStatusGraph,
		NumberPrefix:       cfg.Order.NumberPrefix,
		IdempotencyTTL:     cfg.Order.IdempotencyTTL,
	}, log.Named("orders"))
	orderService.SetIdempotencyStore(idempotencyStore)

	orderMetrics, err := telemetry.NewOrderMetrics(meterProvider.Meter("crm/orders"))
	if err != nil {
		log.Warn("Order metrics unavailable", zap.Error(err))
	} else {
		orderService.SetMetrics(orderMetrics)
	}

	engagementService := engagement.NewEngagementService(engagementRepo, log.Named("engagement"))

	checks := map[string]handler.Pinger{"database": db}
	if p, ok := idempotencyStore.(handler.Pinger); ok {
		checks["redis"] = p
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	opts := router.Options{
		HTTP:        cfg.HTTP,
		ServiceName: cfg.Telemetry.ServiceName,
		Tracing:     cfg.Telemetry.Enabled,
		Logger:      log,
	}
	if cfg.JWT.Enabled {
		opts.Verifier = auth.NewTokenVerifier(cfg.JWT)
	}
	engine := router.New(router.Handlers{
		Orders:    handler.NewOrderHandler(orderService),
		SalesView: handler.NewSalesViewHandler(engagementService),
		Health:    handler.NewHealthHandler(checks),
	}, opts)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			log.Warn("Profiler stop failed", zap.Error(err))
		}
	}
	telemetry.ShutdownAll(shutdownCtx, log,
		tracerProvider.Shutdown,
		meterProvider.Shutdown,
		logsProvider.Shutdown,
	)

	log.Info("Server exited gracefully")
}

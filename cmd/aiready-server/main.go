// cmd/aiready-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"aiready-check/internal/api"
	"aiready-check/internal/common/config"
	"aiready-check/internal/common/database"
	"aiready-check/internal/common/logger"
	"aiready-check/internal/common/observability"
	"aiready-check/internal/sink"
	"aiready-check/internal/submission"
	"aiready-check/internal/wizard"
)

// retryWithBackoff attempts infrastructure connections with exponential
// backoff. Distinct from the submission pipeline's linear schedule, which is
// contractual; this one only guards startup.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting aiready-server",
		zap.String("environment", cfg.App.Environment),
		zap.String("sessionBackend", cfg.Session.Backend),
		zap.String("sinkBackend", cfg.Sink.Backend),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Session store ---
	var store wizard.Store = wizard.NewMemoryStore()
	if cfg.Session.Backend == "redis" {
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Session.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()

		store = wizard.NewRedisStore(redisClient.Client, cfg.Session.TTL())
		zapLog.Info("Redis session store connected")
	}

	// --- Row sink ---
	// An unconfigured sink is not fatal: the wizard and scoring stay
	// available, only submission is disabled.
	var rowSink sink.RowSink
	switch cfg.Sink.Backend {
	case "sheets":
		sheetsSink, err := sink.NewSheetsSink(ctx, cfg.Sink.Sheets, log)
		if err != nil {
			zapLog.Warn("sheets sink unavailable, submission disabled", zap.Error(err))
		} else {
			rowSink = sheetsSink
			zapLog.Info("Sheets sink initialized", zap.String("worksheet", cfg.Sink.Sheets.Worksheet))
		}
	case "postgres":
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Sink.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Warn("postgres sink unavailable, submission disabled", zap.Error(err))
		} else {
			defer pg.Close()
			rowSink = sink.NewPostgresSink(pg.DB, cfg.Sink.Postgres.Table, log)
			zapLog.Info("Postgres sink initialized", zap.String("table", cfg.Sink.Postgres.Table))
		}
	default:
		zapLog.Warn("no sink configured, running in scoring-only mode")
	}

	pipeline := submission.NewPipeline(rowSink, cfg.Submission, obs, log)
	handler := api.NewHandler(store, pipeline, log)
	router := api.NewRouter(handler, log)

	// --- Metrics endpoint ---
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("metrics listening", zap.String("addr", cfg.Server.MetricsAddr()))
		if err := http.ListenAndServe(cfg.Server.MetricsAddr(), nil); err != nil && err != http.ErrServerClosed {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()

	// --- HTTP server ---
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("http listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
}

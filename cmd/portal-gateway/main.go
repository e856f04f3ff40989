// cmd/portal-gateway/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"carrier-portal/internal/common/auth"
	"carrier-portal/internal/common/config"
	"carrier-portal/internal/common/database"
	"carrier-portal/internal/common/logger"
	"carrier-portal/internal/common/observability"
	"carrier-portal/internal/gateway"
	"carrier-portal/internal/notify"
	"carrier-portal/internal/wizard/progress"
	"carrier-portal/internal/wizard/submitter"
)

// retryWithBackoff attempts to execute a function with exponential backoff
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting portal gateway...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("portal-gateway")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Progress Store ---
	var store progress.Store
	switch cfg.Storage.Backend {
	case "redis":
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")

		store = progress.NewRedisStore(redis, cfg.Storage.ProgressTTLDuration())

	case "badger":
		badgerStore, err := progress.OpenBadgerStore(cfg.Storage.BadgerPath)
		if err != nil {
			zapLog.Fatal("badger open failed", zap.Error(err))
		}
		defer badgerStore.Close()
		zapLog.Info("Badger store opened", zap.String("path", cfg.Storage.BadgerPath))
		store = badgerStore

	case "memory":
		store = progress.NewMemoryStore()
		zapLog.Warn("using in-memory progress store; records do not survive restart")

	default:
		zapLog.Fatal("unknown storage backend", zap.String("backend", cfg.Storage.Backend))
	}

	// --- Init Upstream Submitter ---
	submit := submitter.NewClient(
		cfg.Upstream.BaseURL,
		cfg.Upstream.SubmitTimeoutDuration(),
		cfg.Upstream.UploadTimeoutDuration(),
		log,
	)
	zapLog.Info("Upstream submitter initialized", zap.String("baseUrl", cfg.Upstream.BaseURL))

	// --- Init Token Guard ---
	guard := auth.NewGuard(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.Leeway)*time.Second)
	if cfg.Auth.JWTSecret == "" {
		zapLog.Warn("no JWT secret configured; tokens are decoded without signature verification")
	}

	// --- Init Notifier ---
	var notifier notify.Notifier = notify.NewNoOpNotifier()
	if cfg.Notifications.Email.Enabled {
		sesNotifier, err := notify.NewSESNotifier(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.Email.FromEmail, log)
		if err != nil {
			zapLog.Fatal("SES notifier init failed", zap.Error(err))
		}
		notifier = sesNotifier
		zapLog.Info("SES notifier initialized", zap.String("from", cfg.Notifications.Email.FromEmail))
	}

	// --- Gateway Server ---
	server := gateway.NewServer(cfg, guard, store, submit, notifier, obs, log)

	go func() {
		if err := server.ListenAndServe(); err != nil {
			zapLog.Fatal("gateway server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down gateway server", zap.Error(err))
	}

	zapLog.Info("Portal gateway stopped gracefully")
}

package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/luminasmiles/lead-relay/internal/api/router"
	appconfig "github.com/luminasmiles/lead-relay/internal/config"
	"github.com/luminasmiles/lead-relay/internal/dedupe"
	"github.com/luminasmiles/lead-relay/internal/delivery"
	"github.com/luminasmiles/lead-relay/internal/leads"
	"github.com/luminasmiles/lead-relay/internal/notify"
	"github.com/luminasmiles/lead-relay/internal/observability/metrics"
	"github.com/luminasmiles/lead-relay/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lead-relay API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Persistence is optional: without DATABASE_URL the store channel is
	// refused per-request and leads flow through the webhook only.
	var repo leads.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create postgres pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = leads.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, persistence channel disabled")
	}

	var guard *dedupe.Guard
	if cfg.RedisAddr != "" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		guard = dedupe.New(redis.NewClient(opts), cfg.DedupeTTL, logger)
	}

	client := delivery.NewBoundedClient(delivery.WithLogger(logger))
	var webhook leads.WebhookSender
	if cfg.WebhookURL != "" {
		webhook = delivery.NewWebhookSender(client, cfg.WebhookURL, cfg.WebhookTimeout, logger)
	} else {
		logger.Warn("WEBHOOK_URL not set, automation channel disabled")
	}

	var notifier leads.LeadNotifier
	if sender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sender != nil && cfg.NotifyEmail != "" {
		notifier = notify.NewService(sender, cfg.NotifyEmail, logger)
	}

	registry := prometheus.NewRegistry()
	submissionMetrics := metrics.NewSubmissionMetrics(registry)

	submitHandler := leads.NewSubmitHandler(leads.SubmitHandlerConfig{
		Repo:     repo,
		Webhook:  webhook,
		Guard:    guardOrNil(guard),
		Notifier: notifier,
		Metrics:  submissionMetrics,
		Services: cfg.Services,
		Logger:   logger,
	})

	r := router.New(&router.Config{
		Logger:             logger,
		SubmitHandler:      submitHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// guardOrNil avoids storing a typed-nil *dedupe.Guard in the handler's
// interface field.
func guardOrNil(g *dedupe.Guard) leads.DedupeGuard {
	if g == nil {
		return nil
	}
	return g
}

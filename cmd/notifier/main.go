package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"aura/internal/app"
	"aura/internal/config"
	"aura/internal/notification"
	"aura/internal/pkg/metrics"
)

// notifier consumes booking status events published by the API when
// notify.transport is "amqp" and turns them into emails.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logg := app.NewLogger(cfg, "notifier")
	if cfg.Notify.AMQPURL == "" {
		logg.Fatal("notify.amqp_url is required")
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}
	target := notification.NewEmailNotifier(app.NewMailer(cfg, logg), m)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logg.Info("consumer starting", "queue", cfg.Notify.Queue)
	err = notification.NewConsumer(cfg.Notify.AMQPURL, cfg.Notify.Queue, target, logg).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logg.Fatal("consumer stopped", "error", err)
	}
	logg.Info("consumer stopped")
}

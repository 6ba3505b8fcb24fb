package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aura/internal/app"
	"aura/internal/config"
	"aura/internal/database"
	"aura/internal/pkg/logger"
	"aura/internal/repository"

	"github.com/robfig/cron/v3"
)

func main() {
	once := flag.Bool("once", false, "run a single pass and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logg := app.NewLogger(cfg, "cleanup")

	db, err := database.Connect(cfg.Database.URL, database.Options{
		MaxOpenConns: 2,
		MaxIdleConns: 1,
	}, logg)
	if err != nil {
		logg.Fatal("database connect failed", "error", err)
	}
	tokens := repository.NewRefreshTokenRepository(db)
	retention := cfg.Cleanup.RevokedRetention.Duration

	if *once {
		if err := purge(context.Background(), tokens, retention, logg); err != nil {
			logg.Fatal("cleanup failed", "error", err)
		}
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Cleanup.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := purge(ctx, tokens, retention, logg); err != nil {
			logg.Error("cleanup failed", "error", err)
		}
	}); err != nil {
		logg.Fatal("invalid cleanup schedule", "schedule", cfg.Cleanup.Schedule, "error", err)
	}
	c.Start()
	logg.Info("cleanup scheduler started", "schedule", cfg.Cleanup.Schedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-c.Stop().Done()
	logg.Info("cleanup scheduler stopped")
}

func purge(ctx context.Context, tokens *repository.RefreshTokenRepository, retention time.Duration, logg *logger.Logger) error {
	n, err := tokens.DeleteStale(ctx, time.Now().UTC(), retention)
	if err != nil {
		return err
	}
	logg.Info("refresh tokens purged", "deleted", n)
	return nil
}

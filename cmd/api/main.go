package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"aura/internal/app"
	"aura/internal/config"
	"aura/internal/database"
	jwtsvc "aura/internal/pkg/jwt"
	"aura/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logg := app.NewLogger(cfg, "api")

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.Database.URL, database.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Debug:        cfg.Log.Level == "debug",
	}, logg)
	if err != nil {
		logg.Fatal("database connect failed", "error", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logg.Fatal("migration failed", "error", err)
		}
	}

	ctx := context.Background()
	codes, closeCodes, err := app.NewCodeStore(ctx, cfg)
	if err != nil {
		logg.Fatal("redis connect failed", "error", err)
	}
	defer closeCodes()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	mail := app.NewMailer(cfg, logg)
	notifier, closeNotifier := app.NewNotifier(cfg, mail, m)
	defer closeNotifier()

	store, err := app.NewStorage(cfg)
	if err != nil {
		logg.Fatal("storage init failed", "error", err)
	}

	router := app.NewRouter(app.Deps{
		Config:   cfg,
		DB:       db,
		Log:      logg,
		Tokens:   jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL.Duration),
		Codes:    codes,
		Mailer:   mail,
		Notifier: notifier,
		Storage:  store,
		Metrics:  m,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration,
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration,
	}

	go func() {
		logg.Info("http server starting", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("forced shutdown", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logg.Info("server stopped")
}

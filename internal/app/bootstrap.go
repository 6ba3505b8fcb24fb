package app

import (
	"context"
	"fmt"

	"aura/internal/config"
	"aura/internal/notification"
	"aura/internal/pkg/codestore"
	"aura/internal/pkg/logger"
	"aura/internal/pkg/mailer"
	"aura/internal/pkg/metrics"
	"aura/internal/pkg/storage"
)

func NewLogger(cfg *config.Config, service string) *logger.Logger {
	return logger.New(logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Service:   service,
	})
}

// NewCodeStore returns the Redis store when enabled, otherwise an in-process map.
// The returned close func is always safe to call.
func NewCodeStore(ctx context.Context, cfg *config.Config) (codestore.Store, func() error, error) {
	if !cfg.Redis.Enabled {
		return codestore.NewMemoryStore(), func() error { return nil }, nil
	}
	client, err := codestore.NewRedisClient(ctx, codestore.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
		Prefix:   cfg.Redis.Prefix,
	})
	if err != nil {
		return nil, nil, err
	}
	return codestore.NewRedisStore(client, cfg.Redis.Prefix), client.Close, nil
}

func NewMailer(cfg *config.Config, log *logger.Logger) mailer.Mailer {
	if cfg.Mail.Transport == "smtp" {
		return mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:       cfg.Mail.Host,
			Port:       cfg.Mail.Port,
			Username:   cfg.Mail.Username,
			Password:   cfg.Mail.Password,
			From:       cfg.Mail.From,
			SkipVerify: cfg.Mail.SkipVerify,
		})
	}
	return mailer.NewConsoleMailer(log.With("component", "mailer"))
}

func NewStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case "", "local":
		return storage.NewLocalStorage(cfg.Storage.LocalDir, cfg.Storage.URLBase), nil
	case "cloudinary":
		c := cfg.Storage.Cloudinary
		return storage.NewCloudinaryStorage(storage.CloudinaryConfig{
			CloudName:    c.CloudName,
			APIKey:       c.APIKey,
			APISecret:    c.APISecret,
			UploadPreset: c.UploadPreset,
			RootFolder:   c.Folder,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// NewNotifier sends booking mail directly or hands events to RabbitMQ for cmd/notifier.
func NewNotifier(cfg *config.Config, m mailer.Mailer, mt *metrics.Metrics) (notification.BookingNotifier, func() error) {
	if cfg.Notify.Transport == "amqp" {
		p := notification.NewAMQPPublisher(cfg.Notify.AMQPURL, cfg.Notify.Queue)
		return p, p.Close
	}
	return notification.NewEmailNotifier(m, mt), func() error { return nil }
}

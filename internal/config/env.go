package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// applyEnv overrides file values with environment variables when they are set.
func applyEnv(cfg *Config) error {
	setString(&cfg.App.Env, "APP_ENV")
	setString(&cfg.App.Timezone, "APP_TIMEZONE")

	if err := setInt(&cfg.HTTP.Port, "PORT"); err != nil {
		return err
	}
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}

	setString(&cfg.Database.URL, "DATABASE_URL")
	setBool(&cfg.Database.AutoMigrate, "DB_AUTO_MIGRATE")

	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.RefreshTokenPepper, "REFRESH_TOKEN_PEPPER")
	setString(&cfg.Auth.CodePepper, "CODE_PEPPER")
	for name, dst := range map[string]*Duration{
		"JWT_ACCESS_TTL": &cfg.Auth.AccessTTL,
		"REFRESH_TTL":    &cfg.Auth.RefreshTTL,
		"ACTIVATION_TTL": &cfg.Auth.ActivationTTL,
		"RESET_CODE_TTL": &cfg.Auth.ResetTTL,
	} {
		if err := setDuration(dst, name); err != nil {
			return err
		}
	}

	if v, ok := os.LookupEnv("REDIS_ADDR"); ok && strings.TrimSpace(v) != "" {
		cfg.Redis.Addr = strings.TrimSpace(v)
		cfg.Redis.Enabled = true
	}
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setBool(&cfg.Redis.TLS, "REDIS_TLS")
	if err := setInt(&cfg.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}

	setString(&cfg.Mail.Transport, "MAIL_TRANSPORT")
	setString(&cfg.Mail.Host, "SMTP_HOST")
	if err := setInt(&cfg.Mail.Port, "SMTP_PORT"); err != nil {
		return err
	}
	setString(&cfg.Mail.Username, "SMTP_USER")
	setString(&cfg.Mail.Password, "SMTP_PASSWORD")
	setString(&cfg.Mail.From, "SMTP_FROM")

	setString(&cfg.Notify.Transport, "NOTIFY_TRANSPORT")
	setString(&cfg.Notify.AMQPURL, "RABBITMQ_URL")
	setString(&cfg.Notify.Queue, "RABBITMQ_QUEUE")

	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Storage.LocalDir, "UPLOADS_DIR")
	setString(&cfg.Storage.Cloudinary.CloudName, "CLOUDINARY_CLOUD_NAME")
	setString(&cfg.Storage.Cloudinary.APIKey, "CLOUDINARY_API_KEY")
	setString(&cfg.Storage.Cloudinary.APISecret, "CLOUDINARY_API_SECRET")
	setString(&cfg.Storage.Cloudinary.UploadPreset, "CLOUDINARY_UPLOAD_PRESET")

	setBool(&cfg.Metrics.Enabled, "METRICS_ENABLED")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	setString(&cfg.Cleanup.Schedule, "CLEANUP_SCHEDULE")
	if err := setDuration(&cfg.Cleanup.RevokedRetention, "CLEANUP_REVOKED_RETENTION"); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be in 1..65535")
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.Auth.AccessTTL.Duration <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if c.Auth.RefreshTTL.Duration <= 0 {
		return fmt.Errorf("REFRESH_TTL must be > 0")
	}
	if c.Auth.ActivationTTL.Duration <= 0 {
		return fmt.Errorf("ACTIVATION_TTL must be > 0")
	}
	if c.Auth.ResetTTL.Duration <= 0 {
		return fmt.Errorf("RESET_CODE_TTL must be > 0")
	}
	if c.Cleanup.RevokedRetention.Duration < 0 {
		return fmt.Errorf("CLEANUP_REVOKED_RETENTION must be >= 0")
	}

	switch c.Mail.Transport {
	case "console":
	case "smtp":
		if c.Mail.Host == "" {
			return fmt.Errorf("SMTP_HOST is required when mail.transport=smtp")
		}
	default:
		return fmt.Errorf("mail.transport must be console or smtp, got %q", c.Mail.Transport)
	}

	switch c.Notify.Transport {
	case "email":
	case "amqp":
		if c.Notify.AMQPURL == "" {
			return fmt.Errorf("RABBITMQ_URL is required when notify.transport=amqp")
		}
	default:
		return fmt.Errorf("notify.transport must be email or amqp, got %q", c.Notify.Transport)
	}

	switch c.Storage.Driver {
	case "local":
	case "cloudinary":
		cl := c.Storage.Cloudinary
		if cl.CloudName == "" || cl.APIKey == "" || cl.APISecret == "" {
			return fmt.Errorf("cloudinary credentials are required when storage.driver=cloudinary")
		}
	default:
		return fmt.Errorf("storage.driver must be local or cloudinary, got %q", c.Storage.Driver)
	}

	if c.IsProdLike() {
		if isEmptyOrDefault(c.Auth.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(c.Auth.RefreshTokenPepper, defaultRefreshTokenPepper) {
			return fmt.Errorf("in prod/release REFRESH_TOKEN_PEPPER must be set and not default")
		}
		if isEmptyOrDefault(c.Auth.CodePepper, defaultCodePepper) {
			return fmt.Errorf("in prod/release CODE_PEPPER must be set and not default")
		}
	}
	return nil
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func setString(dst *string, name string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, name string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	if v == "" {
		return
	}
	*dst = v == "1" || v == "true" || v == "yes" || v == "on"
}

func setInt(dst *int, name string) error {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", name, v, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *Duration, name string) error {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", name, v, err)
	}
	dst.Duration = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

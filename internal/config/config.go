package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultRefreshTokenPepper = "change-me-refresh-pepper"
	defaultCodePepper         = "change-me-code-pepper"
	defaultConfigPath         = "config.toml"
)

// Duration decodes TOML strings such as "15m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	App      AppConfig      `toml:"app"`
	HTTP     HTTPConfig     `toml:"http"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	Mail     MailConfig     `toml:"mail"`
	Notify   NotifyConfig   `toml:"notify"`
	Storage  StorageConfig  `toml:"storage"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Log      LogConfig      `toml:"log"`
	Cleanup  CleanupConfig  `toml:"cleanup"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	Name     string `toml:"name"`
	Timezone string `toml:"timezone"`
}

type HTTPConfig struct {
	Port            int      `toml:"port"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

type DatabaseConfig struct {
	URL          string `toml:"url"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	AutoMigrate  bool   `toml:"auto_migrate"`
}

type AuthConfig struct {
	JWTSecret          string   `toml:"jwt_secret"`
	AccessTTL          Duration `toml:"access_ttl"`
	RefreshTTL         Duration `toml:"refresh_ttl"`
	RefreshTokenPepper string   `toml:"refresh_token_pepper"`
	CodePepper         string   `toml:"code_pepper"`
	ActivationTTL      Duration `toml:"activation_ttl"`
	ResetTTL           Duration `toml:"reset_ttl"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TLS      bool   `toml:"tls"`
	Prefix   string `toml:"prefix"`
}

type MailConfig struct {
	Transport  string `toml:"transport"` // console | smtp
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Username   string `toml:"username"`
	Password   string `toml:"password"`
	From       string `toml:"from"`
	SkipVerify bool   `toml:"skip_verify"`
}

type NotifyConfig struct {
	Transport string `toml:"transport"` // email | amqp
	AMQPURL   string `toml:"amqp_url"`
	Queue     string `toml:"queue"`
}

type StorageConfig struct {
	Driver     string           `toml:"driver"` // local | cloudinary
	LocalDir   string           `toml:"local_dir"`
	URLBase    string           `toml:"url_base"`
	Cloudinary CloudinaryConfig `toml:"cloudinary"`
}

type CloudinaryConfig struct {
	CloudName    string `toml:"cloud_name"`
	APIKey       string `toml:"api_key"`
	APISecret    string `toml:"api_secret"`
	UploadPreset string `toml:"upload_preset"`
	Folder       string `toml:"folder"`
}

type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Path      string `toml:"path"`
	Namespace string `toml:"namespace"`
}

type LogConfig struct {
	Level     string `toml:"level"`
	Format    string `toml:"format"`
	AddSource bool   `toml:"add_source"`
}

type CleanupConfig struct {
	Schedule string `toml:"schedule"`
	// RevokedRetention keeps rotated refresh tokens around for reuse detection.
	RevokedRetention Duration `toml:"revoked_retention"`
}

func Defaults() *Config {
	return &Config{
		App: AppConfig{Env: "dev", Name: "aura", Timezone: "Asia/Tashkent"},
		HTTP: HTTPConfig{
			Port:            8080,
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{15 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
			CORSOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Database: DatabaseConfig{URL: "aura.db", MaxOpenConns: 10, MaxIdleConns: 5, AutoMigrate: true},
		Auth: AuthConfig{
			JWTSecret:          defaultJWTSecret,
			AccessTTL:          Duration{15 * time.Minute},
			RefreshTTL:         Duration{7 * 24 * time.Hour},
			RefreshTokenPepper: defaultRefreshTokenPepper,
			CodePepper:         defaultCodePepper,
			ActivationTTL:      Duration{1000 * time.Second},
			ResetTTL:           Duration{15 * time.Minute},
		},
		Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "aura:codes:"},
		Mail:    MailConfig{Transport: "console", Port: 587},
		Notify:  NotifyConfig{Transport: "email", Queue: "booking.status"},
		Storage: StorageConfig{Driver: "local", LocalDir: "./uploads", URLBase: "/static"},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics", Namespace: "aura"},
		Log:     LogConfig{Level: "info", Format: "json"},
		Cleanup: CleanupConfig{Schedule: "@every 1h", RevokedRetention: Duration{30 * 24 * time.Hour}},
	}
}

// Load layers defaults, the TOML file, .env and the process environment, then validates.
// A missing file is fine unless CONFIG_PATH points at it explicitly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	return LoadFile(path, explicit)
}

func LoadFile(path string, required bool) (*Config, error) {
	cfg := Defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || required {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsProdLike() bool {
	env := strings.ToLower(strings.TrimSpace(c.App.Env))
	return env == "prod" || env == "production" || env == "release"
}

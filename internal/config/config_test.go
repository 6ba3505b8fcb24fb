package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"), false)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 1000*time.Second, cfg.Auth.ActivationTTL.Duration)
	assert.Equal(t, "console", cfg.Mail.Transport)
	assert.Equal(t, 30*24*time.Hour, cfg.Cleanup.RevokedRetention.Duration)
}

func TestLoadFile_MissingRequiredFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"), true)
	assert.Error(t, err)
}

func TestLoadFile_TOMLThenEnv(t *testing.T) {
	path := writeFile(t, `
[http]
port = 9000

[auth]
access_ttl = "5m"
reset_ttl = "2m"

[storage]
driver = "local"
local_dir = "/tmp/aura"
`)
	t.Setenv("PORT", "9100")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadFile(path, true)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTTL.Duration)
	assert.Equal(t, 2*time.Minute, cfg.Auth.ResetTTL.Duration)
	assert.Equal(t, "/tmp/aura", cfg.Storage.LocalDir)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestValidate_ProdRequiresSecrets(t *testing.T) {
	cfg := Defaults()
	cfg.App.Env = "production"
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg.Auth.JWTSecret = "s1"
	cfg.Auth.RefreshTokenPepper = "s2"
	cfg.Auth.CodePepper = "s3"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Transports(t *testing.T) {
	cfg := Defaults()
	cfg.Notify.Transport = "amqp"
	assert.ErrorContains(t, cfg.Validate(), "RABBITMQ_URL")

	cfg = Defaults()
	cfg.Mail.Transport = "pigeon"
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Storage.Driver = "cloudinary"
	assert.ErrorContains(t, cfg.Validate(), "cloudinary")
}

func TestLoadFile_BadEnvDuration(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "soon")
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"), false)
	assert.ErrorContains(t, err, "JWT_ACCESS_TTL")
}

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultServerAddress, cfg.Address)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.MaxBodyBytes)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, DefaultRateLimit, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadServerConfig_File(t *testing.T) {
	path := writeFile(t, "server.yaml", `
address: 127.0.0.1:9090
max_body_bytes: 4096
tables_file: /etc/inmocalc/tables.yaml
shutdown_timeout: 3s
rate_limit: 0
rate_window: 30s
redis:
  addr: localhost:6379
  db: 2
logging:
  level: debug
  format: console
`)
	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Address)
	assert.Equal(t, int64(4096), cfg.MaxBodyBytes)
	assert.Equal(t, "/etc/inmocalc/tables.yaml", cfg.TablesFile)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Zero(t, cfg.RateLimit, "zero disables limiting")
	assert.Equal(t, 30*time.Second, cfg.RateWindow)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadServerConfig_EnvOverrides(t *testing.T) {
	t.Setenv("INMOCALC_ADDRESS", ":7070")
	t.Setenv("INMOCALC_REDIS_ADDR", "redis:6379")
	t.Setenv("INMOCALC_LOGGING_LEVEL", "warn")

	path := writeFile(t, "server.yaml", "address: :9090\nlogging:\n  level: debug\n")
	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Address)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	path := writeFile(t, "server.yaml", "max_body_bytes: -1\n")
	_, err := LoadServerConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_body_bytes")

	path = writeFile(t, "server.yaml", "rate_limit: -5\n")
	_, err = LoadServerConfig(path)
	assert.ErrorContains(t, err, "rate_limit")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "debug", Format: "console"}, "")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	out := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err = NewLogger(LoggingConfig{Format: "json", OutputFile: out}, "error")
	require.NoError(t, err)
	logger.Error("written")
	_ = logger.Sync()
	assert.FileExists(t, out)

	_, err = NewLogger(LoggingConfig{Level: "loud"}, "")
	assert.ErrorContains(t, err, "invalid log level")

	_, err = NewLogger(LoggingConfig{Format: "xml"}, "")
	assert.ErrorContains(t, err, "invalid log format")
}

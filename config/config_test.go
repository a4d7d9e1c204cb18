package config_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/pandagraph/client"
	"github.com/syssam/pandagraph/config"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pandagraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// =============================================================================
// Loading
// =============================================================================

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(config.TokenEnv, "")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	t.Setenv(config.TokenEnv, "")

	path := writeFile(t, `
token: file-token
page_size: 100
timeout: 15s
slow_threshold: 250ms
log_level: debug
log_format: json
metrics_addr: ":9090"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, client.DefaultBaseURL, cfg.BaseURL, "unset keys keep their defaults")
	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.SlowThreshold)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.FormatJSON, cfg.LogFormat)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverridesToken(t *testing.T) {
	t.Setenv(config.TokenEnv, "env-token")

	cfg, err := config.Load(writeFile(t, "token: file-token\n"))
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Token)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(config.TokenEnv, "")

	_, err := config.Load(writeFile(t, "page_size: [1]\n"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "pagesize: 10\n"))
	assert.Error(t, err, "unknown keys are rejected")

	cfg, err := config.Load(writeFile(t, ""))
	require.NoError(t, err, "an empty file is the defaults")
	assert.Equal(t, config.Default(), cfg)
}

// =============================================================================
// Validation
// =============================================================================

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
		field  string
	}{
		{name: "valid", modify: func(*config.Config) {}},
		{name: "missing token", modify: func(c *config.Config) { c.Token = "" }, field: "token"},
		{name: "missing base url", modify: func(c *config.Config) { c.BaseURL = "" }, field: "base_url"},
		{name: "page size zero", modify: func(c *config.Config) { c.PageSize = 0 }, field: "page_size"},
		{name: "page size too large", modify: func(c *config.Config) { c.PageSize = 101 }, field: "page_size"},
		{name: "zero timeout", modify: func(c *config.Config) { c.Timeout = 0 }, field: "timeout"},
		{name: "negative slow threshold", modify: func(c *config.Config) { c.SlowThreshold = -time.Second }, field: "slow_threshold"},
		{name: "bad level", modify: func(c *config.Config) { c.LogLevel = "loud" }, field: "log_level"},
		{name: "bad format", modify: func(c *config.Config) { c.LogFormat = "xml" }, field: "log_format"},
		{name: "format case", modify: func(c *config.Config) { c.LogFormat = "JSON" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			cfg.Token = "token"
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ce *config.Error
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

// =============================================================================
// Derived values
// =============================================================================

func TestLogger(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.LogLevel = "warn"
	cfg.LogFormat = config.FormatJSON

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", slog.String("k", "v"))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestClientOptions(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.PageSize = 20

	c, err := client.New("token", cfg.ClientOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 20, c.PageSize())
}

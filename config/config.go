// Package config loads the pandagraph CLI configuration.
//
// Configuration is read from a YAML file; a missing file yields the
// defaults. The API token may also come from the PANDASCORE_TOKEN
// environment variable, which takes precedence over the file.
//
// A typical file:
//
//	page_size: 100
//	timeout: 15s
//	slow_threshold: 2s
//	log_level: debug
//	log_format: json
//	metrics_addr: :9090
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/syssam/pandagraph/client"
)

// TokenEnv is the environment variable overriding the configured token.
const TokenEnv = "PANDASCORE_TOKEN"

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultSlowThreshold is the request duration above which requests are
// logged as slow.
const DefaultSlowThreshold = time.Second

// Config holds the CLI configuration.
type Config struct {
	Token         string        `yaml:"token,omitempty"`
	BaseURL       string        `yaml:"base_url,omitempty"`
	PageSize      int           `yaml:"page_size,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
	SlowThreshold time.Duration `yaml:"slow_threshold,omitempty"`
	LogLevel      string        `yaml:"log_level,omitempty"`
	LogFormat     string        `yaml:"log_format,omitempty"`
	// MetricsAddr is the listen address of the Prometheus endpoint.
	// Empty disables it.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		BaseURL:       client.DefaultBaseURL,
		PageSize:      client.DefaultPageSize,
		Timeout:       client.DefaultTimeout,
		SlowThreshold: DefaultSlowThreshold,
		LogLevel:      "info",
		LogFormat:     FormatText,
	}
}

// Load reads the configuration file at path over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := cfg.decode(data); err != nil {
				return nil, err
			}
		}
	}
	if token, ok := os.LookupEnv(TokenEnv); ok && token != "" {
		cfg.Token = token
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Error is an invalid configuration value.
type Error struct {
	Field string // YAML key (e.g., "page_size")
	Msg   string
}

// Error returns the error string.
func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// Validate checks the configuration and returns the first problem found
// as an *Error.
func (c *Config) Validate() error {
	switch {
	case c.Token == "":
		return &Error{Field: "token", Msg: "missing (set it in the file or " + TokenEnv + ")"}
	case c.BaseURL == "":
		return &Error{Field: "base_url", Msg: "missing"}
	case c.PageSize < 1 || c.PageSize > client.MaxPageSize:
		return &Error{Field: "page_size", Msg: fmt.Sprintf("must be in [1, %d], got %d", client.MaxPageSize, c.PageSize)}
	case c.Timeout <= 0:
		return &Error{Field: "timeout", Msg: "must be positive"}
	case c.SlowThreshold < 0:
		return &Error{Field: "slow_threshold", Msg: "must not be negative"}
	}
	if _, err := c.Level(); err != nil {
		return &Error{Field: "log_level", Msg: err.Error()}
	}
	switch strings.ToLower(c.LogFormat) {
	case FormatText, FormatJSON:
	default:
		return &Error{Field: "log_format", Msg: fmt.Sprintf("unknown format %q", c.LogFormat)}
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, err
	}
	return level, nil
}

// Logger returns a logger writing to w in the configured format and level.
// An unparsable level falls back to info.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ClientOptions returns the client options for this configuration.
func (c *Config) ClientOptions() []client.Option {
	return []client.Option{
		client.WithBaseURL(c.BaseURL),
		client.WithTimeout(c.Timeout),
		client.WithPageSize(c.PageSize),
	}
}

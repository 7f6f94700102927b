// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/maauso/formrelay/internal/form"
)

// ErrWebhookURLRequired is returned when a form kind has no webhook URL,
// neither its own nor a shared FORM_WEBHOOK_URL or DISCORD_WEBHOOK_URL.
var ErrWebhookURLRequired = errors.New("config: webhook URL is required")

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	BindAddr    string   `env:"SERVER_BIND_ADDR, default=127.0.0.1" json:"bind_addr"`
	Port        int      `env:"SERVER_LISTEN_PORT, default=3000" json:"port"`
	CORSOrigins []string `env:"SERVER_CORS_ORIGIN, default=*" json:"cors_origins"`

	// Webhook settings. URLs carry the webhook token and are masked.
	FormWebhookURL    string        `env:"FORM_WEBHOOK_URL" json:"-"`
	DiscordWebhookURL string        `env:"DISCORD_WEBHOOK_URL" json:"-"`
	ApplyWebhookURL   string        `env:"APPLY_WEBHOOK_URL" json:"-"`
	ContactWebhookURL string        `env:"CONTACT_WEBHOOK_URL" json:"-"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES, default=3" json:"webhook_max_retries"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT, default=10s" json:"webhook_timeout"`

	// Rate limiting per client IP. A rate of 0 disables the limiter.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS, default=1" json:"rate_limit_rps"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST, default=5" json:"rate_limit_burst"`

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// Load reads configuration from environment variables using go-envconfig.
// It returns an error if a form kind has no webhook URL.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every form kind resolves to a webhook URL.
func (c *Config) Validate() error {
	for _, k := range []form.Kind{form.KindApply, form.KindContact} {
		if c.WebhookURL(k) == "" {
			return fmt.Errorf("%w for %s forms", ErrWebhookURLRequired, k)
		}
	}
	return nil
}

// WebhookURL returns the webhook URL for kind, falling back to
// FORM_WEBHOOK_URL and then DISCORD_WEBHOOK_URL.
func (c *Config) WebhookURL(kind form.Kind) string {
	var specific string
	switch kind {
	case form.KindApply:
		specific = c.ApplyWebhookURL
	case form.KindContact:
		specific = c.ContactWebhookURL
	}
	if specific != "" {
		return specific
	}
	if c.FormWebhookURL != "" {
		return c.FormWebhookURL
	}
	return c.DiscordWebhookURL
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.BindAddr, strconv.Itoa(c.Port))
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with webhook URLs masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Addr: %s, CORSOrigins: %v, ApplyWebhook: %s, ContactWebhook: %s, WebhookMaxRetries: %d, WebhookTimeout: %s, RateLimitRPS: %g, RateLimitBurst: %d, LogFormat: %s, LogLevel: %s}",
		c.Addr(),
		c.CORSOrigins,
		mask(c.WebhookURL(form.KindApply)),
		mask(c.WebhookURL(form.KindContact)),
		c.WebhookMaxRetries,
		c.WebhookTimeout,
		c.RateLimitRPS,
		c.RateLimitBurst,
		c.LogFormat,
		c.LogLevel,
	)
}

func mask(s string) string {
	if s == "" {
		return "<unset>"
	}
	return "***"
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

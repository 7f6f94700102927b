package bootstrap

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maauso/formrelay/internal/config"
	"github.com/maauso/formrelay/internal/webhook"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewDependencies(t *testing.T) {
	cfg := &config.Config{
		FormWebhookURL:    "https://example.com/hook",
		WebhookMaxRetries: 2,
		WebhookTimeout:    time.Second,
	}

	deps, err := NewDependencies(cfg, testLogger())
	require.NoError(t, err)
	require.NotNil(t, deps.Relay)
}

func TestNewDependencies_InvalidURL(t *testing.T) {
	cfg := &config.Config{
		FormWebhookURL:    "https://example.com/hook",
		ContactWebhookURL: "ftp://example.com/hook",
		WebhookTimeout:    time.Second,
	}

	_, err := NewDependencies(cfg, testLogger())
	assert.ErrorIs(t, err, webhook.ErrInvalidURL)
	assert.Contains(t, err.Error(), "contact")
}

func TestNewDependencies_MissingURL(t *testing.T) {
	_, err := NewDependencies(&config.Config{}, testLogger())
	assert.ErrorIs(t, err, webhook.ErrURLRequired)
}

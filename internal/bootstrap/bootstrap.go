// Package bootstrap provides dependency initialization for the form relay.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/maauso/formrelay/internal/config"
	"github.com/maauso/formrelay/internal/form"
	"github.com/maauso/formrelay/internal/refcode"
	"github.com/maauso/formrelay/internal/relay"
	"github.com/maauso/formrelay/internal/webhook"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	Relay *relay.Service
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	opts := []relay.Option{}

	// Forms sharing a webhook URL share a client
	clients := make(map[string]*webhook.HTTPClient)
	for _, kind := range []form.Kind{form.KindApply, form.KindContact} {
		url := cfg.WebhookURL(kind)

		client, ok := clients[url]
		if !ok {
			var err error
			client, err = webhook.NewClient(url,
				webhook.WithMaxRetries(cfg.WebhookMaxRetries),
				webhook.WithTimeout(cfg.WebhookTimeout),
			)
			if err != nil {
				return nil, fmt.Errorf("create %s webhook client: %w", kind, err)
			}
			clients[url] = client
		}

		opts = append(opts, relay.WithDeliverer(kind, client))
		logger.Info("webhook configured",
			slog.String("kind", string(kind)),
			slog.Int("max_retries", cfg.WebhookMaxRetries),
			slog.Duration("timeout", cfg.WebhookTimeout),
		)
	}

	svc := relay.NewService(refcode.New(), logger, opts...)

	return &Dependencies{
		Relay: svc,
	}, nil
}

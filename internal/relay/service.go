// Package relay turns accepted form submissions into webhook notifications.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/maauso/formrelay/internal/form"
	"github.com/maauso/formrelay/internal/webhook"
)

var (
	// ErrNoDeliverer is returned when no webhook is configured for a form kind.
	ErrNoDeliverer = errors.New("relay: no deliverer configured for form kind")
	// ErrDeliveryFailed is returned when the notification could not be delivered.
	ErrDeliveryFailed = errors.New("relay: delivery failed")
)

// ReferenceGenerator produces a reference code for a prefix.
type ReferenceGenerator interface {
	Next(prefix string) string
}

// Service relays submissions to the webhook configured for their kind.
type Service struct {
	refs       ReferenceGenerator
	deliverers map[form.Kind]webhook.Deliverer
	logger     *slog.Logger
}

// Option is a function that configures a Service.
type Option func(*Service)

// WithDeliverer routes submissions of kind k to d.
func WithDeliverer(k form.Kind, d webhook.Deliverer) Option {
	return func(s *Service) {
		s.deliverers[k] = d
	}
}

// NewService creates a new Service.
func NewService(refs ReferenceGenerator, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		refs:       refs,
		deliverers: make(map[form.Kind]webhook.Deliverer),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit generates a reference code for f and delivers its notification.
// The returned reference is empty unless an attempt to deliver was made.
func (s *Service) Submit(ctx context.Context, f form.Form) (string, error) {
	d, ok := s.deliverers[f.Kind()]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoDeliverer, f.Kind())
	}

	ref := s.refs.Next(f.Prefix())

	if err := d.Deliver(ctx, f.Payload(ref)); err != nil {
		s.logger.Error("failed to deliver submission",
			slog.String("kind", string(f.Kind())),
			slog.String("reference", ref),
			slog.String("error", err.Error()),
		)
		return ref, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	s.logger.Info("submission delivered",
		slog.String("kind", string(f.Kind())),
		slog.String("reference", ref),
	)

	return ref, nil
}

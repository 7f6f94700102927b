package server

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

// Config contains server configuration options.
type Config struct {
	// AllowedOrigins is the list of allowed CORS origins.
	AllowedOrigins []string
	// RateLimit is the sustained submissions per second per client IP.
	// Zero disables rate limiting.
	RateLimit rate.Limit
	// RateBurst is the number of submissions a client may make at once.
	RateBurst int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{"*"},
		RateLimit:      1,
		RateBurst:      5,
	}
}

// NewRouter creates a new HTTP router with all routes configured.
// It uses Go 1.22+ ServeMux with method-based routing.
func NewRouter(h *Handlers, logger *slog.Logger, cfg Config) http.Handler {
	mux := http.NewServeMux()

	// Register routes with method-based patterns (Go 1.22+)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("POST /apply", h.Apply)
	mux.HandleFunc("POST /contact", h.Contact)

	// Apply middleware chain
	chain := ChainMiddleware(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(cfg.AllowedOrigins),
		RateLimitMiddleware(cfg.RateLimit, cfg.RateBurst, logger),
	)

	return chain(mux)
}

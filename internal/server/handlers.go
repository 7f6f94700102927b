package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/formrelay/internal/form"
	"github.com/maauso/formrelay/internal/relay"
)

// maxBodyBytes caps the size of a submission body.
const maxBodyBytes = 64 << 10

// Submitter relays a validated form.
type Submitter interface {
	Submit(ctx context.Context, f form.Form) (string, error)
}

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	relay     Submitter
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(submitter Submitter, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		relay:     submitter,
		validator: form.NewValidator(),
		logger:    logger,
	}
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Apply handles POST /apply requests.
func (h *Handlers) Apply(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, &form.Application{})
}

// Contact handles POST /contact requests.
func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, &form.Contact{})
}

// submit decodes the body into f, validates it and relays it.
// Unknown fields are ignored; anything after the JSON object is rejected.
// Responds 204 once the notification was delivered.
func (h *Handlers) submit(w http.ResponseWriter, r *http.Request, f form.Form) {
	if err := decodeBody(w, r, f); err != nil {
		h.logger.Warn("failed to decode request body",
			slog.String("kind", string(f.Kind())),
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}

	if err := h.validator.Struct(f); err != nil {
		h.logger.Warn("request validation failed",
			slog.String("kind", string(f.Kind())),
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	ref, err := h.relay.Submit(r.Context(), f)
	if err != nil {
		h.logger.Error("failed to relay submission",
			slog.String("kind", string(f.Kind())),
			slog.String("reference", ref),
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, relay.ErrDeliveryFailed) {
			writeError(w, http.StatusBadGateway, "failed to deliver submission", "DELIVERY_FAILED")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to process submission", "INTERNAL_ERROR")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

var errTrailingData = errors.New("unexpected data after JSON object")

// decodeBody decodes exactly one JSON value from the request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

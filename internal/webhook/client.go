package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Static errors for webhook delivery.
var (
	// ErrURLRequired is returned when no webhook URL is provided.
	ErrURLRequired = errors.New("webhook: URL is required")
	// ErrInvalidURL is returned when the webhook URL is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("webhook: invalid URL")
	// ErrServerError is returned when the endpoint returns a 5xx status code.
	ErrServerError = errors.New("webhook: server error")
	// ErrRateLimited is returned when the endpoint returns a 429 status code.
	ErrRateLimited = errors.New("webhook: rate limited")
	// ErrRequestFailed is returned when the request fails with a non-2xx status code.
	ErrRequestFailed = errors.New("webhook: request failed")
)

// maxErrorBody caps how much of an error response is kept in error messages.
const maxErrorBody = 512

// Deliverer sends a message to a notification endpoint.
type Deliverer interface {
	// Deliver posts msg and returns nil once the endpoint accepted it.
	Deliver(ctx context.Context, msg Message) error
}

// Compile-time check that HTTPClient implements Deliverer.
var _ Deliverer = (*HTTPClient)(nil)

// HTTPClient posts JSON messages to a single webhook URL.
type HTTPClient struct {
	url         string
	httpClient  *http.Client
	maxRetries  int
	baseBackoff time.Duration
}

// ClientOption is a function that configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(hc *HTTPClient) {
		hc.httpClient = c
	}
}

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(hc *HTTPClient) {
		hc.httpClient = &http.Client{Timeout: d}
	}
}

// WithMaxRetries sets the maximum number of retries for transient failures.
func WithMaxRetries(n int) ClientOption {
	return func(hc *HTTPClient) {
		if n >= 0 {
			hc.maxRetries = n
		}
	}
}

// WithBaseBackoff sets the initial backoff duration for retries.
func WithBaseBackoff(d time.Duration) ClientOption {
	return func(hc *HTTPClient) {
		hc.baseBackoff = d
	}
}

// NewClient creates a webhook client posting to rawURL.
func NewClient(rawURL string, opts ...ClientOption) (*HTTPClient, error) {
	if rawURL == "" {
		return nil, ErrURLRequired
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, u.Redacted())
	}

	c := &HTTPClient{
		url:         rawURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		maxRetries:  3,
		baseBackoff: 500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Deliver posts msg as JSON, retrying transient failures with exponential backoff.
func (c *HTTPClient) Deliver(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("webhook: marshal message: %w", err)
	}

	var lastErr error
	backoff := c.baseBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("webhook: context cancelled: %w", ctx.Err())
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		err := c.post(ctx, body)
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return err
		}

		lastErr = err
	}

	return fmt.Errorf("webhook: max retries exceeded: %w", lastErr)
}

// post performs a single delivery attempt.
func (c *HTTPClient) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("webhook: request aborted: %w", err)
		}
		return &retryableError{err: fmt.Errorf("webhook: request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode >= 500 {
		return &retryableError{err: fmt.Errorf("%w %d: %s", ErrServerError, resp.StatusCode, string(respBody))}
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return &retryableError{err: fmt.Errorf("%w: %s", ErrRateLimited, string(respBody))}
	}
	return fmt.Errorf("%w with status %d: %s", ErrRequestFailed, resp.StatusCode, string(respBody))
}

// retryableError wraps errors that should be retried.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return e.err.Error()
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// isRetryable returns true if the error should be retried.
func isRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

package enrich

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/optica-labs/frame-intake/internal/common"
)

// Client wraps outbound vendor requests with the per-request timeout,
// retry budget and backoff every adapter must apply. A 404 is an expected
// outcome, reported via the status code, never retried and never an error.
type Client struct {
	hc         *http.Client
	logger     *slog.Logger
	maxRetries int
	backoff    time.Duration
	userAgent  string
}

func NewClient(logger *slog.Logger, cfg common.HTTPConfig) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}
	return &Client{
		hc:         &http.Client{Timeout: cfg.RequestTimeout},
		logger:     logger,
		maxRetries: retries,
		backoff:    cfg.RetryBackoff,
		userAgent:  cfg.UserAgent,
	}
}

// Get fetches a URL, retrying transport errors and 5xx responses with
// exponential backoff. Returns the body and status for 2xx and 404;
// any other terminal status is an error.
func (c *Client) Get(ctx context.Context, url string) ([]byte, int, error) {
	reqID := uuid.New().String()
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			// linear base shifted left per attempt: backoff, 2x, 4x...
			delay := c.backoff << (attempt - 2)
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, status, err := c.do(ctx, reqID, attempt, url)
		switch {
		case err != nil:
			lastErr = err
			if ctx.Err() != nil {
				return nil, 0, ctx.Err()
			}
		case status/100 == 2 || status == http.StatusNotFound:
			return body, status, nil
		case status >= 500 || status == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("vendor returned status %d", status)
		default:
			return nil, status, fmt.Errorf("vendor returned status %d", status)
		}
	}
	return nil, 0, fmt.Errorf("lookup failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, reqID string, attempt int, url string) ([]byte, int, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/html")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("vendor.http.request", "req_id", reqID, "attempt", attempt, "url", url)

	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.Warn("vendor.http.send_error",
			"req_id", reqID, "attempt", attempt, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, 0, err
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.logger.Warn("vendor.http.body_close_error", "req_id", reqID, "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Debug("vendor.http.response",
		"req_id", reqID,
		"attempt", attempt,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return raw, resp.StatusCode, nil
}

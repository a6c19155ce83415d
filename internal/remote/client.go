package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mentor-insight-api/pkg/config"
)

// FallbackObserver is notified whenever a resource resolution falls back to
// mock data. Implemented by the metrics service.
type FallbackObserver interface {
	RecordFallback(resource string)
}

// Client talks to the upstream learning platform. Every read goes through
// Resolve, which substitutes a fallback value on any failure and never
// returns an error to the caller.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	observer   FallbackObserver
}

// NewClient builds an upstream client from configuration. A nil logger is
// replaced with a no-op one.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger, observer FallbackObserver) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		maxRetries: retries,
		retryDelay: delay,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		observer:   observer,
	}
}

// Configured reports whether live fetching is enabled at all.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// Resolve fetches one logical resource and decodes it into T. On missing
// configuration, transport failure, non-success status, unexpected content
// type or a decode error it logs a warning, notes the fallback and returns
// the provided fallback value. Failures never escape to the caller.
func Resolve[T any](ctx context.Context, c *Client, resource, path string, fallback T) T {
	if !c.Configured() {
		c.noteFallback(resource, fmt.Errorf("no upstream configured"))
		return fallback
	}

	var out T
	if err := c.getJSON(ctx, path, &out); err != nil {
		c.noteFallback(resource, err)
		return fallback
	}
	return out
}

// getJSON performs a GET with exponential backoff between attempts.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		lastErr = c.tryGetJSON(ctx, path, out)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (c *Client) tryGetJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close() //nolint:errcheck

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	contentType := res.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return fmt.Errorf("expected JSON, received %q", contentType)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Post issues a write to the upstream, used by the best-effort decision sync.
// Unlike Resolve, errors are returned so the job queue can retry.
func (c *Client) Post(ctx context.Context, path string, payload interface{}) error {
	if !c.Configured() {
		return nil
	}

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close() //nolint:errcheck

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return nil
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
}

func (c *Client) noteFallback(resource string, err error) {
	var logger *zap.Logger
	if c != nil {
		logger = c.logger
	} else {
		logger = zap.NewNop()
	}
	logger.Sugar().Warnw("using mock data as fallback", "resource", resource, "reason", err.Error())
	if c != nil && c.observer != nil {
		c.observer.RecordFallback(resource)
	}
}

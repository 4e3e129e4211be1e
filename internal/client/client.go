package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jetsetgo/dispatchdesk/internal/cache"
	"github.com/jetsetgo/dispatchdesk/internal/logging"
	"github.com/jetsetgo/dispatchdesk/internal/report"
)

// Backend endpoints.
const (
	PathDispatched  = "/reports/dispatched"
	PathOutstanding = "/reports/outstanding"
	PathHealth      = "/health"
)

const (
	// DefaultTimeout bounds a single request when no timeout option is given.
	DefaultTimeout = 30 * time.Second
	// maxBodySize caps a successful response body.
	maxBodySize = 64 << 20
)

// ResponseCache stores raw response bodies keyed by request URL. *cache.FileStore
// satisfies it.
type ResponseCache interface {
	Get(key string) (*cache.Entry, error)
	Set(key string, data json.RawMessage) error
}

// Client talks to the dispatch report backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      ResponseCache
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithCache enables response caching for the report endpoints.
func WithCache(rc ResponseCache) Option {
	return func(c *Client) {
		c.cache = rc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  "dispatchdesk",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Dispatched fetches one page of the dispatch report.
func (c *Client) Dispatched(ctx context.Context, params report.Params) (*report.DispatchPage, error) {
	var page report.DispatchPage
	decode := func(body []byte) error {
		if err := requireArray(body, "invoices", false); err != nil {
			return err
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		return nil
	}
	if err := c.get(ctx, "dispatched", PathDispatched, params.Encode(), true, decode); err != nil {
		return nil, err
	}
	return &page, nil
}

// Outstanding fetches every invoice not yet placed on a manifest. A payload without an
// orders field is treated as an empty list.
func (c *Client) Outstanding(ctx context.Context) (*report.OutstandingList, error) {
	var list report.OutstandingList
	decode := func(body []byte) error {
		if err := requireArray(body, "orders", true); err != nil {
			return err
		}
		if err := json.Unmarshal(body, &list); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		return nil
	}
	if err := c.get(ctx, "outstanding", PathOutstanding, "", true, decode); err != nil {
		return nil, err
	}
	if list.Orders == nil {
		list.Orders = []report.OutstandingOrder{}
	}
	return &list, nil
}

// Health is the backend health payload.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DevMode   bool   `json:"dev_mode"`
}

// Healthy reports whether the backend considers itself healthy.
func (h Health) Healthy() bool {
	return strings.EqualFold(h.Status, "healthy") || strings.EqualFold(h.Status, "ok")
}

// Health queries the backend health endpoint. Health checks are never cached.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	decode := func(body []byte) error {
		if err := json.Unmarshal(body, &h); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		return nil
	}
	if err := c.get(ctx, "health", PathHealth, "", false, decode); err != nil {
		return nil, err
	}
	return &h, nil
}

// get performs a GET and hands the body to decode. Bodies that decode cleanly are
// cached when caching is enabled and cacheable is set.
func (c *Client) get(
	ctx context.Context,
	operation, path, rawQuery string,
	cacheable bool,
	decode func([]byte) error,
) error {
	target := c.baseURL + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	logger := logging.FromContext(ctx)
	useCache := cacheable && c.cache != nil

	if useCache {
		if entry, err := c.cache.Get(target); err == nil {
			if decodeErr := decode(entry.Data); decodeErr == nil {
				logger.Debug().
					Str("component", "client").
					Str("operation", operation).
					Str("url", target).
					Msg("served from cache")
				return nil
			}
		}
	}

	body, err := c.do(ctx, operation, target)
	if err != nil {
		return err
	}
	if err := decode(body); err != nil {
		logger.Warn().
			Str("component", "client").
			Str("operation", operation).
			Str("url", target).
			Err(err).
			Msg("unexpected response payload")
		return err
	}

	if useCache {
		if err := c.cache.Set(target, body); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
			logger.Debug().
				Str("component", "client").
				Str("operation", operation).
				Err(err).
				Msg("failed to cache response")
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, operation, target string) ([]byte, error) {
	logger := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if id := logging.TraceIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Error().
			Str("component", "client").
			Str("operation", operation).
			Str("url", target).
			Dur("latency", latency).
			Err(err).
			Msg("request failed")
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	logger.Debug().
		Str("component", "client").
		Str("operation", operation).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("latency", latency).
		Msg("request completed")

	if resp.StatusCode >= http.StatusBadRequest {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newStatusError(resp, slurp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: reading body: %w", ErrNetwork, err)
	}
	return body, nil
}

// requireArray checks that body is a JSON object whose key holds an array. When optional
// is set a missing key or a null value passes as an empty list.
func requireArray(body []byte, key string, optional bool) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	raw, ok := fields[key]
	if !ok {
		if optional {
			return nil
		}
		return fmt.Errorf("%w: missing %q", ErrInvalidResponse, key)
	}
	raw = bytes.TrimSpace(raw)
	if optional && bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if len(raw) == 0 || raw[0] != '[' {
		return fmt.Errorf("%w: %q is not an array", ErrInvalidResponse, key)
	}
	return nil
}

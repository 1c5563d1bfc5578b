package httpclient

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// redactedParams lists query parameters whose values never reach the logs.
var redactedParams = []string{"api_key", "token"}

// Config holds timeout and identification settings.
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:   15 * time.Second,
		UserAgent: "cinemart",
	}
}

// Client wraps http.Client with request logging. Each request is attempted once.
type Client struct {
	http   *http.Client
	config Config
	logger *slog.Logger
}

// New creates a new Client with a default http.Client.
func New(cfg Config, logger *slog.Logger) *Client {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewWithHTTPClient creates a Client with a custom http.Client (e.g. a test transport).
func NewWithHTTPClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:   httpClient,
		config: cfg,
		logger: logger,
	}
}

// Do executes an HTTP request and logs its outcome at debug level.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.config.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		if req.Context().Err() != nil {
			return nil, req.Context().Err()
		}
		c.logger.Debug("request failed",
			slog.String("method", req.Method),
			slog.String("url", Redact(req.URL)),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Debug("request completed",
		slog.String("method", req.Method),
		slog.String("url", Redact(req.URL)),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", elapsed),
	)
	return resp, nil
}

// Redact returns u as a string with secret query parameters masked.
func Redact(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	changed := false
	for _, p := range redactedParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if !changed {
		return u.String()
	}
	clean := *u
	clean.RawQuery = q.Encode()
	return clean.String()
}

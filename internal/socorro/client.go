package socorro

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Mozilla crash-stats API.
const DefaultBaseURL = "https://crash-stats.mozilla.org/api"

// TokenHeader carries the API token on every request.
const TokenHeader = "Auth-Token"

// Client is a client for the Socorro crash-stats API.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
	now        func() time.Time
}

// Option configures the Client during construction.
type Option func(*clientConfig) error

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
	limiter    *rate.Limiter
	userAgent  string
	now        func() time.Time
}

// New creates a new Client for the given API root, e.g. DefaultBaseURL.
// An empty token sends anonymous requests, which the public API rate-limits
// more aggressively.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("socorro: baseURL is required")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	cfg := &clientConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	now := cfg.now
	if now == nil {
		now = time.Now
	}

	return &Client{
		baseURL:    baseURL,
		token:      token,
		userAgent:  cfg.userAgent,
		httpClient: httpClient,
		logger:     logger,
		limiter:    cfg.limiter,
		now:        now,
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout sets a timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		if d < 0 {
			return fmt.Errorf("socorro: negative timeout %s", d)
		}
		cfg.timeout = d
		return nil
	}
}

// WithRateLimit spaces requests to at most perSecond per second with the
// given burst. Requests wait for a token or for their context to end.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(cfg *clientConfig) error {
		if perSecond <= 0 || burst < 1 {
			return fmt.Errorf("socorro: invalid rate limit %g/s burst %d", perSecond, burst)
		}
		cfg.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cfg *clientConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// withClock overrides the clock used to compute search date ranges.
func withClock(now func() time.Time) Option {
	return func(cfg *clientConfig) error {
		cfg.now = now
		return nil
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// get executes a GET request and returns the body of a 2xx response.
// A 429 response is ErrRateLimited; any other non-2xx status is an *APIError.
func (c *Client) get(ctx context.Context, url, operation string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: rate limit: %w", operation, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", operation, err)
	}
	if c.token != "" {
		req.Header.Set(TokenHeader, c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.InfoContext(ctx, "API request", "operation", operation, "url", url, "authenticated", c.token != "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "API response", "operation", operation, "status", resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", operation, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return nil, newAPIError(operation, resp.StatusCode, msg)
	}
	return body, nil
}

package pinevoice

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the default Pine AI API base URL.
	DefaultBaseURL = "https://www.19pine.ai"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the default maximum number of retries.
	DefaultMaxRetries = 3
)

// Client is the Pine AI voice API client.
type Client struct {
	// Calls provides outbound call operations.
	Calls *CallService

	config *clientConfig
	http   *httpClient
}

// clientConfig holds the client configuration.
type clientConfig struct {
	accessToken string
	userID      string
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	maxRetries  int
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetry sets the maximum number of retries for transient errors.
func WithRetry(maxRetries int) Option {
	return func(c *clientConfig) {
		c.maxRetries = maxRetries
	}
}

// NewClient creates a new Pine AI voice API client.
//
// Both accessToken and userID are required for every operation; obtain them
// via the assistant auth flow (`pine auth login`).
func NewClient(accessToken, userID string, opts ...Option) *Client {
	cfg := &clientConfig{
		accessToken: accessToken,
		userID:      userID,
		baseURL:     DefaultBaseURL,
		timeout:     DefaultTimeout,
		maxRetries:  DefaultMaxRetries,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{
			Timeout: cfg.timeout,
		}
	}

	c := &Client{
		config: cfg,
		http:   newHTTPClient(cfg),
	}

	c.Calls = newCallService(c)

	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.baseURL
}

package pineassistant

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

// Client is the Pine AI assistant API client.
type Client struct {
	// Auth provides the email-verification login flow.
	Auth *AuthService

	// Sessions provides session CRUD and task lifecycle operations.
	Sessions *SessionService

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

// WithCredentials sets the access token and user ID.
//
// A client without credentials can still run the auth flow
// (Auth.RequestCode, Auth.VerifyCode); everything else requires them.
func WithCredentials(accessToken, userID string) Option {
	return func(c *clientConfig) {
		c.accessToken = accessToken
		c.userID = userID
	}
}

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

// NewClient creates a new Pine AI assistant API client.
func NewClient(opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL:    DefaultBaseURL,
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
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

	c.Auth = newAuthService(c)
	c.Sessions = newSessionService(c)

	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.baseURL
}

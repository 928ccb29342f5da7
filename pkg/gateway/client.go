package gateway

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/telekom/gateway-client-go/pkg/auth"
	"github.com/telekom/gateway-client-go/pkg/ratelimit"
	"github.com/telekom/gateway-client-go/pkg/version"
)

const (
	// DefaultBaseURL is the production gateway endpoint.
	DefaultBaseURL = "https://api.telco-gateway.net"
	// DefaultTimeout bounds every HTTP exchange, token fetches included.
	DefaultTimeout = 30 * time.Second

	// tokenPath is resolved against the base URL unless WithTokenURL
	// overrides it.
	tokenPath = "/oauth/token"
)

// Client is the shared authenticated entry point to the gateway. The service
// packages hold one Client and delegate every exchange to it.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	auth      *auth.Authenticator
	userAgent string
	limiter   *ratelimit.Limiter
	log       *zap.SugaredLogger
	logSet    bool
	debug     bool
	timeout   time.Duration
	tokenURL  string
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL overrides the default gateway endpoint.
func WithBaseURL(base string) Option {
	return func(c *Client) error {
		parsed, err := url.Parse(base)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return &ConfigurationError{Field: "base url", Reason: "must be an absolute URL"}
		}
		c.baseURL = parsed
		return nil
	}
}

// WithTimeout bounds every HTTP exchange issued by the client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout <= 0 {
			return &ConfigurationError{Field: "timeout", Reason: "must be positive"}
		}
		c.timeout = timeout
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client, for embedders that
// need custom transports. Its timeout wins over WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) error {
		if client == nil {
			return &ConfigurationError{Field: "http client", Reason: "must not be nil"}
		}
		c.http = client
		return nil
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		c.userAgent = userAgent
		return nil
	}
}

// WithTokenURL points token exchanges at an endpoint other than
// {baseURL}/oauth/token.
func WithTokenURL(tokenURL string) Option {
	return func(c *Client) error {
		parsed, err := url.Parse(tokenURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return &ConfigurationError{Field: "token url", Reason: "must be an absolute URL"}
		}
		c.tokenURL = tokenURL
		return nil
	}
}

// WithLogger sets the logger used for wire-level diagnostics.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) error {
		if log == nil {
			return &ConfigurationError{Field: "logger", Reason: "must not be nil"}
		}
		c.log = log
		c.logSet = true
		return nil
	}
}

// WithDebug enables wire logging of every exchange. Diagnostic output only;
// no behavioral effect on requests.
func WithDebug(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}

// WithRateLimiter throttles outgoing requests through the given limiter.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(c *Client) error {
		c.limiter = limiter
		return nil
	}
}

// New creates a gateway client for the given application credentials.
// Missing credentials fail here, before any network activity.
func New(clientID, clientSecret string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, &ConfigurationError{Field: "client id", Reason: "is required"}
	}
	if strings.TrimSpace(clientSecret) == "" {
		return nil, &ConfigurationError{Field: "client secret", Reason: "is required"}
	}

	c := &Client{
		userAgent: version.UserAgent(),
		log:       zap.NewNop().Sugar(),
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.baseURL == nil {
		parsed, err := url.Parse(DefaultBaseURL)
		if err != nil {
			return nil, &ConfigurationError{Field: "base url", Reason: "must be an absolute URL"}
		}
		c.baseURL = parsed
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	if c.debug && !c.logSet {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, &ConfigurationError{Field: "logger", Reason: "could not be constructed: " + err.Error()}
		}
		c.log = logger.Sugar()
	}
	if c.tokenURL == "" {
		c.tokenURL = strings.TrimRight(c.baseURL.String(), "/") + tokenPath
	}

	c.auth = auth.New(
		auth.Credentials{ClientID: clientID, ClientSecret: clientSecret},
		c.tokenURL,
		auth.WithHTTPClient(c.http),
		auth.WithLogger(c.log),
	)
	return c, nil
}

// Authenticator exposes the token cache, for callers that need tokens
// directly (CLI token commands, oauth2 interop).
func (c *Client) Authenticator() *auth.Authenticator {
	return c.auth
}

// BaseURL returns the configured gateway endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

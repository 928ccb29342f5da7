package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/telekom/gateway-client-go/pkg/metrics"
)

// DefaultExpiry is assumed when the token endpoint omits expires_in.
const DefaultExpiry = 3600 * time.Second

// Credentials identify the application against the token endpoint. They are
// immutable for the lifetime of an Authenticator; the gateway client
// validates them before constructing one.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Authenticator owns the cached bearer token. It fetches a token on demand
// via the client-credentials grant and reuses it until it expires. The cache
// is guarded by a mutex; callers racing on an empty or stale cache are
// coalesced into a single token exchange.
type Authenticator struct {
	creds    Credentials
	tokenURL string
	http     *http.Client
	log      *zap.SugaredLogger
	now      func() time.Time

	group singleflight.Group

	mu    sync.Mutex
	token *Token
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithHTTPClient sets the HTTP client used for token exchanges. The client's
// timeout bounds the exchange.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Authenticator) {
		if client != nil {
			a.http = client
		}
	}
}

// WithLogger sets the logger for token lifecycle events.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(a *Authenticator) {
		if log != nil {
			a.log = log
		}
	}
}

// New creates an Authenticator exchanging the given credentials against
// tokenURL.
func New(creds Credentials, tokenURL string, opts ...Option) *Authenticator {
	a := &Authenticator{
		creds:    creds,
		tokenURL: tokenURL,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      zap.NewNop().Sugar(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Token returns a non-expired bearer token, performing a token exchange only
// when the cache is empty or stale. A failed exchange leaves the cache
// untouched and is not retried.
func (a *Authenticator) Token(ctx context.Context) (*Token, error) {
	if tok := a.cached(); tok != nil {
		metrics.TokenCacheHits.Inc()
		return tok, nil
	}
	result, err, _ := a.group.Do("token", func() (any, error) {
		// A concurrent caller may have refreshed the cache while this one
		// was waiting to join the flight.
		if tok := a.cached(); tok != nil {
			return tok, nil
		}
		tok, err := a.fetch(ctx)
		if err != nil {
			return nil, err
		}
		a.mu.Lock()
		a.token = tok
		a.mu.Unlock()
		return tok, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Token), nil
}

// Invalidate drops the cached token so the next Token call performs a fresh
// exchange.
func (a *Authenticator) Invalidate() {
	a.mu.Lock()
	a.token = nil
	a.mu.Unlock()
}

// cached returns a copy of the cached token if it is strictly unexpired.
func (a *Authenticator) cached() *Token {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token.Valid(a.now()) {
		tok := *a.token
		return &tok
	}
	return nil
}

func (a *Authenticator) fetch(ctx context.Context) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.creds.ClientID)
	form.Set("client_secret", a.creds.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &AuthenticationError{Message: "invalid token endpoint: " + err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := a.now()
	resp, err := a.http.Do(req)
	if err != nil {
		metrics.TokenRefreshFailures.Inc()
		return nil, &AuthenticationError{Message: "token exchange failed: " + err.Error(), Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.TokenRefreshFailures.Inc()
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Message: "failed to read token response: " + err.Error(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.TokenRefreshFailures.Inc()
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Message: msg}
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.TokenRefreshFailures.Inc()
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Message: "failed to parse token response: " + err.Error(), Err: err}
	}
	if parsed.AccessToken == "" {
		metrics.TokenRefreshFailures.Inc()
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Message: "token response missing access_token"}
	}

	expiry := DefaultExpiry
	if parsed.ExpiresIn > 0 {
		expiry = time.Duration(parsed.ExpiresIn) * time.Second
	}
	tokenType := parsed.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	metrics.TokenRefreshes.Inc()
	a.log.Debugw("token exchanged",
		"token_url", a.tokenURL,
		"expires_in", expiry,
		"duration", a.now().Sub(start))

	return &Token{
		AccessToken: parsed.AccessToken,
		TokenType:   tokenType,
		ExpiresAt:   a.now().Add(expiry),
	}, nil
}

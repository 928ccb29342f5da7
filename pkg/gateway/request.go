package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/telekom/gateway-client-go/pkg/metrics"
)

// RequestOptions control a single exchange. The zero value is a GET with no
// parameters, body, or extra headers.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Params are appended to the endpoint as a query string when non-empty.
	Params map[string]string
	// Body is JSON-encoded and attached only when the method is not GET and
	// the body is non-nil.
	Body any
	// Headers merge over the defaults, caller winning on key collision.
	Headers map[string]string
}

// Response is the outcome of a successful exchange (any HTTP status counts;
// non-2xx additionally yields a *RequestError).
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// IsJSON reports whether the response content type indicates a JSON body.
func (r *Response) IsJSON() bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// Text returns the raw body unmodified.
func (r *Response) Text() string {
	return string(r.Body)
}

// Decode unmarshals a JSON body into out. Non-JSON bodies are available via
// Text instead.
func (r *Response) Decode(out any) error {
	if !r.IsJSON() {
		return fmt.Errorf("response is not JSON (content type %q)", r.Header.Get("Content-Type"))
	}
	return json.Unmarshal(r.Body, out)
}

// Request performs one authenticated exchange against the gateway. The
// endpoint is resolved against the base URL (a missing leading slash is
// normalized). A failed token exchange propagates as *AuthenticationError; a
// network failure as *TransportError; a non-2xx status as *RequestError
// alongside the decoded Response.
func (c *Client) Request(ctx context.Context, endpoint string, opts *RequestOptions) (*Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := c.resolve(endpoint, opts.Params)
	if err != nil {
		return nil, err
	}

	// Token fetch happens-before the authenticated call that needs it.
	token, err := c.auth.Token(ctx)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: target.String(), Err: err}
		}
	}

	var payload io.Reader
	if method != http.MethodGet && opts.Body != nil {
		raw, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), payload)
	if err != nil {
		return nil, &ConfigurationError{Field: "endpoint", Reason: err.Error()}
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Correlation-ID", uuid.NewString())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	// Caller headers win on collision but never drop defaults they don't
	// override.
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.TransportFailures.WithLabelValues(method).Inc()
		if c.debug {
			c.log.Debugw("gateway exchange failed", "method", method, "url", target.String(), "error", err)
		}
		return nil, &TransportError{URL: target.String(), Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.TransportFailures.WithLabelValues(method).Inc()
		return nil, &TransportError{URL: target.String(), Err: err}
	}

	metrics.RequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.RequestDuration.Observe(time.Since(start).Seconds())
	if c.debug {
		c.log.Debugw("gateway exchange",
			"method", method,
			"url", target.String(),
			"status", resp.StatusCode,
			"duration", time.Since(start),
			"correlation_id", req.Header.Get("X-Correlation-ID"))
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &RequestError{StatusCode: resp.StatusCode, Status: resp.Status, Body: body}
	}
	return out, nil
}

// resolve joins the endpoint onto the base URL, preserving the base path
// prefix, and appends params as a query string.
func (c *Client) resolve(endpoint string, params map[string]string) (*url.URL, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, &ConfigurationError{Field: "endpoint", Reason: err.Error()}
	}
	if parsed.IsAbs() || parsed.Host != "" {
		return nil, &ConfigurationError{Field: "endpoint", Reason: "must be a path relative to the base URL"}
	}

	target := *c.baseURL
	target.Path = path.Join(target.Path, parsed.Path)
	target.RawQuery = parsed.RawQuery
	if len(params) > 0 {
		query := target.Query()
		for key, value := range params {
			query.Set(key, value)
		}
		target.RawQuery = query.Encode()
	}
	return &target, nil
}

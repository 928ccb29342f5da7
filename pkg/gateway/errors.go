package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/telekom/gateway-client-go/pkg/auth"
)

// AuthenticationError is surfaced unchanged when the token exchange fails so
// callers can tell it apart from resource-call failures.
type AuthenticationError = auth.AuthenticationError

// ConfigurationError reports invalid construction input. It is raised
// synchronously, before any network activity.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// RequestError reports a resource call that returned a non-success status.
// Body holds the raw response body; a body that decoded cleanly does not
// mask the failing status.
type RequestError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *RequestError) Error() string {
	msg := apiErrorMessage(e.Body)
	if msg == "" {
		msg = e.Status
	}
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, msg)
}

// TransportError reports a network or timeout failure before any HTTP status
// was received.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// apiErrorMessage extracts the error field the gateway uses in JSON error
// bodies, falling back to the trimmed body text.
func apiErrorMessage(body []byte) string {
	var apiErr struct {
		Error string `json:"error"`
	}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &apiErr)
	}
	msg := strings.TrimSpace(apiErr.Error)
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return msg
}

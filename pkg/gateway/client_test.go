package gateway

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		secret  string
		opts    []Option
		wantErr bool
	}{
		{
			name:    "missing client id",
			id:      "",
			secret:  "secret",
			wantErr: true,
		},
		{
			name:    "blank client id",
			id:      "   ",
			secret:  "secret",
			wantErr: true,
		},
		{
			name:    "missing client secret",
			id:      "id",
			secret:  "",
			wantErr: true,
		},
		{
			name:   "valid defaults",
			id:     "id",
			secret: "secret",
		},
		{
			name:   "with options",
			id:     "id",
			secret: "secret",
			opts: []Option{
				WithBaseURL("https://gateway.example.com/v2"),
				WithTimeout(5 * time.Second),
				WithUserAgent("custom-agent"),
				WithLogger(zap.NewNop().Sugar()),
			},
		},
		{
			name:    "invalid base url",
			id:      "id",
			secret:  "secret",
			opts:    []Option{WithBaseURL("not a url")},
			wantErr: true,
		},
		{
			name:    "relative base url",
			id:      "id",
			secret:  "secret",
			opts:    []Option{WithBaseURL("/relative")},
			wantErr: true,
		},
		{
			name:    "non-positive timeout",
			id:      "id",
			secret:  "secret",
			opts:    []Option{WithTimeout(0)},
			wantErr: true,
		},
		{
			name:    "nil http client",
			id:      "id",
			secret:  "secret",
			opts:    []Option{WithHTTPClient(nil)},
			wantErr: true,
		},
		{
			name:    "invalid token url",
			id:      "id",
			secret:  "secret",
			opts:    []Option{WithTokenURL("::bad")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.id, tt.secret, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, client)
				var cfgErr *ConfigurationError
				require.True(t, errors.As(err, &cfgErr))
			} else {
				require.NoError(t, err)
				require.NotNil(t, client)
				require.NotNil(t, client.Authenticator())
			}
		})
	}
}

func TestNewClientFailsBeforeAnyNetworkCall(t *testing.T) {
	// An unroutable base URL must not matter: credential validation happens
	// synchronously at construction.
	client, err := New("", "", WithBaseURL("http://127.0.0.1:1"))
	require.Error(t, err)
	require.Nil(t, client)
}

func TestClientDefaults(t *testing.T) {
	client, err := New("id", "secret")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Equal(t, DefaultBaseURL+"/oauth/token", client.tokenURL)
	assert.Equal(t, DefaultTimeout, client.http.Timeout)
}

func TestClientTokenURLDerivedFromBaseURL(t *testing.T) {
	client, err := New("id", "secret", WithBaseURL("https://gateway.example.com/api/"))
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.example.com/api/oauth/token", client.tokenURL)
}

func TestClientCustomHTTPClientWins(t *testing.T) {
	custom := &http.Client{Timeout: 2 * time.Second}
	client, err := New("id", "secret", WithHTTPClient(custom))
	require.NoError(t, err)
	assert.Same(t, custom, client.http)
}

package cmd

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/telekom/gateway-client-go/pkg/gateway"
	"github.com/telekom/gateway-client-go/pkg/gwctl/config"
	"github.com/telekom/gateway-client-go/pkg/version"
)

// buildClient constructs a gateway client from the selected profile,
// applying flag and environment overrides on top.
func buildClient(rt *runtimeState) (*gateway.Client, error) {
	profile := rt.currentProfile()
	if profile == nil {
		profile = &config.Profile{}
	}

	clientID := rt.clientIDOverride
	if clientID == "" {
		clientID = profile.ClientID
	}
	clientSecret := rt.clientSecretOverride
	if clientSecret == "" && profile.Name != "" {
		secret, err := config.ResolveSecret(profile)
		if err != nil {
			return nil, err
		}
		clientSecret = secret
	}
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("no credentials configured: run 'gwctl config init' or pass --client-id and --client-secret")
	}

	options := []gateway.Option{
		gateway.WithUserAgent("gwctl/" + version.Version),
	}

	baseURL := rt.baseURLOverride
	if baseURL == "" {
		baseURL = profile.BaseURL
	}
	if baseURL != "" {
		options = append(options, gateway.WithBaseURL(baseURL))
	}
	if profile.TokenURL != "" {
		options = append(options, gateway.WithTokenURL(profile.TokenURL))
	}
	if rt.cfg != nil && rt.cfg.Settings.Timeout != "" {
		timeout, err := time.ParseDuration(rt.cfg.Settings.Timeout)
		if err != nil {
			return nil, errors.New("invalid timeout in config: " + rt.cfg.Settings.Timeout)
		}
		options = append(options, gateway.WithTimeout(timeout))
	}
	if rt.verbose || (rt.cfg != nil && rt.cfg.Settings.Debug) {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		options = append(options, gateway.WithDebug(true), gateway.WithLogger(logger.Sugar()))
	}

	return gateway.New(clientID, clientSecret, options...)
}

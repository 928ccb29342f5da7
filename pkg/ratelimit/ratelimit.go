package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Config holds rate limiter configuration
type Config struct {
	// Rate is the number of requests allowed per second
	Rate float64
	// Burst is the maximum number of requests allowed in a burst
	Burst int
}

// DefaultConfig returns the default client-side limit.
// Conservative: 10 req/s with a burst of 20, matching the quota most
// operator gateways grant a fresh application.
func DefaultConfig() Config {
	return Config{
		Rate:  10,
		Burst: 20,
	}
}

// Limiter throttles outgoing gateway requests.
type Limiter struct {
	limiter *rate.Limiter
	config  Config
}

// New creates a limiter with the given configuration.
func New(cfg Config) *Limiter {
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultConfig().Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultConfig().Burst
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
		config:  cfg,
	}
}

// Wait blocks until the next request may be sent or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request may be sent immediately.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Config returns a copy of the current configuration (for testing)
func (l *Limiter) Config() Config {
	return l.config
}

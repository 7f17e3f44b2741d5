package middleware

import (
	"file-processing-tasks/pkg/log"
)

// Config carries the security settings the middleware enforces.
type Config struct {
	// APIKey is compared against the X-API-Key header. Empty disables auth.
	APIKey string
	// RateLimitPerMin is the per-client request budget. Zero disables it.
	RateLimitPerMin int
}

type Middleware struct {
	l       log.Logger
	apiKey  string
	limiter *rateLimiter
}

func New(l log.Logger, cfg Config) Middleware {
	mw := Middleware{
		l:      l,
		apiKey: cfg.APIKey,
	}
	if cfg.RateLimitPerMin > 0 {
		mw.limiter = newRateLimiter(cfg.RateLimitPerMin)
	}
	return mw
}

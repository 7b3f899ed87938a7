package middleware

import (
	"item-service/pkg/log"
)

// Config configures the shared middleware set.
type Config struct {
	// APIKeys are the accepted bearer tokens. Auth is disabled when empty.
	APIKeys []string
	// RateLimitPerMin is the per-client request budget. Zero disables limiting.
	RateLimitPerMin int
}

type Middleware struct {
	l       log.Logger
	apiKeys map[string]struct{}
	limiter *rateLimiter
}

func New(l log.Logger, cfg Config) Middleware {
	keys := make(map[string]struct{}, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		if k != "" {
			keys[k] = struct{}{}
		}
	}

	var limiter *rateLimiter
	if cfg.RateLimitPerMin > 0 {
		limiter = newRateLimiter(cfg.RateLimitPerMin)
	}

	return Middleware{
		l:       l,
		apiKeys: keys,
		limiter: limiter,
	}
}

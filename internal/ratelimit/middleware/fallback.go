package middleware

import (
	"log/slog"

	"loanengine/internal/ratelimit/service/requestlimit"
	"loanengine/internal/ratelimit/store/bucket"
)

// NewFallbackLimiter creates an in-memory limiter with the same budget as
// the primary, used while the primary store is unavailable. Returns nil if
// the limit is invalid.
func NewFallbackLimiter(limit requestlimit.Limit, logger *slog.Logger) RateLimiter {
	requests, err := requestlimit.New(
		bucket.New(),
		requestlimit.WithLogger(logger),
		requestlimit.WithLimit(limit),
	)
	if err != nil {
		if logger != nil {
			logger.Error("failed to initialize fallback rate limiter", "error", err)
		}
		return nil
	}
	return requests
}

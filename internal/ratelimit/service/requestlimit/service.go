package requestlimit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"loanengine/internal/ratelimit/metrics"
	"loanengine/internal/ratelimit/models"
	"loanengine/internal/ratelimit/ports"
	dErrors "loanengine/pkg/domain-errors"
)

// BucketStore is aliased so callers can wire a store without importing ports.
type BucketStore = ports.BucketStore

// Limit is a request budget per window.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// DefaultLimit allows 60 requests per minute per client IP.
var DefaultLimit = Limit{RequestsPerWindow: 60, Window: time.Minute}

type Service struct {
	buckets BucketStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	limit   Limit
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithLimit(limit Limit) Option {
	return func(s *Service) {
		s.limit = limit
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(buckets BucketStore, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, errors.New("buckets store is required")
	}

	svc := &Service{
		buckets: buckets,
		limit:   DefaultLimit,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.limit.RequestsPerWindow <= 0 || svc.limit.Window <= 0 {
		return nil, errors.New("rate limit must be positive")
	}
	return svc, nil
}

// CheckIP consumes one request from the client's budget.
func (s *Service) CheckIP(ctx context.Context, ip string) (*models.RateLimitResult, error) {
	result, err := s.buckets.Allow(ctx, models.NewIPKey(ip), s.limit.RequestsPerWindow, s.limit.Window)
	if err != nil {
		s.metrics.IncrementStoreErrors()
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rate limit")
	}

	if result.Allowed {
		s.metrics.IncrementAllowed()
		return result, nil
	}

	s.metrics.IncrementDenied()
	if s.logger != nil {
		s.logger.InfoContext(ctx, "rate limit exceeded",
			"client_ip", ip,
			"limit", result.Limit,
			"retry_after", result.RetryAfter,
		)
	}
	return result, nil
}

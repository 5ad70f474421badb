package bucket

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"loanengine/internal/ratelimit/models"
	"loanengine/pkg/platform/sentinel"
)

const defaultRedisPrefix = "loanengine:ratelimit:"

// RedisBucketStore implements BucketStore with one sorted set per key, scored
// by request time in microseconds. Requests are added optimistically in a
// MULTI block and removed again when they push the window over the limit.
type RedisBucketStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewRedisBucketStore(client redis.UniversalClient) *RedisBucketStore {
	return &RedisBucketStore{
		client: client,
		prefix: defaultRedisPrefix,
		now:    time.Now,
	}
}

func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	return s.AllowN(ctx, key, 1, limit, window)
}

func (s *RedisBucketStore) AllowN(ctx context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error) {
	now := s.now()
	redisKey := s.prefix + key
	cutoff := strconv.FormatInt(now.Add(-window).UnixMicro(), 10)

	members := make([]redis.Z, cost)
	names := make([]any, cost)
	for i := range members {
		name := uuid.NewString()
		members[i] = redis.Z{Score: float64(now.UnixMicro()), Member: name}
		names[i] = name
	}

	var (
		card   *redis.IntCmd
		oldest *redis.ZSliceCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "-inf", cutoff)
		pipe.ZAdd(ctx, redisKey, members...)
		card = pipe.ZCard(ctx, redisKey)
		oldest = pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
		pipe.PExpire(ctx, redisKey, window)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: redis allow %s: %v", sentinel.ErrUnavailable, key, err)
	}

	resetAt := now.Add(window)
	if z := oldest.Val(); len(z) > 0 {
		resetAt = time.UnixMicro(int64(z[0].Score)).Add(window)
	}

	count := int(card.Val())
	if count > limit {
		if err := s.client.ZRem(ctx, redisKey, names...).Err(); err != nil {
			return nil, fmt.Errorf("%w: redis rollback %s: %v", sentinel.ErrUnavailable, key, err)
		}
		return models.Denied(limit, now, resetAt), nil
	}

	return &models.RateLimitResult{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - count,
		ResetAt:   resetAt,
	}, nil
}

func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: redis reset %s: %v", sentinel.ErrUnavailable, key, err)
	}
	return nil
}

// GetCurrentCount returns the set size. Entries older than the window are
// only pruned by the next Allow, or dropped with the key's TTL.
func (s *RedisBucketStore) GetCurrentCount(ctx context.Context, key string) (int, error) {
	n, err := s.client.ZCard(ctx, s.prefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: redis count %s: %v", sentinel.ErrUnavailable, key, err)
	}
	return int(n), nil
}

// Package usage provides the Redis-backed usage tracker.
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"caboai_backend/internal/feature/chat/usecase"
)

// counterTTL keeps daily counters around past the end of their day so
// a request straddling midnight never resurrects a deleted key.
const counterTTL = 48 * time.Hour

// UsageRedis implements usecase.UsageRepository with per-user per-day
// Redis counters. INCR gives the atomicity; no application locking.
type UsageRedis struct {
	client *redis.Client
	prefix string
	limit  int64
}

// Compile-time check that UsageRedis implements UsageRepository.
var _ usecase.UsageRepository = (*UsageRedis)(nil)

// NewUsageRedis creates a new UsageRedis with the given daily request
// limit. If prefix is empty it uses "usage".
func NewUsageRedis(client *redis.Client, prefix string, limit int64) *UsageRedis {
	if prefix == "" {
		prefix = "usage"
	}
	return &UsageRedis{
		client: client,
		prefix: prefix,
		limit:  limit,
	}
}

func (r *UsageRedis) day() string {
	return time.Now().UTC().Format("2006-01-02")
}

func (r *UsageRedis) requestsKey(userID uint, day string) string {
	return fmt.Sprintf("%s:req:%d:%s", r.prefix, userID, day)
}

func (r *UsageRedis) tokensKey(userID uint, day string) string {
	return fmt.Sprintf("%s:tok:%d:%s", r.prefix, userID, day)
}

// Allow atomically counts one request and fails once the daily limit
// is exceeded. The increment before the check means two concurrent
// requests at the boundary cannot both slip under the limit.
func (r *UsageRedis) Allow(ctx context.Context, userID uint) error {
	key := r.requestsKey(userID, r.day())

	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key, counterTTL).Err(); err != nil {
			return err
		}
	}
	if n > r.limit {
		return usecase.ErrUsageLimitExceeded
	}
	return nil
}

// RecordTokens adds token usage for the user's current day.
func (r *UsageRedis) RecordTokens(ctx context.Context, userID uint, tokens int) error {
	if tokens <= 0 {
		return nil
	}
	key := r.tokensKey(userID, r.day())

	n, err := r.client.IncrBy(ctx, key, int64(tokens)).Result()
	if err != nil {
		return err
	}
	if n == int64(tokens) {
		// First write of the day; set the retention window.
		if err := r.client.Expire(ctx, key, counterTTL).Err(); err != nil {
			return err
		}
	}
	return nil
}

// Stats returns the user's usage for the current day.
func (r *UsageRedis) Stats(ctx context.Context, userID uint) (*usecase.UsageStats, error) {
	day := r.day()

	requests, err := r.client.Get(ctx, r.requestsKey(userID, day)).Int64()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	tokens, err := r.client.Get(ctx, r.tokensKey(userID, day)).Int64()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	remaining := r.limit - requests
	if remaining < 0 {
		remaining = 0
	}
	return &usecase.UsageStats{
		Requests:  requests,
		Tokens:    tokens,
		Limit:     r.limit,
		Remaining: remaining,
		Day:       day,
	}, nil
}

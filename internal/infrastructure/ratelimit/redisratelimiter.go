package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"banking/internal/shared/biztime"
)

const keyPrefix = "ratelimit"

type RedisRateLimiter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		now:    biztime.NowUTC,
	}
}

// allowScript trims the window and records the attempt only when it fits.
// KEYS[1] window key, ARGV[1] window start, ARGV[2] now, ARGV[3] limit,
// ARGV[4] ttl in ms, ARGV[5] member.
var allowScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
if redis.call('ZCARD', KEYS[1]) >= tonumber(ARGV[3]) then
	return 0
end
redis.call('ZADD', KEYS[1], ARGV[2], ARGV[5])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1
`)

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, rule Rule) (bool, error) {
	if !rule.Enabled() {
		return true, nil
	}

	now := l.now()
	redisKey := l.getKey(key, rule.Window)
	nowNano := now.UnixNano()
	member := fmt.Sprintf("%d-%s", nowNano, uuid.NewString())
	ttl := (rule.Window + time.Minute).Milliseconds()

	allowed, err := allowScript.Run(ctx, l.client, []string{redisKey},
		now.Add(-rule.Window).UnixNano(), nowNano, rule.Limit, ttl, member).Int()
	if err != nil {
		return false, fmt.Errorf("failed to run rate limit script: %w", err)
	}

	return allowed == 1, nil
}

func (l *RedisRateLimiter) Count(ctx context.Context, key string, rule Rule) (int64, error) {
	redisKey := l.getKey(key, rule.Window)
	windowStart := l.now().Add(-rule.Window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}

	return zcard.Val(), nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, key)

	iter := l.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}

	return nil
}

func (l *RedisRateLimiter) getKey(identifier string, window time.Duration) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, identifier, window.String())
}

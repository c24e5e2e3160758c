package rediskit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// luaSlidingWindow keeps one sorted set member per request inside the window.
// KEYS[1] limit key, ARGV[1] now ms, ARGV[2] window start ms, ARGV[3] window ms, ARGV[4] member, ARGV[5] limit.
// Returns the request number inside the window or -1 when the limit is reached.
const luaSlidingWindow = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local windowStart = tonumber(ARGV[2])
local windowMs = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '0', windowStart)
local count = redis.call('ZCARD', key)
if count < tonumber(ARGV[5]) then
  redis.call('ZADD', key, now, ARGV[4])
  redis.call('PEXPIRE', key, windowMs)
  return count + 1
end
return -1
`

type RateLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
}

func NewRateLimiter(rdb redis.Scripter, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: limit, window: window}
}

// Allow registers one request under key and reports whether it fits in the window.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now()
	nowMs := now.UnixMilli()
	windowMs := r.window.Milliseconds()
	member := fmt.Sprintf("%d-%d", nowMs, now.UnixNano())

	res, err := r.rdb.Eval(ctx, luaSlidingWindow, []string{key},
		nowMs, nowMs-windowMs, windowMs, member, r.limit).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return res >= 0, nil
}

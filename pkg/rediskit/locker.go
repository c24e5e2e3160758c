package rediskit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// luaReleaseIfMatch deletes the lock only while it still carries our token.
const luaReleaseIfMatch = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`

type Locker struct {
	rdb redis.Cmdable
}

func NewLocker(rdb redis.Cmdable) *Locker {
	return &Locker{rdb: rdb}
}

// TryAcquire sets key with a fresh token unless it is already held. The returned release func is
// safe to call after ttl expired and another holder took over.
func (l *Locker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquiring lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		// the caller context may already be cancelled at this point.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second) //nolint:mnd
		defer cancel()
		_ = l.rdb.Eval(releaseCtx, luaReleaseIfMatch, []string{key}, token).Err()
	}
	return release, true, nil
}

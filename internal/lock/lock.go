// Package lock serializes read-validate-write cycles over the snapshot
// store. The core itself is pure; this is the serialization the
// integrating system owes it when more than one writer exists.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const lockReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// Locker hands out exclusive leases on a key.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

var Module = fx.Module("lock",
	fx.Provide(New),
)

// New returns a redis-backed locker, or a single-process no-op locker
// when redis is not configured.
func New(client *redis.Client) Locker {
	if client == nil {
		return noopLocker{}
	}
	return &redisLocker{
		client: client,
		script: redis.NewScript(lockReleaseScript),
	}
}

type redisLocker struct {
	client *redis.Client
	script *redis.Script
}

func (l *redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("lock key is empty")
	}
	if ttl <= 0 {
		return "", false, errors.New("lock ttl must be positive")
	}

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (l *redisLocker) Release(ctx context.Context, key, token string) error {
	if key == "" || token == "" {
		return nil
	}
	return l.script.Run(ctx, l.client, []string{key}, token).Err()
}

// noopLocker always grants the lease. A single process needs no
// cross-process serialization.
type noopLocker struct{}

func (noopLocker) TryLock(context.Context, string, time.Duration) (string, bool, error) {
	return uuid.NewString(), true, nil
}

func (noopLocker) Release(context.Context, string, string) error { return nil }

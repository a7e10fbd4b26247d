// Package lock provides a Redis-backed mutex shared by every dashboard replica.
// The seeder holds SeedLockKey for a whole run, mutating requests hold WriteLockKey.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	SeedLockKey  = "opsboard:seed_lock"
	WriteLockKey = "opsboard:write_lock"
)

const (
	minBackoff = 50 * time.Millisecond
	maxBackoff = 500 * time.Millisecond
)

var (
	// ErrTimeout is returned when the lock could not be obtained in time.
	ErrTimeout = errors.New("timeout acquiring lock")
	// ErrNotHeld is returned by Release when the token no longer owns the key,
	// usually because the TTL expired mid-run.
	ErrNotHeld = errors.New("lock not held")
)

// DistributedLock is an exclusive lock on one Redis key.
type DistributedLock struct {
	client         *redis.Client
	lockKey        string
	lockTTL        time.Duration
	acquireTimeout time.Duration
}

// New creates a lock on key that expires after ttl and waits at most acquireTimeout.
func New(client *redis.Client, key string, ttl, acquireTimeout time.Duration) *DistributedLock {
	return &DistributedLock{
		client:         client,
		lockKey:        key,
		lockTTL:        ttl,
		acquireTimeout: acquireTimeout,
	}
}

// Key returns the Redis key guarded by the lock.
func (l *DistributedLock) Key() string {
	return l.lockKey
}

// TryAcquire makes a single attempt. An empty token with a nil error means
// another holder owns the key.
func (l *DistributedLock) TryAcquire(ctx context.Context) (string, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.lockKey, token, l.lockTTL).Result()
	if err != nil {
		return "", fmt.Errorf("redis setnx %s: %w", l.lockKey, err)
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

// Acquire retries TryAcquire with capped exponential backoff until it wins,
// ctx ends, or acquireTimeout passes. The returned token is needed for Release.
func (l *DistributedLock) Acquire(ctx context.Context) (string, error) {
	deadline := time.Now().Add(l.acquireTimeout)
	backoff := minBackoff
	for {
		token, err := l.TryAcquire(ctx)
		if err != nil || token != "" {
			return token, err
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("%w %s after %s", ErrTimeout, l.lockKey, l.acquireTimeout)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
		backoff = nextBackoff(backoff)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// compare-and-delete so a late Release never frees someone else's lock
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
else
    return 0
end
`)

// Release frees the lock if token still owns it, else returns ErrNotHeld.
func (l *DistributedLock) Release(ctx context.Context, token string) error {
	n, err := releaseScript.Run(ctx, l.client, []string{l.lockKey}, token).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release %s: %w", l.lockKey, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotHeld, l.lockKey)
	}
	return nil
}

// Do runs fn while holding the lock. A lock that expired before fn returned
// is reported alongside fn's own result.
func (l *DistributedLock) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	token, err := l.Acquire(ctx)
	if err != nil {
		return err
	}
	runErr := fn(ctx)
	relErr := l.Release(context.WithoutCancel(ctx), token)
	return errors.Join(runErr, relErr)
}

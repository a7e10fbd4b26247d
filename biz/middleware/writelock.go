package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/opsboard/pkg/common"
	"github.com/yi-nology/opsboard/pkg/lock"
)

var globalWriteLock *lock.DistributedLock

// InitWriteLock sets the lock that serializes mutating requests across replicas.
// Passing nil disables it.
func InitWriteLock(l *lock.DistributedLock) {
	globalWriteLock = l
}

// WriteLockMw returns the write-lock middleware, or nil when no lock is set.
// Routes must be registered after InitWriteLock.
func WriteLockMw() []app.HandlerFunc {
	if globalWriteLock == nil {
		return nil
	}
	return []app.HandlerFunc{writeLockHandler(globalWriteLock)}
}

// locker is the part of lock.DistributedLock the middleware uses.
type locker interface {
	Acquire(ctx context.Context) (string, error)
	Release(ctx context.Context, token string) error
	Key() string
}

// writeLockHandler holds l for the rest of the chain. Release runs even when
// the request context is already canceled.
func writeLockHandler(l locker) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		lockID, err := l.Acquire(ctx)
		if err != nil {
			hlog.CtxWarnf(ctx, "[WriteLock] acquire %s: %v", l.Key(), err)
			c.AbortWithStatusJSON(consts.StatusServiceUnavailable, common.CommonResponse{
				Code: consts.StatusServiceUnavailable,
				Msg:  "service busy, please retry later",
			})
			return
		}
		defer func() {
			if releaseErr := l.Release(context.WithoutCancel(ctx), lockID); releaseErr != nil {
				hlog.CtxErrorf(ctx, "[WriteLock] release %s: %v", l.Key(), releaseErr)
			}
		}()
		c.Next(ctx)
	}
}

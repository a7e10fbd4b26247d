package middleware

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/yi-nology/opsboard/pkg/common"
)

// Logging logs one line per request. Auth must run first for the caller to appear.
func Logging() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)

		caller, _ := common.CallerFrom(ctx)
		hlog.CtxInfof(ctx, "[%s] %s %s %s %d %v",
			c.ClientIP(),
			caller.String(),
			c.Request.Method(),
			c.Request.URI().Path(),
			c.Response.StatusCode(),
			time.Since(start),
		)
	}
}

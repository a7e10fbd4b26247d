package middleware

import (
	"context"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/opsboard/pkg/common"
)

// Recovery turns a handler panic into a 500 envelope. The panic value is
// logged with the route, never returned to the client.
func Recovery() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			hlog.CtxErrorf(ctx, "[Recovery] %s %s panicked: %v\n%s",
				c.Request.Method(), c.FullPath(), r, debug.Stack())
			c.AbortWithStatusJSON(consts.StatusInternalServerError, common.CommonResponse{
				Code: consts.StatusInternalServerError,
				Msg:  "internal server error",
			})
		}()
		c.Next(ctx)
	}
}

package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/yi-nology/opsboard/pkg/common"
)

// Auth records the caller identity headers in the context.
// Nothing is enforced here; access rules are a lookup service only.
func Auth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		caller := common.ParseCaller(
			string(c.GetHeader(common.HeaderUserID)),
			string(c.GetHeader(common.HeaderRole)),
		)
		if !caller.IsZero() {
			ctx = common.ContextWithCaller(ctx, caller)
		}
		c.Next(ctx)
	}
}

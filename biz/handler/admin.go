package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Reseed handles POST /api/v1/admin/seed: wipe and regenerate the demo dataset.
func (h *OpsHandler) Reseed(ctx context.Context, c *app.RequestContext) {
	ctx = EnrichContext(ctx, c)
	summary, err := h.service.Reseed(ctx)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	hlog.CtxInfof(ctx, "[Seed] Reseed finished: %d configs, %d instances", summary.DeploymentConfigs, summary.ServiceInstances)
	RespondData(c, summary)
}

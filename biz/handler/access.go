package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/yi-nology/opsboard/biz/model/api"
)

// CheckAccess handles GET /api/v1/access/check. Lookup only; nothing is enforced.
func (h *OpsHandler) CheckAccess(ctx context.Context, c *app.RequestContext) {
	var req api.AccessCheckRequest
	if err := c.BindAndValidate(&req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	result, err := h.service.CheckAccess(EnrichContext(ctx, c), &req)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, result)
}

func (h *OpsHandler) ListAccessRules(ctx context.Context, c *app.RequestContext) {
	var req api.ListAccessRulesRequest
	if err := c.BindAndValidate(&req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	rules, err := h.service.ListAccessRules(EnrichContext(ctx, c), &req)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, map[string]any{"rules": rules})
}

package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/yi-nology/opsboard/biz/model/api"
)

func (h *OpsHandler) ListDeployments(ctx context.Context, c *app.RequestContext) {
	var req api.ListDeploymentsRequest
	if err := c.BindAndValidate(&req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	list, err := h.service.ListDeployments(EnrichContext(ctx, c), &req)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, map[string]any{"deployments": list})
}

func (h *OpsHandler) GetDeployment(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c, "id")
	if err != nil {
		WriteBadRequest(c, err)
		return
	}
	cfg, err := h.service.GetDeployment(EnrichContext(ctx, c), id)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, cfg)
}

func (h *OpsHandler) CreateDeployment(ctx context.Context, c *app.RequestContext) {
	var req api.CreateDeploymentRequest
	if err := c.BindJSON(&req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	cfg, err := h.service.CreateDeployment(EnrichContext(ctx, c), &req)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, cfg)
}

// SetDeploymentEnabled handles PUT /api/v1/deployments/:id/enabled.
func (h *OpsHandler) SetDeploymentEnabled(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c, "id")
	if err != nil {
		WriteBadRequest(c, err)
		return
	}
	var req api.SetEnabledRequest
	if err := c.BindJSON(&req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	req.ID = id
	cfg, err := h.service.SetDeploymentEnabled(EnrichContext(ctx, c), &req)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, cfg)
}

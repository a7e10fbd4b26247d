package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/yi-nology/opsboard/biz/model/api"
)

func (h *OpsHandler) ListInstances(ctx context.Context, c *app.RequestContext) {
	var req api.ListInstancesRequest
	if err := c.BindAndValidate(&req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	list, err := h.service.ListInstances(EnrichContext(ctx, c), &req)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, map[string]any{"instances": list})
}

func (h *OpsHandler) GetInstance(ctx context.Context, c *app.RequestContext) {
	inst, err := h.service.GetInstance(EnrichContext(ctx, c), c.Param("instanceID"))
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, inst)
}

// CreateInstance handles POST /api/v1/instances. The deployment config must already exist.
func (h *OpsHandler) CreateInstance(ctx context.Context, c *app.RequestContext) {
	var req api.CreateInstanceRequest
	if err := c.BindJSON(&req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	inst, err := h.service.CreateInstance(EnrichContext(ctx, c), &req)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, inst)
}

func (h *OpsHandler) UpdateInstanceStatus(ctx context.Context, c *app.RequestContext) {
	var req api.UpdateInstanceStatusRequest
	if err := c.BindJSON(&req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	req.InstanceID = c.Param("instanceID")
	inst, err := h.service.UpdateInstanceStatus(EnrichContext(ctx, c), &req)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, inst)
}

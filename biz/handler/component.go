package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/yi-nology/opsboard/biz/model/api"
)

func (h *OpsHandler) ListComponents(ctx context.Context, c *app.RequestContext) {
	var req api.ListComponentsRequest
	if err := c.BindAndValidate(&req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	list, err := h.service.ListComponents(EnrichContext(ctx, c), &req)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, map[string]any{"components": list})
}

func (h *OpsHandler) GetComponent(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c, "id")
	if err != nil {
		WriteBadRequest(c, err)
		return
	}
	comp, err := h.service.GetComponent(EnrichContext(ctx, c), id)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, comp)
}

func (h *OpsHandler) CreateComponent(ctx context.Context, c *app.RequestContext) {
	var req api.CreateComponentRequest
	if err := c.BindJSON(&req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	comp, err := h.service.CreateComponent(EnrichContext(ctx, c), &req)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, comp)
}

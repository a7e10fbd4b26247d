package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/yi-nology/opsboard/biz/model/api"
	"github.com/yi-nology/opsboard/biz/service"
)

// OpsHandler exposes the dashboard API.
type OpsHandler struct {
	service *service.Service
}

func NewOpsHandler(svc *service.Service) *OpsHandler {
	return &OpsHandler{service: svc}
}

// ListProjects handles GET /api/v1/projects.
func (h *OpsHandler) ListProjects(ctx context.Context, c *app.RequestContext) {
	var req api.ListProjectsRequest
	if err := c.BindAndValidate(&req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	list, err := h.service.ListProjects(EnrichContext(ctx, c), &req)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, map[string]any{"projects": list})
}

// GetProject handles GET /api/v1/projects/:id.
func (h *OpsHandler) GetProject(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c, "id")
	if err != nil {
		WriteBadRequest(c, err)
		return
	}
	project, err := h.service.GetProject(EnrichContext(ctx, c), id)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, project)
}

// ListInfrastructure handles GET /api/v1/infrastructure.
func (h *OpsHandler) ListInfrastructure(ctx context.Context, c *app.RequestContext) {
	var req api.ListInfrastructureRequest
	if err := c.BindAndValidate(&req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	list, err := h.service.ListInfrastructure(EnrichContext(ctx, c), &req)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, map[string]any{"infrastructure": list})
}

// GetInfrastructure handles GET /api/v1/infrastructure/:id.
func (h *OpsHandler) GetInfrastructure(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c, "id")
	if err != nil {
		WriteBadRequest(c, err)
		return
	}
	host, err := h.service.GetInfrastructure(EnrichContext(ctx, c), id)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, host)
}

// ListProfiles handles GET /api/v1/projects/:id/profiles.
func (h *OpsHandler) ListProfiles(ctx context.Context, c *app.RequestContext) {
	id, err := pathID(c, "id")
	if err != nil {
		WriteBadRequest(c, err)
		return
	}
	profiles, err := h.service.ListProfiles(EnrichContext(ctx, c), id)
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, map[string]any{"profiles": profiles})
}

func (h *OpsHandler) ListEnvironments(ctx context.Context, c *app.RequestContext) {
	envs, err := h.service.ListEnvironments(EnrichContext(ctx, c))
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, map[string]any{"environments": envs})
}

func (h *OpsHandler) ListRegions(ctx context.Context, c *app.RequestContext) {
	regions, err := h.service.ListRegions(EnrichContext(ctx, c))
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, map[string]any{"regions": regions})
}

func (h *OpsHandler) GetOverview(ctx context.Context, c *app.RequestContext) {
	overview, err := h.service.GetOverview(EnrichContext(ctx, c))
	if err != nil {
		RespondError(ctx, c, err)
		return
	}
	RespondData(c, overview)
}

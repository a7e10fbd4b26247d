package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/yi-nology/opsboard/biz/handler"
	"github.com/yi-nology/opsboard/biz/handler/version"
	"github.com/yi-nology/opsboard/biz/middleware"
)

// RegisterOpsRoutes configures HTTP routes for the dashboard API.
// Mutating routes pass through the write lock when Redis is enabled.
func RegisterOpsRoutes(r *server.Hertz, h *handler.OpsHandler) {
	if h == nil {
		return
	}

	v1 := r.Group("/api/v1")
	v1.GET("/version", version.GetVersion)
	v1.GET("/overview", h.GetOverview)
	v1.GET("/environments", h.ListEnvironments)
	v1.GET("/regions", h.ListRegions)

	v1.GET("/projects", h.ListProjects)
	v1.GET("/projects/:id", h.GetProject)
	v1.GET("/projects/:id/profiles", h.ListProfiles)

	v1.GET("/infrastructure", h.ListInfrastructure)
	v1.GET("/infrastructure/:id", h.GetInfrastructure)

	components := v1.Group("/components")
	components.GET("", h.ListComponents)
	components.GET("/:id", h.GetComponent)
	components.POST("", append(middleware.WriteLockMw(), h.CreateComponent)...)

	deployments := v1.Group("/deployments")
	deployments.GET("", h.ListDeployments)
	deployments.GET("/:id", h.GetDeployment)
	deployments.POST("", append(middleware.WriteLockMw(), h.CreateDeployment)...)
	deployments.PUT("/:id/enabled", append(middleware.WriteLockMw(), h.SetDeploymentEnabled)...)

	instances := v1.Group("/instances")
	instances.GET("", h.ListInstances)
	instances.GET("/:instanceID", h.GetInstance)
	instances.POST("", append(middleware.WriteLockMw(), h.CreateInstance)...)
	instances.PUT("/:instanceID/status", append(middleware.WriteLockMw(), h.UpdateInstanceStatus)...)

	v1.GET("/access/check", h.CheckAccess)
	v1.GET("/access/rules", h.ListAccessRules)

	v1.POST("/admin/seed", append(middleware.WriteLockMw(), h.Reseed)...)

	r.GET("/ping", handler.Ping)
}

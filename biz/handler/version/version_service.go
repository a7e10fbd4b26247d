// Package version reports the running build and the seed catalog it loaded.
package version

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/opsboard/pkg/common"
)

// Set from main via -ldflags.
var (
	AppVersion   = "dev"
	AppGitCommit = "unknown"
	AppBuildTime = "unknown"
)

var catalogVersion atomic.Value

// SetCatalog records the version of the seed catalog in use.
func SetCatalog(v string) {
	catalogVersion.Store(v)
}

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Catalog   string `json:"seed_catalog,omitempty"`
}

// Current snapshots the build info.
func Current() *Info {
	info := &Info{
		Version:   AppVersion,
		GitCommit: AppGitCommit,
		BuildTime: AppBuildTime,
		GoVersion: runtime.Version(),
	}
	if v, ok := catalogVersion.Load().(string); ok {
		info.Catalog = v
	}
	return info
}

// GetVersion .
// @router /api/v1/version [GET]
func GetVersion(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Msg:  "success",
		Data: Current(),
	})
}

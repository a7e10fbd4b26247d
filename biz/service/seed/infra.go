package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"github.com/yi-nology/opsboard/pkg/constants"
)

// Machines generated per profile, upper bound exclusive.
const (
	minHostsPerProfile = 10
	maxHostsPerProfile = 13
)

var (
	prodTypeCycle    = []string{constants.InfraTypeECS, constants.InfraTypeWindows, constants.InfraTypeLinux}
	stagingTypeCycle = []string{constants.InfraTypeECS, constants.InfraTypeWindows, constants.InfraTypeLinux, constants.InfraTypeLinux}
	devTypeCycle     = []string{constants.InfraTypeWindows, constants.InfraTypeLinux}
)

// InfraTypeFor returns the type of the idx-th machine of a profile in env.
func InfraTypeFor(env string, idx int) string {
	var cycle []string
	switch env {
	case constants.EnvProd, constants.EnvCOB:
		cycle = prodTypeCycle
	case constants.EnvStaging:
		cycle = stagingTypeCycle
	default:
		cycle = devTypeCycle
	}
	return cycle[idx%len(cycle)]
}

// MachineName builds "{slug}-{profile}-vm-{NN}" for a one-based index.
func MachineName(projectSlug, profileCode string, n int) string {
	return fmt.Sprintf("%s-%s-vm-%02d", projectSlug, profileCode, n)
}

// hostPlan is one profile's infrastructure inputs.
type hostPlan struct {
	projectSlug string
	profile     *model.Profile
	mappingID   uint
	env         string
	region      string
	datacenters []string
}

// generateHosts builds the machines of one profile with their metrics attached.
func generateHosts(g *Rand, plan hostPlan, now time.Time) []*model.Infrastructure {
	count := g.IntRange(minHostsPerProfile, maxHostsPerProfile)
	hosts := make([]*model.Infrastructure, 0, count)
	for i := 0; i < count; i++ {
		infraType := InfraTypeFor(plan.env, i)
		name := MachineName(plan.projectSlug, plan.profile.Code, i+1)
		host := &model.Infrastructure{
			Type:            infraType,
			Name:            name,
			Hostname:        fmt.Sprintf("%s.%s.opsboard.internal", name, strings.ToLower(plan.region)),
			EnvironmentCode: plan.env,
			RegionCode:      plan.region,
			Datacenter:      Pick(g, plan.datacenters),
			Status:          constants.StatusActive,
			MappingID:       plan.mappingID,
			ProfileID:       plan.profile.ID,
		}
		if infraType != constants.InfraTypeECS {
			ip := randomIP(g)
			host.IPAddress = &ip
		}
		host.Metrics = GenerateMetrics(g, infraType, now)
		hosts = append(hosts, host)
	}
	return hosts
}

func randomIP(g *Rand) string {
	return fmt.Sprintf("10.%d.%d.%d", g.IntN(256), g.IntN(256), g.IntRange(1, 255))
}

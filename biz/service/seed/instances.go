package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/yi-nology/opsboard/biz/dal/model"
	"github.com/yi-nology/opsboard/pkg/constants"
)

const (
	instanceBasePort  = 8080
	allProfilesChance = 0.85
	runningChance     = 0.95
	minUptimeSeconds  = 3600
	maxUptimeSeconds  = 90000
	instanceIDPrefix  = "srv-"
)

// generateServiceInstances deploys the project's service names. Names the
// matcher cannot resolve to a component are left undeployed.
func (r *run) generateServiceInstances(ctx context.Context, ps *projectState) error {
	names := make(map[string]bool, len(ps.componentsByName))
	for name := range ps.componentsByName {
		names[name] = true
	}
	regions := pinnableRegions(ps.profiles)

	var instances []*model.ServiceInstance
	for _, svc := range ps.spec.Services {
		compName, ok := r.seeder.matcher.ResolveIn(svc, names)
		if !ok {
			hlog.CtxDebugf(ctx, "[Seed] No component matches service %s, not deployed", svc)
			r.summary.UnmatchedServices++
			continue
		}
		comp := ps.componentsByName[compName]

		targets := ps.profiles
		if !r.g.Chance(allProfilesChance) && len(regions) > 0 {
			targets = profilesInRegion(ps.profiles, Pick(r.g, regions))
		}

		for _, pr := range targets {
			hosts := hostsForProfile(ps.hosts, pr.profile.Code)
			if len(hosts) == 0 {
				hlog.CtxWarnf(ctx, "[Seed] No infrastructure named for profile %s, skipping service %s", pr.profile.Code, svc)
				continue
			}
			host := Pick(r.g, hosts)

			port := instanceBasePort + r.g.IntN(portSpread)
			inst := &model.ServiceInstance{
				InstanceID:  instanceIDPrefix + pr.profile.Code + "-" + r.g.Hex8(),
				ServiceName: svc,
				MachineName: host.Name,
				InfraType:   host.Type,
				Profile:     pr.profile.Code,
				Port:        port,
				Version:     fmt.Sprintf("%d.%d.%d", r.g.IntN(5), r.g.IntN(10), r.g.IntN(10)),
			}
			uptime := r.g.IntRange(minUptimeSeconds, maxUptimeSeconds)
			inst.UptimeSeconds = int64(uptime)
			inst.Status = constants.StatusDegraded
			if r.g.Chance(runningChance) {
				inst.Status = constants.StatusRunning
			}
			started := r.now.Add(-time.Duration(uptime) * time.Second)
			heartbeat := r.now
			inst.StartedAt = &started
			inst.LastHeartbeatAt = &heartbeat

			cfg, err := r.configFor(ctx, ps, comp, host, pr, port)
			if err != nil {
				return err
			}
			inst.DeploymentConfigID = cfg.ID
			instances = append(instances, inst)
		}
	}

	if err := r.seeder.instanceDAO.BatchCreate(ctx, r.tx, instances); err != nil {
		return err
	}
	r.summary.ServiceInstances += len(instances)
	return nil
}

// configFor returns the config binding comp to host, creating an enabled one
// listening on port when placement did not produce it.
func (r *run) configFor(ctx context.Context, ps *projectState, comp *model.Component, host *model.Infrastructure, pr profileRef, port int) (*model.DeploymentConfig, error) {
	key := pairKey{comp.ID, host.ID}
	if cfg, ok := ps.configs[key]; ok {
		return cfg, nil
	}
	profileID := pr.profile.ID
	cfg := &model.DeploymentConfig{
		ComponentID:      comp.ID,
		InfrastructureID: host.ID,
		ProfileID:        &profileID,
		BasePort:         port,
		Enabled:          true,
	}
	if err := r.seeder.configDAO.Create(ctx, r.tx, cfg); err != nil {
		return nil, fmt.Errorf("create config %s on %s: %w", comp.Name, host.Name, err)
	}
	ps.configs[key] = cfg
	r.summary.DeploymentConfigs++
	return cfg, nil
}

// pinnableRegions lists the non-global regions of the profiles in first-seen order.
func pinnableRegions(profiles []profileRef) []string {
	var regions []string
	seen := make(map[string]bool)
	for _, pr := range profiles {
		if pr.region == constants.RegionGlobal || seen[pr.region] {
			continue
		}
		seen[pr.region] = true
		regions = append(regions, pr.region)
	}
	return regions
}

// profilesInRegion keeps profiles of region plus the region agnostic ones.
func profilesInRegion(profiles []profileRef, region string) []profileRef {
	var out []profileRef
	for _, pr := range profiles {
		if pr.region == region || pr.region == constants.RegionGlobal {
			out = append(out, pr)
		}
	}
	return out
}

func hostsForProfile(hosts []*model.Infrastructure, profileCode string) []*model.Infrastructure {
	var out []*model.Infrastructure
	for _, h := range hosts {
		if strings.Contains(h.Name, profileCode) {
			out = append(out, h)
		}
	}
	return out
}

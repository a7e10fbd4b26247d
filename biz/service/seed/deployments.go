package seed

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/yi-nology/opsboard/biz/dal/model"
	"github.com/yi-nology/opsboard/pkg/constants"
)

// Base ports are drawn from [deploymentBasePort, deploymentBasePort+portSpread).
const (
	deploymentBasePort = 8000
	portSpread         = 100
)

type weightedType struct {
	infraType string
	weight    float64
}

var preferredTypeWeights = []weightedType{
	{constants.InfraTypeLinux, 0.7},
	{constants.InfraTypeECS, 0.2},
	{constants.InfraTypeWindows, 0.1},
}

// preferredInfraType draws 70% linux, 20% ecs, 10% windows.
func preferredInfraType(g *Rand) string {
	x := g.Float64()
	acc := 0.0
	for _, w := range preferredTypeWeights {
		acc += w.weight
		if x < acc {
			return w.infraType
		}
	}
	return preferredTypeWeights[len(preferredTypeWeights)-1].infraType
}

type pairKey struct {
	componentID      uint
	infrastructureID uint
}

// hostIndex groups a project's hosts by profile, and by type within a profile.
type hostIndex struct {
	byType    map[uint]map[string][]*model.Infrastructure
	byProfile map[uint][]*model.Infrastructure
}

func indexHosts(hosts []*model.Infrastructure) *hostIndex {
	ix := &hostIndex{
		byType:    make(map[uint]map[string][]*model.Infrastructure),
		byProfile: make(map[uint][]*model.Infrastructure),
	}
	for _, host := range hosts {
		if ix.byType[host.ProfileID] == nil {
			ix.byType[host.ProfileID] = make(map[string][]*model.Infrastructure)
		}
		ix.byType[host.ProfileID][host.Type] = append(ix.byType[host.ProfileID][host.Type], host)
		ix.byProfile[host.ProfileID] = append(ix.byProfile[host.ProfileID], host)
	}
	return ix
}

// place picks a random host of the preferred type in the profile, else any
// host in the profile. Nil means the profile has no hosts.
func (ix *hostIndex) place(g *Rand, profileID uint, preferred string) *model.Infrastructure {
	candidates := ix.byType[profileID][preferred]
	if len(candidates) == 0 {
		candidates = ix.byProfile[profileID]
	}
	if len(candidates) == 0 {
		return nil
	}
	return Pick(g, candidates)
}

// generateDeploymentConfigs places every component once per profile.
func (r *run) generateDeploymentConfigs(ctx context.Context, ps *projectState) error {
	ix := indexHosts(ps.hosts)

	var configs []*model.DeploymentConfig
	for _, comp := range ps.components {
		preferred := r.preferType(r.g)
		for _, pr := range ps.profiles {
			host := ix.place(r.g, pr.profile.ID, preferred)
			if host == nil {
				hlog.CtxWarnf(ctx, "[Seed] No infrastructure in profile %s for component %s, skipping", pr.profile.Code, comp.Name)
				continue
			}
			key := pairKey{comp.ID, host.ID}
			if _, exists := ps.configs[key]; exists {
				continue
			}

			params, err := DeploymentParams(host.Type)
			if err != nil {
				hlog.CtxErrorf(ctx, "[Seed] Skip config %s on %s: %v", comp.Name, host.Name, err)
				continue
			}
			profileID := pr.profile.ID
			cfg := &model.DeploymentConfig{
				ComponentID:      comp.ID,
				InfrastructureID: host.ID,
				ProfileID:        &profileID,
				BasePort:         deploymentBasePort + r.g.IntN(portSpread),
				Enabled:          true,
				DeploymentParams: params,
			}
			ps.configs[key] = cfg
			configs = append(configs, cfg)
		}
	}

	if err := r.seeder.configDAO.BatchCreate(ctx, r.tx, configs); err != nil {
		return err
	}
	r.summary.DeploymentConfigs += len(configs)
	return nil
}

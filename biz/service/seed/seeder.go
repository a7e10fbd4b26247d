// Package seed generates the deterministic demo dataset of the dashboard:
// master data, project trees, components, infrastructure with metrics and,
// when enabled, deployment configs and service instances.
package seed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/yi-nology/opsboard/biz/dal/db"
	"github.com/yi-nology/opsboard/biz/dal/model"
	"github.com/yi-nology/opsboard/pkg/config"
	"github.com/yi-nology/opsboard/pkg/constants"
	"github.com/yi-nology/opsboard/pkg/lock"
	"gorm.io/gorm"
)

// Catalog inconsistencies that abort a run.
var (
	ErrUnknownEnvironment = errors.New("unknown environment code")
	ErrUnknownRegion      = errors.New("unknown region code")
	ErrUnknownProjectType = errors.New("unknown project type")
)

// Options controls a Seeder.
type Options struct {
	Mode       string
	OpsData    bool
	RandomSeed uint64
	// Lock serializes runs across replicas when set.
	Lock *lock.DistributedLock
	// Now stamps usage samples and instance timestamps; defaults to time.Now.
	Now func() time.Time
}

// OptionsFromConfig maps the seed section of the service config.
func OptionsFromConfig(cfg config.SeedConfig) Options {
	return Options{
		Mode:       cfg.Mode,
		OpsData:    cfg.OpsData,
		RandomSeed: cfg.RandomSeed,
	}
}

// Summary reports what a run produced.
type Summary struct {
	Skipped           bool   `json:"skipped"`
	Reason            string `json:"reason,omitempty"`
	Environments      int    `json:"environments"`
	Regions           int    `json:"regions"`
	Projects          int    `json:"projects"`
	Mappings          int    `json:"mappings"`
	Profiles          int    `json:"profiles"`
	Components        int    `json:"components"`
	Infrastructure    int    `json:"infrastructure"`
	Metrics           int    `json:"metrics"`
	DeploymentConfigs int    `json:"deployment_configs"`
	ServiceInstances  int    `json:"service_instances"`
	UnmatchedServices int    `json:"unmatched_services"`
	AccessRules       int    `json:"access_rules"`
}

// Seeder rebuilds the dashboard tables from a Catalog.
type Seeder struct {
	db      *gorm.DB
	catalog *Catalog
	opts    Options
	matcher *Matcher

	envDAO       *db.EnvironmentDAO
	regionDAO    *db.RegionDAO
	projectDAO   *db.ProjectDAO
	mappingDAO   *db.MappingDAO
	profileDAO   *db.ProfileDAO
	componentDAO *db.ComponentDAO
	infraDAO     *db.InfrastructureDAO
	configDAO    *db.DeploymentConfigDAO
	instanceDAO  *db.ServiceInstanceDAO
	accessDAO    *db.AccessDAO
}

func NewSeeder(dbConn *gorm.DB, catalog *Catalog, opts Options) *Seeder {
	if opts.Mode == "" {
		opts.Mode = config.SeedModeIfEmpty
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Seeder{
		db:           dbConn,
		catalog:      catalog,
		opts:         opts,
		matcher:      NewMatcher(catalog.MatchRules),
		envDAO:       db.NewEnvironmentDAO(),
		regionDAO:    db.NewRegionDAO(),
		projectDAO:   db.NewProjectDAO(),
		mappingDAO:   db.NewMappingDAO(),
		profileDAO:   db.NewProfileDAO(),
		componentDAO: db.NewComponentDAO(),
		infraDAO:     db.NewInfrastructureDAO(),
		configDAO:    db.NewDeploymentConfigDAO(),
		instanceDAO:  db.NewServiceInstanceDAO(),
		accessDAO:    db.NewAccessDAO(),
	}
}

// Matcher returns the matcher built from the catalog rules.
func (s *Seeder) Matcher() *Matcher {
	return s.matcher
}

// Run seeds according to the configured mode. The whole run is one transaction;
// a returned error means nothing was committed.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	return s.RunMode(ctx, s.opts.Mode)
}

// RunMode is Run with the configured mode replaced by mode.
func (s *Seeder) RunMode(ctx context.Context, mode string) (*Summary, error) {
	if mode == config.SeedModeNever {
		hlog.CtxInfof(ctx, "[Seed] Seeding disabled")
		return &Summary{Skipped: true, Reason: "seed mode is never"}, nil
	}

	var summary *Summary
	seed := func(ctx context.Context) error {
		if mode == config.SeedModeIfEmpty {
			count, err := s.projectDAO.Count(ctx, s.db)
			if err != nil {
				return err
			}
			if count > 0 {
				hlog.CtxInfof(ctx, "[Seed] %d projects present, skipping", count)
				summary = &Summary{Skipped: true, Reason: "data already present"}
				return nil
			}
		}
		sum, err := s.seedAll(ctx)
		summary = sum
		return err
	}

	var err error
	if s.opts.Lock != nil {
		err = s.opts.Lock.Do(ctx, seed)
	} else {
		err = seed(ctx)
	}
	if err != nil {
		return nil, err
	}
	return summary, nil
}

type profileRef struct {
	profile   *model.Profile
	mappingID uint
	env       string
	region    string
}

type projectState struct {
	spec             ProjectSpec
	project          *model.Project
	profiles         []profileRef
	components       []*model.Component
	componentsByName map[string]*model.Component
	hosts            []*model.Infrastructure
	configs          map[pairKey]*model.DeploymentConfig
}

type mappingKey struct {
	projectID uint
	env       string
	region    string
}

// run is the state of one seeding pass.
type run struct {
	seeder   *Seeder
	tx       *gorm.DB
	g        *Rand
	now      time.Time
	envs     map[string]*model.Environment
	regions  map[string]*model.Region
	mappings map[mappingKey]*model.ProjectEnvironmentMapping
	summary  *Summary

	// preferType draws a component's preferred infra type.
	preferType func(g *Rand) string
}

func (s *Seeder) seedAll(ctx context.Context) (*Summary, error) {
	start := time.Now()
	r := &run{
		seeder:     s,
		g:          NewRand(s.opts.RandomSeed),
		now:        s.opts.Now(),
		envs:       make(map[string]*model.Environment),
		regions:    make(map[string]*model.Region),
		mappings:   make(map[mappingKey]*model.ProjectEnvironmentMapping),
		summary:    &Summary{},
		preferType: preferredInfraType,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r.tx = tx
		return r.execute(ctx)
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "[Seed] Run aborted: %v", err)
		return nil, err
	}
	hlog.CtxInfof(ctx, "[Seed] Seeded %d projects, %d hosts, %d configs, %d instances in %s",
		r.summary.Projects, r.summary.Infrastructure, r.summary.DeploymentConfigs,
		r.summary.ServiceInstances, time.Since(start).Round(time.Millisecond))
	return r.summary, nil
}

func (r *run) execute(ctx context.Context) error {
	if err := db.WipeAll(ctx, r.tx); err != nil {
		return err
	}
	if err := r.seedMasters(ctx); err != nil {
		return err
	}

	states := make([]*projectState, 0, len(r.seeder.catalog.Projects))
	for _, spec := range r.seeder.catalog.Projects {
		ps, err := r.createProject(ctx, spec)
		if err != nil {
			return err
		}
		if err := r.loadComponents(ctx, ps); err != nil {
			return err
		}
		if err := r.loadInfrastructure(ctx, ps); err != nil {
			return err
		}
		states = append(states, ps)
	}

	if r.seeder.opts.OpsData {
		for _, ps := range states {
			if err := r.generateDeploymentConfigs(ctx, ps); err != nil {
				return fmt.Errorf("deployment configs for %s: %w", ps.spec.Name, err)
			}
			if err := r.generateServiceInstances(ctx, ps); err != nil {
				return fmt.Errorf("service instances for %s: %w", ps.spec.Name, err)
			}
		}
	} else {
		hlog.CtxInfof(ctx, "[Seed] Ops data disabled, skipping deployment configs and service instances")
	}

	return r.seedAccessRules(ctx)
}

func (r *run) seedMasters(ctx context.Context) error {
	for _, spec := range r.seeder.catalog.Environments {
		env := &model.Environment{Code: spec.Code, Description: spec.Description}
		if err := r.seeder.envDAO.Create(ctx, r.tx, env); err != nil {
			return fmt.Errorf("create environment %s: %w", spec.Code, err)
		}
		r.envs[env.Code] = env
	}
	for _, spec := range r.seeder.catalog.Regions {
		region := &model.Region{Code: spec.Code, Description: spec.Description}
		if err := r.seeder.regionDAO.Create(ctx, r.tx, region); err != nil {
			return fmt.Errorf("create region %s: %w", spec.Code, err)
		}
		r.regions[region.Code] = region
	}
	r.summary.Environments = len(r.envs)
	r.summary.Regions = len(r.regions)
	return nil
}

func (r *run) createProject(ctx context.Context, spec ProjectSpec) (*projectState, error) {
	project := &model.Project{
		Name:        spec.Name,
		Slug:        spec.Slug,
		Type:        spec.Type,
		Description: spec.Description,
		IsActive:    true,
	}
	if err := r.seeder.projectDAO.Create(ctx, r.tx, project); err != nil {
		return nil, fmt.Errorf("create project %s: %w", spec.Name, err)
	}
	r.summary.Projects++

	ps := &projectState{
		spec:             spec,
		project:          project,
		componentsByName: make(map[string]*model.Component),
		configs:          make(map[pairKey]*model.DeploymentConfig),
	}
	for _, p := range spec.Profiles {
		mapping, err := r.mappingFor(ctx, project, p)
		if err != nil {
			return nil, err
		}
		profile := &model.Profile{
			MappingID:   mapping.ID,
			Code:        p.Code,
			Description: p.Description,
			Status:      constants.StatusActive,
		}
		if err := r.seeder.profileDAO.Create(ctx, r.tx, profile); err != nil {
			return nil, fmt.Errorf("create profile %s: %w", p.Code, err)
		}
		ps.profiles = append(ps.profiles, profileRef{
			profile:   profile,
			mappingID: mapping.ID,
			env:       p.Env,
			region:    p.Region,
		})
	}
	r.summary.Profiles += len(ps.profiles)
	return ps, nil
}

// mappingFor finds or creates the project mapping of a profile's environment and region.
func (r *run) mappingFor(ctx context.Context, project *model.Project, p ProfileSpec) (*model.ProjectEnvironmentMapping, error) {
	env, ok := r.envs[p.Env]
	if !ok {
		return nil, fmt.Errorf("project %q profile %q: %w %q", project.Name, p.Code, ErrUnknownEnvironment, p.Env)
	}
	region, ok := r.regions[p.Region]
	if !ok {
		return nil, fmt.Errorf("project %q profile %q: %w %q", project.Name, p.Code, ErrUnknownRegion, p.Region)
	}

	key := mappingKey{projectID: project.ID, env: p.Env, region: p.Region}
	if m, ok := r.mappings[key]; ok {
		return m, nil
	}
	m, err := r.seeder.mappingDAO.Find(ctx, r.tx, project.ID, env.ID, region.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if m == nil {
		m = &model.ProjectEnvironmentMapping{ProjectID: project.ID, EnvironmentID: env.ID, RegionID: region.ID}
		if err := r.seeder.mappingDAO.Create(ctx, r.tx, m); err != nil {
			return nil, fmt.Errorf("create mapping %s/%s: %w", p.Env, p.Region, err)
		}
		r.summary.Mappings++
	}
	r.mappings[key] = m
	return m, nil
}

func (r *run) loadComponents(ctx context.Context, ps *projectState) error {
	specs, ok := r.seeder.catalog.Components[ps.spec.Type]
	if !ok {
		return fmt.Errorf("project %q: %w %q", ps.spec.Name, ErrUnknownProjectType, ps.spec.Type)
	}
	comps := make([]*model.Component, 0, len(specs))
	for _, spec := range specs {
		comps = append(comps, &model.Component{
			ProjectID:        ps.project.ID,
			Name:             spec.Name,
			Description:      spec.Description,
			Module:           spec.Module,
			DefaultInfraType: Pick(r.g, constants.InfraTypes),
			DefaultPort:      r.g.IntRange(constants.MinComponentPort, constants.MaxComponentPort),
		})
	}
	if err := r.seeder.componentDAO.BatchCreate(ctx, r.tx, comps); err != nil {
		return fmt.Errorf("create components of %s: %w", ps.spec.Name, err)
	}
	ps.components = comps
	for _, c := range comps {
		ps.componentsByName[c.Name] = c
	}
	r.summary.Components += len(comps)
	return nil
}

func (r *run) loadInfrastructure(ctx context.Context, ps *projectState) error {
	var hosts []*model.Infrastructure
	for _, pr := range ps.profiles {
		hosts = append(hosts, generateHosts(r.g, hostPlan{
			projectSlug: ps.project.Slug,
			profile:     pr.profile,
			mappingID:   pr.mappingID,
			env:         pr.env,
			region:      pr.region,
			datacenters: r.seeder.catalog.datacentersFor(pr.region),
		}, r.now)...)
	}
	if err := r.seeder.infraDAO.BatchCreate(ctx, r.tx, hosts); err != nil {
		return fmt.Errorf("create infrastructure of %s: %w", ps.spec.Name, err)
	}

	var metrics []*model.InfraMetric
	for _, h := range hosts {
		for i := range h.Metrics {
			h.Metrics[i].InfrastructureID = h.ID
			metrics = append(metrics, &h.Metrics[i])
		}
	}
	if err := r.seeder.infraDAO.BatchCreateMetrics(ctx, r.tx, metrics); err != nil {
		return fmt.Errorf("create metrics of %s: %w", ps.spec.Name, err)
	}

	ps.hosts = hosts
	r.summary.Infrastructure += len(hosts)
	r.summary.Metrics += len(metrics)
	return nil
}

func (r *run) seedAccessRules(ctx context.Context) error {
	var rows []*model.AccessPermission
	for _, rule := range r.seeder.catalog.AccessRules {
		for _, env := range r.seeder.catalog.Environments {
			rows = append(rows, &model.AccessPermission{
				Role:            rule.Role,
				Function:        rule.Function,
				EnvironmentCode: env.Code,
				Allowed:         slices.Contains(rule.Allow, env.Code),
			})
		}
	}
	if err := r.seeder.accessDAO.BatchCreate(ctx, r.tx, rows); err != nil {
		return fmt.Errorf("create access rules: %w", err)
	}
	r.summary.AccessRules = len(rows)
	return nil
}

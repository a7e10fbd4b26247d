package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/yi-nology/opsboard/biz/dal/db"
	"github.com/yi-nology/opsboard/biz/dal/model"
	"github.com/yi-nology/opsboard/pkg/constants"
	"gorm.io/gorm"
)

func testHost(id, profileID uint, infraType string) *model.Infrastructure {
	return &model.Infrastructure{ID: id, ProfileID: profileID, Type: infraType}
}

func TestHostIndexPlace(t *testing.T) {
	ix := indexHosts([]*model.Infrastructure{
		testHost(1, 10, constants.InfraTypeECS),
		testHost(2, 10, constants.InfraTypeLinux),
		testHost(3, 10, constants.InfraTypeLinux),
		testHost(4, 20, constants.InfraTypeWindows),
		testHost(5, 20, constants.InfraTypeLinux),
	})

	tests := []struct {
		name      string
		profileID uint
		preferred string
		wantType  string
		wantNil   bool
	}{
		{name: "preferred ecs present", profileID: 10, preferred: constants.InfraTypeECS, wantType: constants.InfraTypeECS},
		{name: "preferred linux present", profileID: 10, preferred: constants.InfraTypeLinux, wantType: constants.InfraTypeLinux},
		{name: "dev profile without ecs falls back", profileID: 20, preferred: constants.InfraTypeECS},
		{name: "windows only in dev profile", profileID: 20, preferred: constants.InfraTypeWindows, wantType: constants.InfraTypeWindows},
		{name: "profile without hosts", profileID: 30, preferred: constants.InfraTypeLinux, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewRand(3)
			for i := 0; i < 25; i++ {
				host := ix.place(g, tt.profileID, tt.preferred)
				if tt.wantNil {
					if host != nil {
						t.Fatalf("expected no host, got %d", host.ID)
					}
					return
				}
				if host == nil {
					t.Fatalf("expected a host")
				}
				if host.ProfileID != tt.profileID {
					t.Fatalf("host %d is outside profile %d", host.ID, tt.profileID)
				}
				if tt.wantType != "" && host.Type != tt.wantType {
					t.Fatalf("expected %s host, got %s", tt.wantType, host.Type)
				}
			}
		})
	}
}

func TestPreferredInfraTypeWeights(t *testing.T) {
	g := NewRand(11)
	counts := make(map[string]int)
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[preferredInfraType(g)]++
	}
	want := map[string]float64{
		constants.InfraTypeLinux:   0.7,
		constants.InfraTypeECS:     0.2,
		constants.InfraTypeWindows: 0.1,
	}
	for typ, share := range want {
		got := float64(counts[typ]) / draws
		if got < share-0.02 || got > share+0.02 {
			t.Errorf("%s drawn %.3f of the time, want about %.1f", typ, got, share)
		}
	}
}

// placementFixture is one project with three profiles:
// prod has ecs and linux hosts, qa (DEV tier) has windows and linux, uat has none.
type placementFixture struct {
	conn  *gorm.DB
	state *projectState
	prod  *model.Profile
	qa    *model.Profile
	uat   *model.Profile
	hosts map[uint]*model.Infrastructure
}

func newPlacementFixture(t *testing.T) *placementFixture {
	t.Helper()
	ctx := context.Background()
	conn := db.SetupTestDB(t)
	t.Cleanup(func() { db.CleanupTestDB(t, conn) })

	project, prod := db.CreateTestProject(t, conn, "delta")
	profiles := db.NewProfileDAO()
	qa := &model.Profile{MappingID: prod.MappingID, Code: "deltaqa", Status: constants.StatusActive}
	uat := &model.Profile{MappingID: prod.MappingID, Code: "deltauat", Status: constants.StatusActive}
	for _, p := range []*model.Profile{qa, uat} {
		if err := profiles.Create(ctx, conn, p); err != nil {
			t.Fatalf("create profile %s: %v", p.Code, err)
		}
	}

	ip := "10.1.2.3"
	hosts := []*model.Infrastructure{
		{Type: constants.InfraTypeECS, Name: "delta-deltadev-vm-01", MappingID: prod.MappingID, ProfileID: prod.ID},
		{Type: constants.InfraTypeLinux, Name: "delta-deltadev-vm-02", IPAddress: &ip, MappingID: prod.MappingID, ProfileID: prod.ID},
		{Type: constants.InfraTypeWindows, Name: "delta-deltaqa-vm-01", IPAddress: &ip, MappingID: prod.MappingID, ProfileID: qa.ID},
		{Type: constants.InfraTypeLinux, Name: "delta-deltaqa-vm-02", IPAddress: &ip, MappingID: prod.MappingID, ProfileID: qa.ID},
	}
	if err := db.NewInfrastructureDAO().BatchCreate(ctx, conn, hosts); err != nil {
		t.Fatalf("create hosts: %v", err)
	}

	state := &projectState{
		project: project,
		profiles: []profileRef{
			{profile: prod, mappingID: prod.MappingID, env: constants.EnvProd, region: constants.RegionGlobal},
			{profile: uat, mappingID: prod.MappingID, env: constants.EnvStaging, region: constants.RegionGlobal},
			{profile: qa, mappingID: prod.MappingID, env: constants.EnvDev, region: constants.RegionGlobal},
		},
		componentsByName: make(map[string]*model.Component),
		hosts:            hosts,
		configs:          make(map[pairKey]*model.DeploymentConfig),
	}
	for _, name := range []string{"order-router", "quote-engine", "risk-gateway", "fix-adapter"} {
		comp := db.CreateTestComponent(t, conn, project.ID, name)
		state.components = append(state.components, comp)
		state.componentsByName[name] = comp
	}

	byID := make(map[uint]*model.Infrastructure, len(hosts))
	for _, h := range hosts {
		byID[h.ID] = h
	}
	return &placementFixture{conn: conn, state: state, prod: prod, qa: qa, uat: uat, hosts: byID}
}

func (f *placementFixture) run(t *testing.T, preferred string) (*run, []model.DeploymentConfig) {
	t.Helper()
	r := &run{
		seeder:     newTestSeeder(t, f.conn, true),
		tx:         f.conn,
		g:          NewRand(42),
		summary:    &Summary{},
		preferType: func(*Rand) string { return preferred },
	}
	if err := r.generateDeploymentConfigs(context.Background(), f.state); err != nil {
		t.Fatalf("generateDeploymentConfigs: %v", err)
	}
	var configs []model.DeploymentConfig
	if err := f.conn.Order("id ASC").Find(&configs).Error; err != nil {
		t.Fatalf("load configs: %v", err)
	}
	return r, configs
}

func TestGenerateDeploymentConfigsPlacement(t *testing.T) {
	tests := []struct {
		name      string
		preferred string
		// wantType per profile code; "" accepts any host of the profile.
		wantType map[string]string
	}{
		{
			name:      "ecs preferred, dev tier falls back",
			preferred: constants.InfraTypeECS,
			wantType:  map[string]string{"deltadev": constants.InfraTypeECS, "deltaqa": ""},
		},
		{
			name:      "windows preferred, prod falls back",
			preferred: constants.InfraTypeWindows,
			wantType:  map[string]string{"deltadev": "", "deltaqa": constants.InfraTypeWindows},
		},
		{
			name:      "linux preferred everywhere",
			preferred: constants.InfraTypeLinux,
			wantType:  map[string]string{"deltadev": constants.InfraTypeLinux, "deltaqa": constants.InfraTypeLinux},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlacementFixture(t)
			r, configs := f.run(t, tt.preferred)

			placed := len(f.state.components) * 2
			if len(configs) != placed || r.summary.DeploymentConfigs != placed {
				t.Fatalf("expected %d configs, got %d rows (summary %d)", placed, len(configs), r.summary.DeploymentConfigs)
			}

			codes := map[uint]string{f.prod.ID: f.prod.Code, f.qa.ID: f.qa.Code, f.uat.ID: f.uat.Code}
			perPair := make(map[[2]uint]int)
			for _, cfg := range configs {
				host := f.hosts[cfg.InfrastructureID]
				if host == nil || cfg.ProfileID == nil {
					t.Fatalf("config %d has no host or profile", cfg.ID)
				}
				if *cfg.ProfileID == f.uat.ID {
					t.Fatalf("profile without hosts got config %d", cfg.ID)
				}
				if host.ProfileID != *cfg.ProfileID {
					t.Fatalf("config %d placed on host of profile %d, want %d", cfg.ID, host.ProfileID, *cfg.ProfileID)
				}
				perPair[[2]uint{cfg.ComponentID, *cfg.ProfileID}]++

				if want := tt.wantType[codes[host.ProfileID]]; want != "" && host.Type != want {
					t.Errorf("config %d in %s on %s host, want %s", cfg.ID, codes[host.ProfileID], host.Type, want)
				}

				params := string(cfg.DeploymentParams)
				if host.Type == constants.InfraTypeECS {
					if !strings.HasPrefix(params, `{"MIN_POD":1,"MAX_POD":5,`) {
						t.Errorf("ecs config %d has params %s", cfg.ID, params)
					}
				} else if params != `{"MAX_MEMORY":"2GB"}` {
					t.Errorf("vm config %d has params %s", cfg.ID, params)
				}
				if cfg.BasePort < deploymentBasePort || cfg.BasePort >= deploymentBasePort+portSpread || !cfg.Enabled {
					t.Errorf("config %d: port %d enabled %v", cfg.ID, cfg.BasePort, cfg.Enabled)
				}
			}

			for _, comp := range f.state.components {
				for _, p := range []*model.Profile{f.prod, f.qa} {
					if n := perPair[[2]uint{comp.ID, p.ID}]; n != 1 {
						t.Errorf("component %s has %d configs in %s, want 1", comp.Name, n, p.Code)
					}
				}
			}
		})
	}
}

func TestPinnedRegionTargets(t *testing.T) {
	ref := func(code, region string) profileRef {
		return profileRef{profile: &model.Profile{Code: code}, region: region}
	}
	profiles := []profileRef{
		ref("globaldev", constants.RegionGlobal),
		ref("apacqa", constants.RegionAPAC),
		ref("apac-uat1", constants.RegionAPAC),
		ref("emeaqa", constants.RegionEMEA),
		ref("globalprod", constants.RegionGlobal),
		ref("namprod", constants.RegionNAM),
	}

	regions := pinnableRegions(profiles)
	if strings.Join(regions, ",") != "APAC,EMEA,NAM" {
		t.Fatalf("unexpected pinnable regions %v", regions)
	}

	tests := []struct {
		region string
		want   []string
	}{
		{constants.RegionAPAC, []string{"globaldev", "apacqa", "apac-uat1", "globalprod"}},
		{constants.RegionEMEA, []string{"globaldev", "emeaqa", "globalprod"}},
		{constants.RegionNAM, []string{"globaldev", "globalprod", "namprod"}},
	}
	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			var got []string
			for _, pr := range profilesInRegion(profiles, tt.region) {
				got = append(got, pr.profile.Code)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("profilesInRegion(%s) = %v, want %v", tt.region, got, tt.want)
			}
		})
	}

	t.Run("only global profiles", func(t *testing.T) {
		globals := []profileRef{ref("globaldev", constants.RegionGlobal), ref("globalprod", constants.RegionGlobal)}
		if got := pinnableRegions(globals); len(got) != 0 {
			t.Fatalf("GLOBAL must never be pinned, got %v", got)
		}
	})
}

package db

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"gorm.io/datatypes"
)

func TestDeploymentConfigDAO_UniquePair(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	ctx := context.Background()
	dao := NewDeploymentConfigDAO()

	project, profile := CreateTestProject(t, db, "alpha")
	infra := CreateTestInfrastructure(t, db, profile, "alpha-alphadev-vm-01")
	comp := CreateTestComponent(t, db, project.ID, "order-router")

	cfg := &model.DeploymentConfig{
		ComponentID:      comp.ID,
		InfrastructureID: infra.ID,
		BasePort:         8042,
		Enabled:          true,
		DeploymentParams: []byte(`{"MAX_MEMORY":"2GB"}`),
	}
	if err := dao.Create(ctx, db, cfg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if cfg.RowVersion != 1 {
		t.Fatalf("expected row version 1, got %d", cfg.RowVersion)
	}

	dup := &model.DeploymentConfig{ComponentID: comp.ID, InfrastructureID: infra.ID, BasePort: 8050}
	if err := dao.Create(ctx, db, dup); err == nil {
		t.Fatal("Expected error for duplicate (component, infrastructure) pair")
	}

	found, err := dao.FindByPair(ctx, db, comp.ID, infra.ID)
	if err != nil {
		t.Fatalf("FindByPair: %v", err)
	}
	if string(found.DeploymentParams) != `{"MAX_MEMORY":"2GB"}` {
		t.Fatalf("unexpected params %s", found.DeploymentParams)
	}

	list, err := dao.List(ctx, db, DeploymentConfigFilter{ProjectID: project.ID})
	if err != nil || len(list) != 1 {
		t.Fatalf("expected 1 config for project, got %d (%v)", len(list), err)
	}
}

func TestDeploymentConfigDAO_SetEnabledVersioned(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	ctx := context.Background()
	dao := NewDeploymentConfigDAO()

	project, profile := CreateTestProject(t, db, "alpha")
	infra := CreateTestInfrastructure(t, db, profile, "alpha-alphadev-vm-01")
	comp := CreateTestComponent(t, db, project.ID, "order-router")
	cfg := CreateTestDeploymentConfig(t, db, comp.ID, infra.ID)

	if err := dao.SetEnabled(ctx, db, cfg.ID, 1, false); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	if err := dao.SetEnabled(ctx, db, cfg.ID, 1, true); !errors.Is(err, ErrStaleVersion) {
		t.Fatalf("expected ErrStaleVersion, got %v", err)
	}

	reloaded, err := dao.GetByID(ctx, db, cfg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.Enabled || reloaded.RowVersion != 2 {
		t.Fatalf("expected disabled at version 2, got %v/%d", reloaded.Enabled, reloaded.RowVersion)
	}
	if reloaded.Component == nil || reloaded.Component.Name != "order-router" {
		t.Fatalf("expected component preloaded")
	}
}

func TestServiceInstanceDAO_Lifecycle(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	ctx := context.Background()
	dao := NewServiceInstanceDAO()

	project, profile := CreateTestProject(t, db, "alpha")
	infra := CreateTestInfrastructure(t, db, profile, "alpha-alphadev-vm-01")
	comp := CreateTestComponent(t, db, project.ID, "order-router")
	cfg := CreateTestDeploymentConfig(t, db, comp.ID, infra.ID)

	inst := &model.ServiceInstance{
		InstanceID:         "srv-alphadev-0a1b2c3d",
		DeploymentConfigID: cfg.ID,
		ServiceName:        "order-router",
		MachineName:        infra.Name,
		InfraType:          infra.Type,
		Profile:            profile.Code,
		Port:               8081,
		Version:            "1.2.3",
		UptimeSeconds:      3600,
		Status:             "running",
	}
	if err := dao.Create(ctx, db, inst); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := dao.Create(ctx, db, &model.ServiceInstance{InstanceID: "srv-x"}); err == nil {
		t.Fatal("Expected error without deployment config")
	}

	list, err := dao.List(ctx, db, ServiceInstanceFilter{ProjectID: project.ID, Status: "running"})
	if err != nil || len(list) != 1 {
		t.Fatalf("expected 1 running instance, got %d (%v)", len(list), err)
	}

	if err := dao.UpdateStatus(ctx, db, inst.InstanceID, 1, "degraded"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := dao.UpdateStatus(ctx, db, inst.InstanceID, 1, "running"); !errors.Is(err, ErrStaleVersion) {
		t.Fatalf("expected ErrStaleVersion, got %v", err)
	}
	got, err := dao.GetByInstanceID(ctx, db, inst.InstanceID)
	if err != nil || got.Status != "degraded" {
		t.Fatalf("expected degraded, got %+v (%v)", got, err)
	}

	counts, err := NewProjectDAO().Counts(ctx, db, project.ID)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts.Profiles != 1 || counts.Components != 1 || counts.Infrastructure != 1 ||
		counts.Deployments != 1 || counts.Instances != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
}

func TestInfrastructureDAO_ListFilters(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	ctx := context.Background()
	dao := NewInfrastructureDAO()

	alpha, alphaProfile := CreateTestProject(t, db, "alpha")
	_, betaProfile := CreateTestProject(t, db, "beta")
	host := CreateTestInfrastructure(t, db, alphaProfile, "alpha-alphadev-vm-01")
	CreateTestInfrastructure(t, db, betaProfile, "beta-betadev-vm-01")

	metrics := []*model.InfraMetric{
		{InfrastructureID: host.ID, Name: "cpu_max", Value: 4, Unit: "vCPU"},
		{InfrastructureID: host.ID, Name: "cpu_used", Value: 1.5, Unit: "vCPU"},
	}
	if err := dao.BatchCreateMetrics(ctx, db, metrics); err != nil {
		t.Fatalf("BatchCreateMetrics: %v", err)
	}

	list, err := dao.List(ctx, db, InfrastructureFilter{ProjectID: alpha.ID})
	if err != nil || len(list) != 1 || list[0].Name != "alpha-alphadev-vm-01" {
		t.Fatalf("unexpected project filter result %+v (%v)", list, err)
	}
	list, err = dao.List(ctx, db, InfrastructureFilter{Type: "ecs"})
	if err != nil || len(list) != 0 {
		t.Fatalf("expected no ecs hosts, got %d (%v)", len(list), err)
	}

	got, err := dao.GetByID(ctx, db, host.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Metrics) != 2 || !got.Metrics[0].IsLimit() {
		t.Fatalf("expected 2 metrics with a limit first, got %+v", got.Metrics)
	}
}

func TestAccessDAO_Find(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	ctx := context.Background()
	dao := NewAccessDAO()

	rules := []*model.AccessPermission{
		{Role: "OPERATOR", Function: "RESTART", EnvironmentCode: "PROD", Allowed: true},
		{Role: "VIEWER", Function: "RESTART", EnvironmentCode: "PROD", Allowed: false},
	}
	if err := dao.BatchCreate(ctx, db, rules); err != nil {
		t.Fatalf("BatchCreate: %v", err)
	}
	rule, err := dao.Find(ctx, db, "OPERATOR", "RESTART", "PROD")
	if err != nil || !rule.Allowed {
		t.Fatalf("expected allowed rule, got %+v (%v)", rule, err)
	}
	list, err := dao.List(ctx, db, "VIEWER")
	if err != nil || len(list) != 1 || list[0].Allowed {
		t.Fatalf("unexpected viewer rules %+v (%v)", list, err)
	}
}

func TestDeploymentParamsKeepKeyOrder(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	ctx := context.Background()

	columns, err := db.Migrator().ColumnTypes(&model.DeploymentConfig{})
	if err != nil {
		t.Fatalf("ColumnTypes: %v", err)
	}
	for _, col := range columns {
		if col.Name() == "deployment_params" && !strings.EqualFold(col.DatabaseTypeName(), "blob") {
			t.Fatalf("expected blob column for params, got %s", col.DatabaseTypeName())
		}
	}

	project, profile := CreateTestProject(t, db, "beta")
	infra := CreateTestInfrastructure(t, db, profile, "beta-betadev-vm-01")
	comp := CreateTestComponent(t, db, project.ID, "quote-engine")

	// MIN_POD before MAX_POD is not alphabetical, so any re-encoding would show.
	params := `{"MIN_POD":1,"MAX_POD":5,"REQ_MEMORY":"1GB","LIMIT_MEMORY":"2GB","REQ_CPU":"100m","LIMIT_CPU":"250m"}`
	cfg := &model.DeploymentConfig{
		ComponentID:      comp.ID,
		InfrastructureID: infra.ID,
		BasePort:         8001,
		Enabled:          true,
		DeploymentParams: []byte(params),
	}
	if err := NewDeploymentConfigDAO().Create(ctx, db, cfg); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := NewDeploymentConfigDAO().GetByID(ctx, db, cfg.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if string(found.DeploymentParams) != params {
		t.Fatalf("params re-encoded: %s", found.DeploymentParams)
	}
}

func TestMetricDateRoundTrip(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	ctx := context.Background()
	dao := NewInfrastructureDAO()

	_, profile := CreateTestProject(t, db, "gamma")
	infra := CreateTestInfrastructure(t, db, profile, "gamma-gammadev-vm-01")

	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	day := datatypes.Date(at)
	metrics := []*model.InfraMetric{
		{InfrastructureID: infra.ID, Name: "cpu_max", Value: 4, Unit: "vCPU"},
		{InfrastructureID: infra.ID, Name: "cpu_used", Value: 1.5, Unit: "vCPU", MetricDate: &day, SampledAt: &at},
	}
	if err := dao.BatchCreateMetrics(ctx, db, metrics); err != nil {
		t.Fatalf("BatchCreateMetrics: %v", err)
	}

	host, err := dao.GetByID(ctx, db, infra.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(host.Metrics) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(host.Metrics))
	}
	for _, m := range host.Metrics {
		switch m.Name {
		case "cpu_max":
			if !m.IsLimit() {
				t.Errorf("cpu_max should be a limit")
			}
		case "cpu_used":
			if m.IsLimit() {
				t.Fatalf("cpu_used should carry a date")
			}
			if d := time.Time(*m.MetricDate); d.Year() != 2026 || d.Month() != time.March || d.Day() != 14 {
				t.Errorf("unexpected metric date %v", d)
			}
		}
	}
}

package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/yi-nology/opsboard/biz/dal/model"
)

// parentsOf lists, per table, the tables its foreign keys point at.
var parentsOf = map[string][]string{
	"*model.ServiceInstance":           {"*model.DeploymentConfig"},
	"*model.DeploymentConfig":          {"*model.Component", "*model.Infrastructure", "*model.Profile"},
	"*model.Component":                 {"*model.Project"},
	"*model.InfraMetric":               {"*model.Infrastructure"},
	"*model.Infrastructure":            {"*model.ProjectEnvironmentMapping", "*model.Profile"},
	"*model.Profile":                   {"*model.ProjectEnvironmentMapping"},
	"*model.ProjectEnvironmentMapping": {"*model.Project", "*model.Environment", "*model.Region"},
}

func TestWipeOrderDeletesChildrenFirst(t *testing.T) {
	position := make(map[string]int, len(WipeOrder))
	for i, m := range WipeOrder {
		position[fmt.Sprintf("%T", m)] = i
	}
	if len(position) != len(model.All()) {
		t.Fatalf("wipe order covers %d tables, models define %d", len(position), len(model.All()))
	}
	for child, parents := range parentsOf {
		for _, parent := range parents {
			if position[child] >= position[parent] {
				t.Errorf("%s must be wiped before %s", child, parent)
			}
		}
	}
}

func TestWipeAllEmptiesTables(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	ctx := context.Background()

	project, profile := CreateTestProject(t, db, "alpha")
	infra := CreateTestInfrastructure(t, db, profile, "alpha-alphadev-vm-01")
	comp := CreateTestComponent(t, db, project.ID, "order-router")
	cfg := CreateTestDeploymentConfig(t, db, comp.ID, infra.ID)
	inst := &model.ServiceInstance{InstanceID: "srv-1", DeploymentConfigID: cfg.ID}
	if err := NewServiceInstanceDAO().Create(ctx, db, inst); err != nil {
		t.Fatalf("create instance: %v", err)
	}

	if err := WipeAll(ctx, db); err != nil {
		t.Fatalf("WipeAll: %v", err)
	}
	for _, m := range WipeOrder {
		var count int64
		if err := db.Model(m).Count(&count).Error; err != nil {
			t.Fatalf("count %T: %v", m, err)
		}
		if count != 0 {
			t.Errorf("expected %T to be empty, found %d rows", m, count)
		}
	}
}

package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/yi-nology/opsboard/biz/dal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an isolated in-memory SQLite database for testing.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Reduce log noise in tests
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

// CleanupTestDB closes the database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close DB: %v", err)
	}
}

// CreateTestProject creates a project with one DEV/GLOBAL mapping and profile.
func CreateTestProject(t *testing.T, db *gorm.DB, name string) (*model.Project, *model.Profile) {
	t.Helper()
	ctx := context.Background()

	env := &model.Environment{Code: "DEV-" + name, Description: "Test environment"}
	if err := NewEnvironmentDAO().Create(ctx, db, env); err != nil {
		t.Fatalf("Failed to create test environment: %v", err)
	}
	region := &model.Region{Code: "GLOBAL-" + name, Description: "Test region"}
	if err := NewRegionDAO().Create(ctx, db, region); err != nil {
		t.Fatalf("Failed to create test region: %v", err)
	}
	project := &model.Project{Name: name, Slug: name, Type: "test", IsActive: true}
	if err := NewProjectDAO().Create(ctx, db, project); err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	mapping := &model.ProjectEnvironmentMapping{ProjectID: project.ID, EnvironmentID: env.ID, RegionID: region.ID}
	if err := NewMappingDAO().Create(ctx, db, mapping); err != nil {
		t.Fatalf("Failed to create test mapping: %v", err)
	}
	profile := &model.Profile{MappingID: mapping.ID, Code: name + "dev", Status: "active"}
	if err := NewProfileDAO().Create(ctx, db, profile); err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}
	return project, profile
}

// CreateTestInfrastructure creates a linux host under a profile.
func CreateTestInfrastructure(t *testing.T, db *gorm.DB, profile *model.Profile, name string) *model.Infrastructure {
	t.Helper()
	ip := "10.0.0.1"
	infra := &model.Infrastructure{
		Type:            "linux",
		Name:            name,
		Hostname:        name + ".test.local",
		IPAddress:       &ip,
		EnvironmentCode: "DEV",
		RegionCode:      "GLOBAL",
		Status:          "active",
		MappingID:       profile.MappingID,
		ProfileID:       profile.ID,
	}
	if err := NewInfrastructureDAO().BatchCreate(context.Background(), db, []*model.Infrastructure{infra}); err != nil {
		t.Fatalf("Failed to create test infrastructure: %v", err)
	}
	return infra
}

// CreateTestComponent creates a component owned by a project.
func CreateTestComponent(t *testing.T, db *gorm.DB, projectID uint, name string) *model.Component {
	t.Helper()
	comp := &model.Component{
		ProjectID:        projectID,
		Name:             name,
		Description:      "Test component",
		Module:           "core",
		DefaultInfraType: "linux",
		DefaultPort:      7100,
	}
	if err := NewComponentDAO().Create(context.Background(), db, comp); err != nil {
		t.Fatalf("Failed to create test component: %v", err)
	}
	return comp
}

// CreateTestDeploymentConfig binds a component to a host.
func CreateTestDeploymentConfig(t *testing.T, db *gorm.DB, componentID, infraID uint) *model.DeploymentConfig {
	t.Helper()
	cfg := &model.DeploymentConfig{
		ComponentID:      componentID,
		InfrastructureID: infraID,
		BasePort:         8010,
		Enabled:          true,
	}
	if err := NewDeploymentConfigDAO().Create(context.Background(), db, cfg); err != nil {
		t.Fatalf("Failed to create test deployment config: %v", err)
	}
	return cfg
}

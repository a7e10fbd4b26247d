package db

import (
	"context"
	"errors"
	"testing"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"gorm.io/gorm"
)

func TestEnvironmentDAO_Create(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewEnvironmentDAO()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		env := &model.Environment{Code: "DEV", Description: "Development"}
		if err := dao.Create(ctx, db, env); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if env.ID == 0 {
			t.Error("Expected ID to be set after creation")
		}
		found, err := dao.GetByCode(ctx, db, "DEV")
		if err != nil {
			t.Fatalf("GetByCode failed: %v", err)
		}
		if found.Description != "Development" {
			t.Errorf("Expected description 'Development', got '%s'", found.Description)
		}
	})

	t.Run("NilEntity", func(t *testing.T) {
		err := dao.Create(ctx, db, nil)
		if err == nil || err.Error() != "environment must not be nil" {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("EmptyCode", func(t *testing.T) {
		if err := dao.Create(ctx, db, &model.Environment{}); err == nil {
			t.Error("Expected error for empty code")
		}
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		if err := dao.Create(ctx, db, &model.Environment{Code: "DEV"}); err == nil {
			t.Error("Expected error for duplicate code")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := dao.GetByCode(ctx, db, "NOPE")
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("Expected ErrRecordNotFound, got %v", err)
		}
	})
}

func TestRegionDAO_List(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewRegionDAO()
	ctx := context.Background()

	for _, code := range []string{"GLOBAL", "APAC", "EMEA"} {
		if err := dao.Create(ctx, db, &model.Region{Code: code}); err != nil {
			t.Fatalf("Create %s: %v", code, err)
		}
	}
	regions, err := dao.List(ctx, db)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(regions) != 3 || regions[0].Code != "GLOBAL" || regions[2].Code != "EMEA" {
		t.Fatalf("unexpected regions %+v", regions)
	}
}

func TestMappingDAO_UniqueTriple(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	ctx := context.Background()

	project, profile := CreateTestProject(t, db, "alpha")
	var mapping model.ProjectEnvironmentMapping
	if err := db.First(&mapping, profile.MappingID).Error; err != nil {
		t.Fatalf("load mapping: %v", err)
	}

	dup := &model.ProjectEnvironmentMapping{
		ProjectID:     project.ID,
		EnvironmentID: mapping.EnvironmentID,
		RegionID:      mapping.RegionID,
	}
	if err := NewMappingDAO().Create(ctx, db, dup); err == nil {
		t.Fatal("Expected error for duplicate mapping")
	}

	found, err := NewMappingDAO().Find(ctx, db, project.ID, mapping.EnvironmentID, mapping.RegionID)
	if err != nil || found.ID != mapping.ID {
		t.Fatalf("Find returned %v / %v", found, err)
	}

	count, err := NewMappingDAO().CountByCodes(ctx, db, "DEV-alpha", "GLOBAL-alpha")
	if err != nil || count != 1 {
		t.Fatalf("expected 1 mapping, got %d (%v)", count, err)
	}
}

func TestProfileDAO_ListByProject(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	ctx := context.Background()

	alpha, _ := CreateTestProject(t, db, "alpha")
	CreateTestProject(t, db, "beta")

	profiles, err := NewProfileDAO().ListByProject(ctx, db, alpha.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Code != "alphadev" {
		t.Fatalf("unexpected profiles %+v", profiles)
	}

	if _, err := NewProfileDAO().GetByCode(ctx, db, alpha.ID, "betadev"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected betadev to be outside alpha, got %v", err)
	}
}

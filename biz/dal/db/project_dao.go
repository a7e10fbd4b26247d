package db

import (
	"context"
	"errors"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"gorm.io/gorm"
)

// ProjectDAO wraps basic CRUD operations for project entities.
type ProjectDAO struct{}

func NewProjectDAO() *ProjectDAO { return &ProjectDAO{} }

// Create persists a new project.
func (dao *ProjectDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Project) error {
	if entity == nil {
		return errors.New("project must not be nil")
	}
	if entity.Name == "" || entity.Slug == "" {
		return errors.New("project name and slug are required")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// GetByID fetches a project with its mappings, environments, regions and profiles.
func (dao *ProjectDAO) GetByID(ctx context.Context, db *gorm.DB, id uint) (*model.Project, error) {
	var entity model.Project
	if err := db.WithContext(ctx).
		Preload("Mappings", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Mappings.Environment").
		Preload("Mappings.Region").
		Preload("Mappings.Profiles", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns all projects with optional active filter.
func (dao *ProjectDAO) List(ctx context.Context, db *gorm.DB, isActive *bool) ([]model.Project, error) {
	tx := db.WithContext(ctx)
	if isActive != nil {
		tx = tx.Where("is_active = ?", *isActive)
	}
	var entities []model.Project
	if err := tx.Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Count returns the number of projects.
func (dao *ProjectDAO) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Project{}).Count(&count).Error
	return count, err
}

// ProjectCounts summarises what a project owns.
type ProjectCounts struct {
	Profiles       int64
	Components     int64
	Infrastructure int64
	Deployments    int64
	Instances      int64
}

// Counts aggregates child row counts for a project.
func (dao *ProjectDAO) Counts(ctx context.Context, db *gorm.DB, projectID uint) (*ProjectCounts, error) {
	var c ProjectCounts
	tx := db.WithContext(ctx)

	if err := tx.Model(&model.Profile{}).
		Joins("JOIN project_environment_mapping m ON m.id = profile.mapping_id").
		Where("m.project_id = ?", projectID).
		Count(&c.Profiles).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&model.Component{}).
		Where("project_id = ?", projectID).
		Count(&c.Components).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&model.Infrastructure{}).
		Joins("JOIN project_environment_mapping m ON m.id = infrastructure.mapping_id").
		Where("m.project_id = ?", projectID).
		Count(&c.Infrastructure).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&model.DeploymentConfig{}).
		Joins("JOIN component c ON c.id = deployment_config.component_id").
		Where("c.project_id = ?", projectID).
		Count(&c.Deployments).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&model.ServiceInstance{}).
		Joins("JOIN deployment_config d ON d.id = service_instance.deployment_config_id").
		Joins("JOIN component c ON c.id = d.component_id").
		Where("c.project_id = ?", projectID).
		Count(&c.Instances).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

package db

import (
	"context"
	"errors"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"gorm.io/gorm"
)

// MappingDAO wraps CRUD operations for project environment mappings.
type MappingDAO struct{}

func NewMappingDAO() *MappingDAO { return &MappingDAO{} }

// Create persists a new mapping.
func (dao *MappingDAO) Create(ctx context.Context, db *gorm.DB, entity *model.ProjectEnvironmentMapping) error {
	if entity == nil {
		return errors.New("mapping must not be nil")
	}
	if entity.ProjectID == 0 || entity.EnvironmentID == 0 || entity.RegionID == 0 {
		return errors.New("project_id, environment_id and region_id are required")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// Find fetches the mapping for a (project, environment, region) triple.
func (dao *MappingDAO) Find(ctx context.Context, db *gorm.DB, projectID, environmentID, regionID uint) (*model.ProjectEnvironmentMapping, error) {
	var entity model.ProjectEnvironmentMapping
	if err := db.WithContext(ctx).
		Where("project_id = ? AND environment_id = ? AND region_id = ?", projectID, environmentID, regionID).
		First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// CountByCodes counts mappings across projects for an environment/region code pair.
func (dao *MappingDAO) CountByCodes(ctx context.Context, db *gorm.DB, environmentCode, regionCode string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.ProjectEnvironmentMapping{}).
		Joins("JOIN environment e ON e.id = project_environment_mapping.environment_id").
		Joins("JOIN region r ON r.id = project_environment_mapping.region_id").
		Where("e.code = ? AND r.code = ?", environmentCode, regionCode).
		Count(&count).Error
	return count, err
}

// ProfileDAO wraps CRUD operations for profiles.
type ProfileDAO struct{}

func NewProfileDAO() *ProfileDAO { return &ProfileDAO{} }

// Create persists a new profile.
func (dao *ProfileDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Profile) error {
	if entity == nil {
		return errors.New("profile must not be nil")
	}
	if entity.MappingID == 0 || entity.Code == "" {
		return errors.New("mapping_id and code are required")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// ListByProject returns every profile of a project in creation order.
func (dao *ProfileDAO) ListByProject(ctx context.Context, db *gorm.DB, projectID uint) ([]model.Profile, error) {
	var entities []model.Profile
	if err := db.WithContext(ctx).
		Joins("JOIN project_environment_mapping m ON m.id = profile.mapping_id").
		Where("m.project_id = ?", projectID).
		Order("profile.id ASC").
		Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// GetByCode fetches a profile by code within a project.
func (dao *ProfileDAO) GetByCode(ctx context.Context, db *gorm.DB, projectID uint, code string) (*model.Profile, error) {
	var entity model.Profile
	if err := db.WithContext(ctx).
		Joins("JOIN project_environment_mapping m ON m.id = profile.mapping_id").
		Where("m.project_id = ? AND profile.code = ?", projectID, code).
		First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

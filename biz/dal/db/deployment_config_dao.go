package db

import (
	"context"
	"errors"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"gorm.io/gorm"
)

// ErrStaleVersion is returned when an update loses an optimistic-lock race.
var ErrStaleVersion = errors.New("row was modified concurrently")

// DeploymentConfigFilter narrows config listings. Zero values match everything.
type DeploymentConfigFilter struct {
	ProjectID        uint
	ComponentID      uint
	InfrastructureID uint
}

// DeploymentConfigDAO wraps CRUD operations for deployment configs.
type DeploymentConfigDAO struct{}

func NewDeploymentConfigDAO() *DeploymentConfigDAO { return &DeploymentConfigDAO{} }

// Create persists a new deployment config.
func (dao *DeploymentConfigDAO) Create(ctx context.Context, db *gorm.DB, entity *model.DeploymentConfig) error {
	if entity == nil {
		return errors.New("deployment config must not be nil")
	}
	if entity.ComponentID == 0 || entity.InfrastructureID == 0 {
		return errors.New("component_id and infrastructure_id are required")
	}
	if entity.RowVersion == 0 {
		entity.RowVersion = 1
	}
	return db.WithContext(ctx).Create(entity).Error
}

// BatchCreate inserts configs in batches.
func (dao *DeploymentConfigDAO) BatchCreate(ctx context.Context, db *gorm.DB, entities []*model.DeploymentConfig) error {
	if len(entities) == 0 {
		return nil
	}
	for _, e := range entities {
		if e.ComponentID == 0 || e.InfrastructureID == 0 {
			return errors.New("component_id and infrastructure_id are required")
		}
		if e.RowVersion == 0 {
			e.RowVersion = 1
		}
	}
	return db.WithContext(ctx).
		Omit("Component", "Infrastructure", "Profile").
		CreateInBatches(entities, batchSize).Error
}

// GetByID fetches a config with its component, infrastructure and the host's profile.
func (dao *DeploymentConfigDAO) GetByID(ctx context.Context, db *gorm.DB, id uint) (*model.DeploymentConfig, error) {
	var entity model.DeploymentConfig
	if err := db.WithContext(ctx).
		Preload("Component").
		Preload("Infrastructure").
		Preload("Infrastructure.Profile").
		First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// ExistsByID checks that a config row exists.
func (dao *DeploymentConfigDAO) ExistsByID(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(&model.DeploymentConfig{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByPair fetches the config for a (component, infrastructure) pair.
func (dao *DeploymentConfigDAO) FindByPair(ctx context.Context, db *gorm.DB, componentID, infrastructureID uint) (*model.DeploymentConfig, error) {
	var entity model.DeploymentConfig
	if err := db.WithContext(ctx).
		Where("component_id = ? AND infrastructure_id = ?", componentID, infrastructureID).
		First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns configs matching the filter ordered by id.
func (dao *DeploymentConfigDAO) List(ctx context.Context, db *gorm.DB, filter DeploymentConfigFilter) ([]model.DeploymentConfig, error) {
	tx := db.WithContext(ctx).Model(&model.DeploymentConfig{})
	if filter.ProjectID != 0 {
		tx = tx.Joins("JOIN component c ON c.id = deployment_config.component_id").
			Where("c.project_id = ?", filter.ProjectID)
	}
	if filter.ComponentID != 0 {
		tx = tx.Where("deployment_config.component_id = ?", filter.ComponentID)
	}
	if filter.InfrastructureID != 0 {
		tx = tx.Where("deployment_config.infrastructure_id = ?", filter.InfrastructureID)
	}
	var entities []model.DeploymentConfig
	if err := tx.Order("deployment_config.id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// SetEnabled toggles a config, guarded by its row version.
func (dao *DeploymentConfigDAO) SetEnabled(ctx context.Context, db *gorm.DB, id uint, rowVersion int64, enabled bool) error {
	result := db.WithContext(ctx).
		Model(&model.DeploymentConfig{}).
		Where("id = ? AND row_version = ?", id, rowVersion).
		Updates(map[string]interface{}{
			"enabled":     enabled,
			"row_version": gorm.Expr("row_version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleVersion
	}
	return nil
}

// Count returns the number of deployment configs.
func (dao *DeploymentConfigDAO) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.DeploymentConfig{}).Count(&count).Error
	return count, err
}

package db

import (
	"context"
	"errors"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"gorm.io/gorm"
)

// ComponentDAO wraps CRUD operations for components.
type ComponentDAO struct{}

func NewComponentDAO() *ComponentDAO { return &ComponentDAO{} }

// Create persists a new component.
func (dao *ComponentDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Component) error {
	if entity == nil {
		return errors.New("component must not be nil")
	}
	if entity.ProjectID == 0 || entity.Name == "" {
		return errors.New("project_id and name are required")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// BatchCreate inserts components in batches.
func (dao *ComponentDAO) BatchCreate(ctx context.Context, db *gorm.DB, entities []*model.Component) error {
	if len(entities) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(entities, batchSize).Error
}

// GetByID fetches a single component.
func (dao *ComponentDAO) GetByID(ctx context.Context, db *gorm.DB, id uint) (*model.Component, error) {
	var entity model.Component
	if err := db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// ListByProject returns a project's components; projectID 0 lists all.
func (dao *ComponentDAO) ListByProject(ctx context.Context, db *gorm.DB, projectID uint) ([]model.Component, error) {
	tx := db.WithContext(ctx)
	if projectID != 0 {
		tx = tx.Where("project_id = ?", projectID)
	}
	var entities []model.Component
	if err := tx.Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// ExistsByName checks if a project already has a component with this name.
func (dao *ComponentDAO) ExistsByName(ctx context.Context, db *gorm.DB, projectID uint, name string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(&model.Component{}).
		Where("project_id = ? AND name = ?", projectID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

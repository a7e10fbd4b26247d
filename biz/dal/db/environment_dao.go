package db

import (
	"context"
	"errors"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"gorm.io/gorm"
)

// EnvironmentDAO wraps basic CRUD operations for environment entities.
type EnvironmentDAO struct{}

func NewEnvironmentDAO() *EnvironmentDAO { return &EnvironmentDAO{} }

// Create persists a new environment entry.
func (dao *EnvironmentDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Environment) error {
	if entity == nil {
		return errors.New("environment must not be nil")
	}
	if entity.Code == "" {
		return errors.New("environment code is required")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// GetByCode fetches a single environment by code.
func (dao *EnvironmentDAO) GetByCode(ctx context.Context, db *gorm.DB, code string) (*model.Environment, error) {
	var entity model.Environment
	if err := db.WithContext(ctx).
		Where("code = ?", code).
		First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns all environments ordered by id.
func (dao *EnvironmentDAO) List(ctx context.Context, db *gorm.DB) ([]model.Environment, error) {
	var entities []model.Environment
	if err := db.WithContext(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Count returns the number of environments.
func (dao *EnvironmentDAO) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Environment{}).Count(&count).Error
	return count, err
}

// RegionDAO wraps basic CRUD operations for region entities.
type RegionDAO struct{}

func NewRegionDAO() *RegionDAO { return &RegionDAO{} }

// Create persists a new region entry.
func (dao *RegionDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Region) error {
	if entity == nil {
		return errors.New("region must not be nil")
	}
	if entity.Code == "" {
		return errors.New("region code is required")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// GetByCode fetches a single region by code.
func (dao *RegionDAO) GetByCode(ctx context.Context, db *gorm.DB, code string) (*model.Region, error) {
	var entity model.Region
	if err := db.WithContext(ctx).
		Where("code = ?", code).
		First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns all regions ordered by id.
func (dao *RegionDAO) List(ctx context.Context, db *gorm.DB) ([]model.Region, error) {
	var entities []model.Region
	if err := db.WithContext(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

package db

import (
	"context"
	"errors"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"gorm.io/gorm"
)

const batchSize = 200

// InfrastructureFilter narrows infrastructure listings. Zero values match everything.
type InfrastructureFilter struct {
	ProjectID       uint
	ProfileID       uint
	EnvironmentCode string
	RegionCode      string
	Type            string
}

// InfrastructureDAO wraps CRUD operations for infrastructure hosts and their metrics.
type InfrastructureDAO struct{}

func NewInfrastructureDAO() *InfrastructureDAO { return &InfrastructureDAO{} }

// BatchCreate inserts hosts in batches; metrics attached to each host are not saved.
func (dao *InfrastructureDAO) BatchCreate(ctx context.Context, db *gorm.DB, entities []*model.Infrastructure) error {
	if len(entities) == 0 {
		return nil
	}
	for _, e := range entities {
		if e.MappingID == 0 || e.ProfileID == 0 || e.Name == "" {
			return errors.New("infrastructure requires mapping_id, profile_id and name")
		}
	}
	return db.WithContext(ctx).
		Omit("Metrics").
		CreateInBatches(entities, batchSize).Error
}

// BatchCreateMetrics inserts metric rows in batches.
func (dao *InfrastructureDAO) BatchCreateMetrics(ctx context.Context, db *gorm.DB, metrics []*model.InfraMetric) error {
	if len(metrics) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(metrics, batchSize).Error
}

// GetByID fetches a host with its metrics.
func (dao *InfrastructureDAO) GetByID(ctx context.Context, db *gorm.DB, id uint) (*model.Infrastructure, error) {
	var entity model.Infrastructure
	if err := db.WithContext(ctx).
		Preload("Metrics", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetWithMapping fetches a host with its project mapping and without metrics.
func (dao *InfrastructureDAO) GetWithMapping(ctx context.Context, db *gorm.DB, id uint) (*model.Infrastructure, error) {
	var entity model.Infrastructure
	if err := db.WithContext(ctx).Preload("Mapping").First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns hosts matching the filter ordered by id.
func (dao *InfrastructureDAO) List(ctx context.Context, db *gorm.DB, filter InfrastructureFilter) ([]model.Infrastructure, error) {
	tx := db.WithContext(ctx).Model(&model.Infrastructure{})
	if filter.ProjectID != 0 {
		tx = tx.Joins("JOIN project_environment_mapping m ON m.id = infrastructure.mapping_id").
			Where("m.project_id = ?", filter.ProjectID)
	}
	if filter.ProfileID != 0 {
		tx = tx.Where("infrastructure.profile_id = ?", filter.ProfileID)
	}
	if filter.EnvironmentCode != "" {
		tx = tx.Where("infrastructure.environment_code = ?", filter.EnvironmentCode)
	}
	if filter.RegionCode != "" {
		tx = tx.Where("infrastructure.region_code = ?", filter.RegionCode)
	}
	if filter.Type != "" {
		tx = tx.Where("infrastructure.type = ?", filter.Type)
	}

	var entities []model.Infrastructure
	if err := tx.Order("infrastructure.id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

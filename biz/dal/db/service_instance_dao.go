package db

import (
	"context"
	"errors"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"gorm.io/gorm"
)

// ServiceInstanceFilter narrows instance listings. Zero values match everything.
type ServiceInstanceFilter struct {
	ProjectID          uint
	DeploymentConfigID uint
	Profile            string
	Status             string
	ServiceName        string
}

// ServiceInstanceDAO wraps CRUD operations for service instances.
type ServiceInstanceDAO struct{}

func NewServiceInstanceDAO() *ServiceInstanceDAO { return &ServiceInstanceDAO{} }

// Create persists a new instance. The referenced deployment config must exist.
func (dao *ServiceInstanceDAO) Create(ctx context.Context, db *gorm.DB, entity *model.ServiceInstance) error {
	if entity == nil {
		return errors.New("service instance must not be nil")
	}
	if entity.InstanceID == "" {
		return errors.New("instance_id is required")
	}
	if entity.DeploymentConfigID == 0 {
		return errors.New("deployment_config_id is required")
	}
	if entity.RowVersion == 0 {
		entity.RowVersion = 1
	}
	return db.WithContext(ctx).Create(entity).Error
}

// BatchCreate inserts instances in batches.
func (dao *ServiceInstanceDAO) BatchCreate(ctx context.Context, db *gorm.DB, entities []*model.ServiceInstance) error {
	if len(entities) == 0 {
		return nil
	}
	for _, e := range entities {
		if e.DeploymentConfigID == 0 {
			return errors.New("deployment_config_id is required")
		}
		if e.RowVersion == 0 {
			e.RowVersion = 1
		}
	}
	return db.WithContext(ctx).CreateInBatches(entities, batchSize).Error
}

// GetByInstanceID fetches an instance by its string id.
func (dao *ServiceInstanceDAO) GetByInstanceID(ctx context.Context, db *gorm.DB, instanceID string) (*model.ServiceInstance, error) {
	var entity model.ServiceInstance
	if err := db.WithContext(ctx).
		Where("instance_id = ?", instanceID).
		First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns instances matching the filter ordered by id.
func (dao *ServiceInstanceDAO) List(ctx context.Context, db *gorm.DB, filter ServiceInstanceFilter) ([]model.ServiceInstance, error) {
	tx := db.WithContext(ctx).Model(&model.ServiceInstance{})
	if filter.ProjectID != 0 {
		tx = tx.Joins("JOIN deployment_config d ON d.id = service_instance.deployment_config_id").
			Joins("JOIN component c ON c.id = d.component_id").
			Where("c.project_id = ?", filter.ProjectID)
	}
	if filter.DeploymentConfigID != 0 {
		tx = tx.Where("service_instance.deployment_config_id = ?", filter.DeploymentConfigID)
	}
	if filter.Profile != "" {
		tx = tx.Where("service_instance.profile = ?", filter.Profile)
	}
	if filter.Status != "" {
		tx = tx.Where("service_instance.status = ?", filter.Status)
	}
	if filter.ServiceName != "" {
		tx = tx.Where("service_instance.service_name = ?", filter.ServiceName)
	}
	var entities []model.ServiceInstance
	if err := tx.Order("service_instance.id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// UpdateStatus changes an instance status, guarded by its row version.
func (dao *ServiceInstanceDAO) UpdateStatus(ctx context.Context, db *gorm.DB, instanceID string, rowVersion int64, status string) error {
	result := db.WithContext(ctx).
		Model(&model.ServiceInstance{}).
		Where("instance_id = ? AND row_version = ?", instanceID, rowVersion).
		Updates(map[string]interface{}{
			"status":      status,
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

// Count returns the number of service instances.
func (dao *ServiceInstanceDAO) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.ServiceInstance{}).Count(&count).Error
	return count, err
}

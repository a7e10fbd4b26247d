package db

import (
	"context"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"gorm.io/gorm"
)

// AccessDAO wraps lookups of role/function/environment permissions.
type AccessDAO struct{}

func NewAccessDAO() *AccessDAO { return &AccessDAO{} }

// BatchCreate inserts permission rows.
func (dao *AccessDAO) BatchCreate(ctx context.Context, db *gorm.DB, entities []*model.AccessPermission) error {
	if len(entities) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(entities, batchSize).Error
}

// Find fetches the rule for a role, function and environment.
func (dao *AccessDAO) Find(ctx context.Context, db *gorm.DB, role, function, environmentCode string) (*model.AccessPermission, error) {
	var entity model.AccessPermission
	if err := db.WithContext(ctx).
		Where("role = ? AND function_name = ? AND environment_code = ?", role, function, environmentCode).
		First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns all rules, optionally for one role.
func (dao *AccessDAO) List(ctx context.Context, db *gorm.DB, role string) ([]model.AccessPermission, error) {
	tx := db.WithContext(ctx)
	if role != "" {
		tx = tx.Where("role = ?", role)
	}
	var entities []model.AccessPermission
	if err := tx.Order("role ASC, function_name ASC, environment_code ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

package db

import (
	"context"
	"fmt"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"gorm.io/gorm"
)

// WipeOrder lists every dashboard table, children before parents, so rows can
// be deleted without violating foreign keys.
var WipeOrder = []any{
	&model.ServiceInstance{},
	&model.DeploymentConfig{},
	&model.Component{},
	&model.InfraMetric{},
	&model.Infrastructure{},
	&model.AccessPermission{},
	&model.Profile{},
	&model.ProjectEnvironmentMapping{},
	&model.Project{},
	&model.Environment{},
	&model.Region{},
}

// WipeAll hard-deletes every row of every table in WipeOrder.
func WipeAll(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range WipeOrder {
		if err := tx.Unscoped().Delete(m).Error; err != nil {
			return fmt.Errorf("wipe %T: %w", m, err)
		}
	}
	return nil
}

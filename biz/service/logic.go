package service

import (
	"errors"

	"github.com/yi-nology/opsboard/biz/dal/db"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound          = errors.New("project not found")
	ErrProfileNotFound          = errors.New("profile not found")
	ErrInfrastructureNotFound   = errors.New("infrastructure not found")
	ErrComponentNotFound        = errors.New("component not found")
	ErrComponentExists          = errors.New("component name already exists in project")
	ErrDeploymentConfigNotFound = errors.New("deployment config not found")
	ErrDeploymentConfigExists   = errors.New("component is already deployed to this infrastructure")
	ErrInstanceNotFound         = errors.New("service instance not found")
	ErrInstanceExists           = errors.New("instance_id already exists")
	ErrInvalidArgument          = errors.New("invalid argument")
	ErrConflict                 = errors.New("row was modified concurrently, reload and retry")
	ErrSeedingUnavailable       = errors.New("seeder not configured")
)

// Logic holds the connection and DAOs shared by service operations.
type Logic struct {
	db           *gorm.DB
	envDAO       *db.EnvironmentDAO
	regionDAO    *db.RegionDAO
	projectDAO   *db.ProjectDAO
	profileDAO   *db.ProfileDAO
	infraDAO     *db.InfrastructureDAO
	componentDAO *db.ComponentDAO
	configDAO    *db.DeploymentConfigDAO
	instanceDAO  *db.ServiceInstanceDAO
	accessDAO    *db.AccessDAO
}

func NewLogic(dbConn *gorm.DB) *Logic {
	return &Logic{
		db:           dbConn,
		envDAO:       db.NewEnvironmentDAO(),
		regionDAO:    db.NewRegionDAO(),
		projectDAO:   db.NewProjectDAO(),
		profileDAO:   db.NewProfileDAO(),
		infraDAO:     db.NewInfrastructureDAO(),
		componentDAO: db.NewComponentDAO(),
		configDAO:    db.NewDeploymentConfigDAO(),
		instanceDAO:  db.NewServiceInstanceDAO(),
		accessDAO:    db.NewAccessDAO(),
	}
}

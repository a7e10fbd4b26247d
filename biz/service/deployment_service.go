package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yi-nology/opsboard/biz/dal/db"
	"github.com/yi-nology/opsboard/biz/dal/model"
	"github.com/yi-nology/opsboard/biz/model/api"
	"gorm.io/gorm"
)

// ListDeployments returns configs filtered by project, component or host.
func (s *Service) ListDeployments(ctx context.Context, req *api.ListDeploymentsRequest) ([]*api.DeploymentConfig, error) {
	filter := db.DeploymentConfigFilter{}
	if req != nil {
		filter = db.DeploymentConfigFilter{
			ProjectID:        req.ProjectID,
			ComponentID:      req.ComponentID,
			InfrastructureID: req.InfrastructureID,
		}
	}
	configs, err := s.logic.configDAO.List(ctx, s.logic.db, filter)
	if err != nil {
		return nil, err
	}
	list := make([]*api.DeploymentConfig, 0, len(configs))
	for i := range configs {
		list = append(list, deploymentToAPI(&configs[i]))
	}
	return list, nil
}

// GetDeployment returns a config with its component and host names.
func (s *Service) GetDeployment(ctx context.Context, id uint) (*api.DeploymentConfig, error) {
	cfg, err := s.logic.configDAO.GetByID(ctx, s.logic.db, id)
	if err != nil {
		return nil, notFound(err, ErrDeploymentConfigNotFound)
	}
	return deploymentToAPI(cfg), nil
}

// CreateDeployment binds a component to a host of the same project. A pair can
// be bound only once, and an explicit profile must be the host's own.
func (s *Service) CreateDeployment(ctx context.Context, req *api.CreateDeploymentRequest) (*api.DeploymentConfig, error) {
	if req == nil || req.ComponentID == 0 || req.InfrastructureID == 0 {
		return nil, fmt.Errorf("%w: component_id and infrastructure_id are required", ErrInvalidArgument)
	}
	if req.BasePort <= 0 || req.BasePort > 65535 {
		return nil, fmt.Errorf("%w: base_port out of range", ErrInvalidArgument)
	}
	if len(req.DeploymentParams) > 0 && !json.Valid(req.DeploymentParams) {
		return nil, fmt.Errorf("%w: deployment_params is not valid JSON", ErrInvalidArgument)
	}

	comp, err := s.logic.componentDAO.GetByID(ctx, s.logic.db, req.ComponentID)
	if err != nil {
		return nil, notFound(err, ErrComponentNotFound)
	}
	host, err := s.logic.infraDAO.GetWithMapping(ctx, s.logic.db, req.InfrastructureID)
	if err != nil {
		return nil, notFound(err, ErrInfrastructureNotFound)
	}
	if host.Mapping == nil || host.Mapping.ProjectID != comp.ProjectID {
		return nil, fmt.Errorf("%w: host %s is outside project of component %s", ErrInvalidArgument, host.Name, comp.Name)
	}
	if req.ProfileID != nil && *req.ProfileID != host.ProfileID {
		return nil, fmt.Errorf("%w: profile_id %d does not match host profile %d", ErrInvalidArgument, *req.ProfileID, host.ProfileID)
	}
	_, err = s.logic.configDAO.FindByPair(ctx, s.logic.db, req.ComponentID, req.InfrastructureID)
	switch {
	case err == nil:
		return nil, ErrDeploymentConfigExists
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	profileID := req.ProfileID
	if profileID == nil {
		profileID = &host.ProfileID
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	entity := &model.DeploymentConfig{
		ComponentID:      req.ComponentID,
		InfrastructureID: req.InfrastructureID,
		ProfileID:        profileID,
		BasePort:         req.BasePort,
		Enabled:          enabled,
	}
	if len(req.DeploymentParams) > 0 {
		entity.DeploymentParams = []byte(req.DeploymentParams)
	}
	if err := s.logic.configDAO.Create(ctx, s.logic.db, entity); err != nil {
		return nil, err
	}
	return deploymentToAPI(entity), nil
}

// SetDeploymentEnabled toggles a config. RowVersion must match the stored version.
func (s *Service) SetDeploymentEnabled(ctx context.Context, req *api.SetEnabledRequest) (*api.DeploymentConfig, error) {
	if req == nil || req.ID == 0 {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidArgument)
	}
	if req.RowVersion <= 0 {
		return nil, fmt.Errorf("%w: row_version is required", ErrInvalidArgument)
	}
	exists, err := s.logic.configDAO.ExistsByID(ctx, s.logic.db, req.ID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrDeploymentConfigNotFound
	}
	if err := s.logic.configDAO.SetEnabled(ctx, s.logic.db, req.ID, req.RowVersion, req.Enabled); err != nil {
		return nil, staleAsConflict(err)
	}
	return s.GetDeployment(ctx, req.ID)
}

func deploymentToAPI(c *model.DeploymentConfig) *api.DeploymentConfig {
	out := &api.DeploymentConfig{
		ID:               c.ID,
		ComponentID:      c.ComponentID,
		InfrastructureID: c.InfrastructureID,
		ProfileID:        c.ProfileID,
		BasePort:         c.BasePort,
		Enabled:          c.Enabled,
		RowVersion:       c.RowVersion,
	}
	if len(c.DeploymentParams) > 0 {
		out.DeploymentParams = json.RawMessage(c.DeploymentParams)
	}
	if c.Component != nil {
		out.ComponentName = c.Component.Name
	}
	if c.Infrastructure != nil {
		out.InfrastructureName = c.Infrastructure.Name
	}
	return out
}

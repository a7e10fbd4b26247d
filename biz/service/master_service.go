package service

import (
	"context"

	"github.com/yi-nology/opsboard/biz/model/api"
)

// ListEnvironments returns the environment tiers.
func (s *Service) ListEnvironments(ctx context.Context) ([]*api.Environment, error) {
	envs, err := s.logic.envDAO.List(ctx, s.logic.db)
	if err != nil {
		return nil, err
	}
	list := make([]*api.Environment, 0, len(envs))
	for _, e := range envs {
		list = append(list, &api.Environment{Code: e.Code, Description: e.Description})
	}
	return list, nil
}

// ListRegions returns the deployment regions.
func (s *Service) ListRegions(ctx context.Context) ([]*api.Region, error) {
	regions, err := s.logic.regionDAO.List(ctx, s.logic.db)
	if err != nil {
		return nil, err
	}
	list := make([]*api.Region, 0, len(regions))
	for _, r := range regions {
		list = append(list, &api.Region{Code: r.Code, Description: r.Description})
	}
	return list, nil
}

// ListProfiles returns every profile of a project across its mappings.
func (s *Service) ListProfiles(ctx context.Context, projectID uint) ([]*api.Profile, error) {
	if _, err := s.logic.projectDAO.GetByID(ctx, s.logic.db, projectID); err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	profiles, err := s.logic.profileDAO.ListByProject(ctx, s.logic.db, projectID)
	if err != nil {
		return nil, err
	}
	list := make([]*api.Profile, 0, len(profiles))
	for _, p := range profiles {
		list = append(list, &api.Profile{
			ID:          p.ID,
			Code:        p.Code,
			Description: p.Description,
			Status:      p.Status,
		})
	}
	return list, nil
}

// GetOverview counts environments, projects, configs and instances.
func (s *Service) GetOverview(ctx context.Context) (*api.Overview, error) {
	var (
		out api.Overview
		err error
	)
	if out.Environments, err = s.logic.envDAO.Count(ctx, s.logic.db); err != nil {
		return nil, err
	}
	if out.Projects, err = s.logic.projectDAO.Count(ctx, s.logic.db); err != nil {
		return nil, err
	}
	if out.DeploymentConfigs, err = s.logic.configDAO.Count(ctx, s.logic.db); err != nil {
		return nil, err
	}
	if out.ServiceInstances, err = s.logic.instanceDAO.Count(ctx, s.logic.db); err != nil {
		return nil, err
	}
	return &out, nil
}

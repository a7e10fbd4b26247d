package service

import (
	"context"

	"github.com/yi-nology/opsboard/biz/dal/db"
	"github.com/yi-nology/opsboard/biz/dal/model"
	"github.com/yi-nology/opsboard/biz/model/api"
)

// ListProjects returns projects with the counts of what each owns.
func (s *Service) ListProjects(ctx context.Context, req *api.ListProjectsRequest) ([]*api.ProjectSummary, error) {
	var active *bool
	if req != nil {
		active = req.Active
	}
	projects, err := s.logic.projectDAO.List(ctx, s.logic.db, active)
	if err != nil {
		return nil, err
	}
	list := make([]*api.ProjectSummary, 0, len(projects))
	for i := range projects {
		counts, err := s.logic.projectDAO.Counts(ctx, s.logic.db, projects[i].ID)
		if err != nil {
			return nil, err
		}
		list = append(list, projectSummary(&projects[i], counts))
	}
	return list, nil
}

// GetProject returns a project with its environment tree.
func (s *Service) GetProject(ctx context.Context, id uint) (*api.ProjectDetail, error) {
	project, err := s.logic.projectDAO.GetByID(ctx, s.logic.db, id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	counts, err := s.logic.projectDAO.Counts(ctx, s.logic.db, id)
	if err != nil {
		return nil, err
	}
	detail := &api.ProjectDetail{
		ProjectSummary: *projectSummary(project, counts),
		Mappings:       make([]*api.EnvironmentMapping, 0, len(project.Mappings)),
	}
	for _, m := range project.Mappings {
		detail.Mappings = append(detail.Mappings, mappingToAPI(&m))
	}
	return detail, nil
}

func projectSummary(p *model.Project, c *db.ProjectCounts) *api.ProjectSummary {
	return &api.ProjectSummary{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Type:            p.Type,
		Description:     p.Description,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		ProfileCount:    c.Profiles,
		ComponentCount:  c.Components,
		InfraCount:      c.Infrastructure,
		DeploymentCount: c.Deployments,
		InstanceCount:   c.Instances,
	}
}

func mappingToAPI(m *model.ProjectEnvironmentMapping) *api.EnvironmentMapping {
	out := &api.EnvironmentMapping{
		ID:       m.ID,
		Profiles: make([]*api.Profile, 0, len(m.Profiles)),
	}
	if m.Environment != nil {
		out.Environment = m.Environment.Code
	}
	if m.Region != nil {
		out.Region = m.Region.Code
	}
	for _, p := range m.Profiles {
		out.Profiles = append(out.Profiles, &api.Profile{
			ID:          p.ID,
			Code:        p.Code,
			Description: p.Description,
			Status:      p.Status,
		})
	}
	return out
}

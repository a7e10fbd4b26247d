package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"github.com/yi-nology/opsboard/biz/model/api"
	"github.com/yi-nology/opsboard/pkg/constants"
	"github.com/yi-nology/opsboard/pkg/validator"
)

// ListComponents returns a project's components; project 0 lists all.
func (s *Service) ListComponents(ctx context.Context, req *api.ListComponentsRequest) ([]*api.Component, error) {
	var projectID uint
	if req != nil {
		projectID = req.ProjectID
	}
	components, err := s.logic.componentDAO.ListByProject(ctx, s.logic.db, projectID)
	if err != nil {
		return nil, err
	}
	list := make([]*api.Component, 0, len(components))
	for i := range components {
		list = append(list, componentToAPI(&components[i]))
	}
	return list, nil
}

// GetComponent returns a single component.
func (s *Service) GetComponent(ctx context.Context, id uint) (*api.Component, error) {
	comp, err := s.logic.componentDAO.GetByID(ctx, s.logic.db, id)
	if err != nil {
		return nil, notFound(err, ErrComponentNotFound)
	}
	return componentToAPI(comp), nil
}

// CreateComponent registers a component under an existing project.
func (s *Service) CreateComponent(ctx context.Context, req *api.CreateComponentRequest) (*api.Component, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request body is required", ErrInvalidArgument)
	}
	name, ok := validator.SanitizeSlug(req.GetName())
	if !ok {
		return nil, fmt.Errorf("%w: invalid component name %q", ErrInvalidArgument, req.GetName())
	}
	infraType := strings.ToLower(strings.TrimSpace(req.DefaultInfraType))
	if !constants.IsInfraType(infraType) {
		return nil, fmt.Errorf("%w: unsupported infrastructure type %q", ErrInvalidArgument, req.DefaultInfraType)
	}
	if req.DefaultPort < constants.MinComponentPort || req.DefaultPort >= constants.MaxComponentPort {
		return nil, fmt.Errorf("%w: default_port must be in [%d, %d)", ErrInvalidArgument,
			constants.MinComponentPort, constants.MaxComponentPort)
	}

	if _, err := s.logic.projectDAO.GetByID(ctx, s.logic.db, req.GetProjectID()); err != nil {
		return nil, notFound(err, ErrProjectNotFound)
	}
	exists, err := s.logic.componentDAO.ExistsByName(ctx, s.logic.db, req.GetProjectID(), name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrComponentExists
	}

	entity := &model.Component{
		ProjectID:        req.GetProjectID(),
		Name:             name,
		Description:      req.Description,
		Module:           req.Module,
		DefaultInfraType: infraType,
		DefaultPort:      req.DefaultPort,
	}
	if err := s.logic.componentDAO.Create(ctx, s.logic.db, entity); err != nil {
		return nil, err
	}
	return componentToAPI(entity), nil
}

func componentToAPI(c *model.Component) *api.Component {
	return &api.Component{
		ID:               c.ID,
		ProjectID:        c.ProjectID,
		Name:             c.Name,
		Description:      c.Description,
		Module:           c.Module,
		DefaultInfraType: c.DefaultInfraType,
		DefaultPort:      c.DefaultPort,
	}
}

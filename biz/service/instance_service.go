package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yi-nology/opsboard/biz/dal/db"
	"github.com/yi-nology/opsboard/biz/dal/model"
	"github.com/yi-nology/opsboard/biz/model/api"
	"github.com/yi-nology/opsboard/pkg/common"
	"github.com/yi-nology/opsboard/pkg/constants"
	"github.com/yi-nology/opsboard/pkg/validator"
	"gorm.io/gorm"
)

const sortByVersion = "version"

// ListInstances returns instances matching the request filters.
func (s *Service) ListInstances(ctx context.Context, req *api.ListInstancesRequest) ([]*api.ServiceInstance, error) {
	filter := db.ServiceInstanceFilter{}
	sortBy := ""
	if req != nil {
		filter = db.ServiceInstanceFilter{
			ProjectID:   req.ProjectID,
			Profile:     strings.TrimSpace(req.Profile),
			Status:      strings.ToLower(strings.TrimSpace(req.Status)),
			ServiceName: strings.TrimSpace(req.ServiceName),
		}
		sortBy = req.Sort
	}
	if filter.Status != "" && !constants.InstanceStatuses[filter.Status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, filter.Status)
	}
	if filter.ProjectID != 0 && filter.Profile != "" {
		if _, err := s.logic.profileDAO.GetByCode(ctx, s.logic.db, filter.ProjectID, filter.Profile); err != nil {
			return nil, notFound(err, ErrProfileNotFound)
		}
	}
	instances, err := s.logic.instanceDAO.List(ctx, s.logic.db, filter)
	if err != nil {
		return nil, err
	}
	if sortBy == sortByVersion {
		slices.SortStableFunc(instances, func(a, b model.ServiceInstance) int {
			va, vb := common.VersionToNumber(a.Version), common.VersionToNumber(b.Version)
			switch {
			case va > vb:
				return -1
			case va < vb:
				return 1
			}
			return 0
		})
	}
	list := make([]*api.ServiceInstance, 0, len(instances))
	for i := range instances {
		list = append(list, instanceToAPI(&instances[i]))
	}
	return list, nil
}

// GetInstance returns an instance by its string id.
func (s *Service) GetInstance(ctx context.Context, instanceID string) (*api.ServiceInstance, error) {
	inst, err := s.logic.instanceDAO.GetByInstanceID(ctx, s.logic.db, instanceID)
	if err != nil {
		return nil, notFound(err, ErrInstanceNotFound)
	}
	return instanceToAPI(inst), nil
}

// CreateInstance registers an instance under an existing deployment config.
// Host, type and profile are copied from the config's infrastructure.
func (s *Service) CreateInstance(ctx context.Context, req *api.CreateInstanceRequest) (*api.ServiceInstance, error) {
	if req == nil || strings.TrimSpace(req.ServiceName) == "" {
		return nil, fmt.Errorf("%w: service_name is required", ErrInvalidArgument)
	}
	if req.Port <= 0 || req.Port > 65535 {
		return nil, fmt.Errorf("%w: port out of range", ErrInvalidArgument)
	}
	if !validator.ValidateVersion(req.Version) {
		return nil, fmt.Errorf("%w: version must be major.minor.patch", ErrInvalidArgument)
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = constants.StatusRunning
	}
	if !constants.InstanceStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, req.Status)
	}

	cfg, err := s.logic.configDAO.GetByID(ctx, s.logic.db, req.DeploymentConfigID)
	if err != nil {
		return nil, notFound(err, ErrDeploymentConfigNotFound)
	}

	profileCode := ""
	if cfg.Infrastructure != nil && cfg.Infrastructure.Profile != nil {
		profileCode = cfg.Infrastructure.Profile.Code
	}
	instanceID := strings.TrimSpace(req.InstanceID)
	if instanceID == "" {
		instanceID = fmt.Sprintf("srv-%s-%s", profileCode, uuid.NewString()[:8])
	}
	if _, err := s.logic.instanceDAO.GetByInstanceID(ctx, s.logic.db, instanceID); err == nil {
		return nil, ErrInstanceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	entity := &model.ServiceInstance{
		InstanceID:         instanceID,
		DeploymentConfigID: cfg.ID,
		ServiceName:        strings.TrimSpace(req.ServiceName),
		Profile:            profileCode,
		Port:               req.Port,
		Version:            strings.TrimSpace(req.Version),
		Status:             status,
		StartedAt:          &now,
		LastHeartbeatAt:    &now,
	}
	if cfg.Infrastructure != nil {
		entity.MachineName = cfg.Infrastructure.Name
		entity.InfraType = cfg.Infrastructure.Type
	}
	if err := s.logic.instanceDAO.Create(ctx, s.logic.db, entity); err != nil {
		return nil, err
	}
	return instanceToAPI(entity), nil
}

// UpdateInstanceStatus changes an instance status. RowVersion must match the stored version.
func (s *Service) UpdateInstanceStatus(ctx context.Context, req *api.UpdateInstanceStatusRequest) (*api.ServiceInstance, error) {
	if req == nil || strings.TrimSpace(req.InstanceID) == "" {
		return nil, fmt.Errorf("%w: instance_id is required", ErrInvalidArgument)
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !constants.InstanceStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, req.Status)
	}
	if req.RowVersion <= 0 {
		return nil, fmt.Errorf("%w: row_version is required", ErrInvalidArgument)
	}
	if _, err := s.logic.instanceDAO.GetByInstanceID(ctx, s.logic.db, req.InstanceID); err != nil {
		return nil, notFound(err, ErrInstanceNotFound)
	}
	if err := s.logic.instanceDAO.UpdateStatus(ctx, s.logic.db, req.InstanceID, req.RowVersion, status); err != nil {
		return nil, staleAsConflict(err)
	}
	return s.GetInstance(ctx, req.InstanceID)
}

func instanceToAPI(i *model.ServiceInstance) *api.ServiceInstance {
	return &api.ServiceInstance{
		InstanceID:         i.InstanceID,
		DeploymentConfigID: i.DeploymentConfigID,
		ServiceName:        i.ServiceName,
		MachineName:        i.MachineName,
		InfraType:          i.InfraType,
		Profile:            i.Profile,
		Port:               i.Port,
		Version:            i.Version,
		UptimeSeconds:      i.UptimeSeconds,
		Status:             i.Status,
		StartedAt:          i.StartedAt,
		LastHeartbeatAt:    i.LastHeartbeatAt,
		RowVersion:         i.RowVersion,
	}
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yi-nology/opsboard/biz/dal/db"
	"github.com/yi-nology/opsboard/biz/dal/model"
	"github.com/yi-nology/opsboard/biz/model/api"
	"github.com/yi-nology/opsboard/pkg/constants"
	"gorm.io/datatypes"
)

// ListInfrastructure returns hosts matching the request filters, without metrics.
func (s *Service) ListInfrastructure(ctx context.Context, req *api.ListInfrastructureRequest) ([]*api.Infrastructure, error) {
	filter := db.InfrastructureFilter{}
	if req != nil {
		filter = db.InfrastructureFilter{
			ProjectID:       req.ProjectID,
			ProfileID:       req.ProfileID,
			EnvironmentCode: strings.ToUpper(strings.TrimSpace(req.Environment)),
			RegionCode:      strings.ToUpper(strings.TrimSpace(req.Region)),
			Type:            strings.ToLower(strings.TrimSpace(req.Type)),
		}
	}
	if filter.Type != "" && !constants.IsInfraType(filter.Type) {
		return nil, fmt.Errorf("%w: unsupported infrastructure type %q", ErrInvalidArgument, filter.Type)
	}
	hosts, err := s.logic.infraDAO.List(ctx, s.logic.db, filter)
	if err != nil {
		return nil, err
	}
	list := make([]*api.Infrastructure, 0, len(hosts))
	for i := range hosts {
		list = append(list, infraToAPI(&hosts[i], nil))
	}
	return list, nil
}

// GetInfrastructure returns a host with its limits and usage samples.
func (s *Service) GetInfrastructure(ctx context.Context, id uint) (*api.Infrastructure, error) {
	host, err := s.logic.infraDAO.GetByID(ctx, s.logic.db, id)
	if err != nil {
		return nil, notFound(err, ErrInfrastructureNotFound)
	}
	return infraToAPI(host, host.Metrics), nil
}

func infraToAPI(h *model.Infrastructure, metrics []model.InfraMetric) *api.Infrastructure {
	out := &api.Infrastructure{
		ID:              h.ID,
		Type:            h.Type,
		Name:            h.Name,
		Hostname:        h.Hostname,
		IPAddress:       h.IPAddress,
		EnvironmentCode: h.EnvironmentCode,
		RegionCode:      h.RegionCode,
		Datacenter:      h.Datacenter,
		Status:          h.Status,
		ProfileID:       h.ProfileID,
	}
	if len(metrics) > 0 {
		out.Metrics = make([]*api.Metric, 0, len(metrics))
		for _, m := range metrics {
			out.Metrics = append(out.Metrics, &api.Metric{
				Name:       m.Name,
				Value:      m.Value,
				Unit:       m.Unit,
				Limit:      m.IsLimit(),
				MetricDate: metricDay(m.MetricDate),
				SampledAt:  m.SampledAt,
			})
		}
	}
	return out
}

func metricDay(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yi-nology/opsboard/biz/model/api"
	"github.com/yi-nology/opsboard/pkg/common"
	"gorm.io/gorm"
)

// CheckAccess reports whether a role may perform a function in an environment.
// Missing rules deny. An empty role falls back to the role carried by ctx.
func (s *Service) CheckAccess(ctx context.Context, req *api.AccessCheckRequest) (*api.AccessCheckResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidArgument)
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = common.GetRole(ctx)
	}
	function := strings.TrimSpace(req.Function)
	env := strings.ToUpper(strings.TrimSpace(req.Environment))
	if role == "" || function == "" || env == "" {
		return nil, fmt.Errorf("%w: role, function and environment are required", ErrInvalidArgument)
	}

	result := &api.AccessCheckResult{Role: role, Function: function, Environment: env}
	rule, err := s.logic.accessDAO.Find(ctx, s.logic.db, role, function, env)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return nil, err
	}
	result.Allowed = rule.Allowed
	return result, nil
}

// ListAccessRules returns stored rules, optionally for one role.
func (s *Service) ListAccessRules(ctx context.Context, req *api.ListAccessRulesRequest) ([]*api.AccessRule, error) {
	role := ""
	if req != nil {
		role = strings.TrimSpace(req.Role)
	}
	rules, err := s.logic.accessDAO.List(ctx, s.logic.db, role)
	if err != nil {
		return nil, err
	}
	list := make([]*api.AccessRule, 0, len(rules))
	for _, r := range rules {
		list = append(list, &api.AccessRule{
			Role:        r.Role,
			Function:    r.Function,
			Environment: r.EnvironmentCode,
			Allowed:     r.Allowed,
		})
	}
	return list, nil
}

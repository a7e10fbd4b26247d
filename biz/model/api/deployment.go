package api

import "encoding/json"

// DeploymentConfig binds a component to a host.
type DeploymentConfig struct {
	ID                 uint            `json:"id"`
	ComponentID        uint            `json:"component_id"`
	ComponentName      string          `json:"component_name,omitempty"`
	InfrastructureID   uint            `json:"infrastructure_id"`
	InfrastructureName string          `json:"infrastructure_name,omitempty"`
	ProfileID          *uint           `json:"profile_id,omitempty"`
	BasePort           int             `json:"base_port"`
	Enabled            bool            `json:"enabled"`
	DeploymentParams   json.RawMessage `json:"deployment_params,omitempty"`
	RowVersion         int64           `json:"row_version"`
}

// ListDeploymentsRequest filters config listings.
type ListDeploymentsRequest struct {
	ProjectID        uint `query:"project_id"`
	ComponentID      uint `query:"component_id"`
	InfrastructureID uint `query:"infrastructure_id"`
}

// CreateDeploymentRequest binds a component to a host.
type CreateDeploymentRequest struct {
	ComponentID      uint            `json:"component_id"`
	InfrastructureID uint            `json:"infrastructure_id"`
	ProfileID        *uint           `json:"profile_id"`
	BasePort         int             `json:"base_port"`
	Enabled          *bool           `json:"enabled"`
	DeploymentParams json.RawMessage `json:"deployment_params"`
}

// SetEnabledRequest toggles a config at a known row version.
type SetEnabledRequest struct {
	ID         uint  `json:"-"`
	Enabled    bool  `json:"enabled"`
	RowVersion int64 `json:"row_version"`
}

package api

import "time"

// ServiceInstance is a runtime record of a deployed service.
type ServiceInstance struct {
	InstanceID         string     `json:"instance_id"`
	DeploymentConfigID uint       `json:"deployment_config_id"`
	ServiceName        string     `json:"service_name"`
	MachineName        string     `json:"machine_name"`
	InfraType          string     `json:"infra_type"`
	Profile            string     `json:"profile"`
	Port               int        `json:"port"`
	Version            string     `json:"version"`
	UptimeSeconds      int64      `json:"uptime_seconds"`
	Status             string     `json:"status"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	LastHeartbeatAt    *time.Time `json:"last_heartbeat_at,omitempty"`
	RowVersion         int64      `json:"row_version"`
}

// ListInstancesRequest filters instance listings.
type ListInstancesRequest struct {
	ProjectID   uint   `query:"project_id"`
	Profile     string `query:"profile"`
	Status      string `query:"status"`
	ServiceName string `query:"service_name"`
	// Sort is "version" for newest version first; default is creation order.
	Sort string `query:"sort"`
}

// CreateInstanceRequest registers a running instance under an existing config.
type CreateInstanceRequest struct {
	InstanceID         string `json:"instance_id"`
	DeploymentConfigID uint   `json:"deployment_config_id"`
	ServiceName        string `json:"service_name"`
	Port               int    `json:"port"`
	Version            string `json:"version"`
	Status             string `json:"status"`
}

// UpdateInstanceStatusRequest changes an instance status at a known row version.
type UpdateInstanceStatusRequest struct {
	InstanceID string `json:"-"`
	Status     string `json:"status"`
	RowVersion int64  `json:"row_version"`
}

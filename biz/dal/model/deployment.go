package model

import "time"

// DeploymentConfig binds one component to one infrastructure host.
type DeploymentConfig struct {
	ID               uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
	ComponentID      uint      `gorm:"column:component_id;not null;uniqueIndex:uk_component_infra,priority:1" json:"component_id,omitempty"`
	InfrastructureID uint      `gorm:"column:infrastructure_id;not null;uniqueIndex:uk_component_infra,priority:2;index:idx_deploy_infra" json:"infrastructure_id,omitempty"`
	ProfileID        *uint     `gorm:"column:profile_id;index:idx_deploy_profile" json:"profile_id,omitempty"`
	BasePort         int       `gorm:"column:base_port" json:"base_port,omitempty"`
	Enabled          bool      `gorm:"column:enabled" json:"enabled"`
	// DeploymentParams is a JSON document kept as an opaque blob (blob, longblob
	// or bytea) so the key order written by the seeder survives every dialect.
	DeploymentParams []byte `gorm:"column:deployment_params" json:"deployment_params,omitempty"`
	RowVersion       int64  `gorm:"column:row_version;not null;default:1" json:"row_version,omitempty"`

	Component      *Component      `gorm:"foreignKey:ComponentID" json:"component,omitempty"`
	Infrastructure *Infrastructure `gorm:"foreignKey:InfrastructureID" json:"infrastructure,omitempty"`
	Profile        *Profile        `gorm:"foreignKey:ProfileID" json:"-"`
}

// TableName overrides gorm to use deployment_config table.
func (DeploymentConfig) TableName() string {
	return "deployment_config"
}

// ServiceInstance is a runtime record of a component running under a deployment config.
type ServiceInstance struct {
	ID                 uint       `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt          time.Time  `json:"created_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at,omitempty"`
	InstanceID         string     `gorm:"column:instance_id;size:64;uniqueIndex:uk_instance_id" json:"instance_id,omitempty"`
	DeploymentConfigID uint       `gorm:"column:deployment_config_id;not null;index:idx_instance_config" json:"deployment_config_id,omitempty"`
	ServiceName        string     `gorm:"column:service_name;size:128;index:idx_instance_service" json:"service_name,omitempty"`
	MachineName        string     `gorm:"column:machine_name;size:160" json:"machine_name,omitempty"`
	InfraType          string     `gorm:"column:infra_type;size:16" json:"infra_type,omitempty"`
	Profile            string     `gorm:"column:profile;size:64;index:idx_instance_profile" json:"profile,omitempty"`
	Port               int        `gorm:"column:port" json:"port,omitempty"`
	Version            string     `gorm:"column:version;size:32" json:"version,omitempty"`
	UptimeSeconds      int64      `gorm:"column:uptime_seconds" json:"uptime_seconds,omitempty"`
	Status             string     `gorm:"column:status;size:32;index:idx_instance_status" json:"status,omitempty"`
	StartedAt          *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	LastHeartbeatAt    *time.Time `gorm:"column:last_heartbeat_at" json:"last_heartbeat_at,omitempty"`
	RowVersion         int64      `gorm:"column:row_version;not null;default:1" json:"row_version,omitempty"`

	DeploymentConfig *DeploymentConfig `gorm:"foreignKey:DeploymentConfigID" json:"-"`
}

// TableName overrides gorm to use service_instance table.
func (ServiceInstance) TableName() string {
	return "service_instance"
}

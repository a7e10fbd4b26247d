package model

import (
	"time"

	"gorm.io/datatypes"
)

// Infrastructure is a VM or container host generated for a profile.
type Infrastructure struct {
	ID              uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
	Type            string    `gorm:"column:type;size:16;index:idx_infra_type" json:"type,omitempty"`
	Name            string    `gorm:"column:name;size:160;uniqueIndex:uk_infra_name" json:"name,omitempty"`
	Hostname        string    `gorm:"column:hostname;size:255" json:"hostname,omitempty"`
	IPAddress       *string   `gorm:"column:ip_address;size:45" json:"ip_address,omitempty"`
	EnvironmentCode string    `gorm:"column:environment_code;size:32;index:idx_infra_env" json:"environment_code,omitempty"`
	RegionCode      string    `gorm:"column:region_code;size:32;index:idx_infra_region" json:"region_code,omitempty"`
	Datacenter      string    `gorm:"column:datacenter;size:64" json:"datacenter,omitempty"`
	Status          string    `gorm:"column:status;size:32" json:"status,omitempty"`
	MappingID       uint      `gorm:"column:mapping_id;not null;index:idx_infra_mapping" json:"mapping_id,omitempty"`
	ProfileID       uint      `gorm:"column:profile_id;not null;index:idx_infra_profile" json:"profile_id,omitempty"`

	Mapping *ProjectEnvironmentMapping `gorm:"foreignKey:MappingID" json:"-"`
	Profile *Profile                   `gorm:"foreignKey:ProfileID" json:"-"`
	Metrics []InfraMetric              `gorm:"foreignKey:InfrastructureID" json:"metrics,omitempty"`
}

// TableName overrides gorm to use infrastructure table.
func (Infrastructure) TableName() string {
	return "infrastructure"
}

// InfraMetric is one capacity limit or usage sample of an infrastructure host.
// Limits carry no date; samples carry the date and time they were taken.
type InfraMetric struct {
	ID               uint            `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt        time.Time       `json:"created_at,omitempty"`
	InfrastructureID uint            `gorm:"column:infrastructure_id;not null;index:idx_metric_infra" json:"infrastructure_id,omitempty"`
	Name             string          `gorm:"column:name;size:64" json:"name,omitempty"`
	Value            float64         `gorm:"column:value" json:"value"`
	Unit             string          `gorm:"column:unit;size:16" json:"unit,omitempty"`
	MetricDate       *datatypes.Date `gorm:"column:metric_date" json:"metric_date,omitempty"`
	SampledAt        *time.Time      `gorm:"column:sampled_at" json:"sampled_at,omitempty"`
}

// TableName overrides gorm to use infra_metric table.
func (InfraMetric) TableName() string {
	return "infra_metric"
}

// IsLimit reports whether the metric is a static capacity limit.
func (m InfraMetric) IsLimit() bool {
	return m.MetricDate == nil
}

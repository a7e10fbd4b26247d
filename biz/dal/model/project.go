package model

import "time"

// Project groups components and the environments they are deployed to.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
	Name        string    `gorm:"column:name;size:128;uniqueIndex:uk_project_name" json:"name,omitempty"`
	Slug        string    `gorm:"column:slug;size:64;uniqueIndex:uk_project_slug" json:"slug,omitempty"`
	Type        string    `gorm:"column:type;size:64" json:"type,omitempty"`
	Description string    `gorm:"column:description;type:varchar(512)" json:"description,omitempty"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active,omitempty"`

	Mappings   []ProjectEnvironmentMapping `gorm:"foreignKey:ProjectID" json:"mappings,omitempty"`
	Components []Component                 `gorm:"foreignKey:ProjectID" json:"components,omitempty"`
}

// TableName overrides gorm to use project table.
func (Project) TableName() string {
	return "project"
}

// ProjectEnvironmentMapping binds a project to one environment/region pair.
type ProjectEnvironmentMapping struct {
	ID            uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
	ProjectID     uint      `gorm:"column:project_id;not null;uniqueIndex:uk_project_env_region,priority:1" json:"project_id,omitempty"`
	EnvironmentID uint      `gorm:"column:environment_id;not null;uniqueIndex:uk_project_env_region,priority:2" json:"environment_id,omitempty"`
	RegionID      uint      `gorm:"column:region_id;not null;uniqueIndex:uk_project_env_region,priority:3" json:"region_id,omitempty"`

	Project     *Project     `gorm:"foreignKey:ProjectID" json:"-"`
	Environment *Environment `gorm:"foreignKey:EnvironmentID" json:"environment,omitempty"`
	Region      *Region      `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	Profiles    []Profile    `gorm:"foreignKey:MappingID" json:"profiles,omitempty"`
}

// TableName overrides gorm to use project_environment_mapping table.
func (ProjectEnvironmentMapping) TableName() string {
	return "project_environment_mapping"
}

// Profile is a deployable target under a mapping, e.g. "apacqa".
type Profile struct {
	ID          uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
	MappingID   uint      `gorm:"column:mapping_id;not null;uniqueIndex:uk_mapping_profile,priority:1" json:"mapping_id,omitempty"`
	Code        string    `gorm:"column:code;size:64;uniqueIndex:uk_mapping_profile,priority:2;index:idx_profile_code" json:"code,omitempty"`
	Description string    `gorm:"column:description;type:varchar(512)" json:"description,omitempty"`
	Status      string    `gorm:"column:status;size:32" json:"status,omitempty"`

	Mapping *ProjectEnvironmentMapping `gorm:"foreignKey:MappingID" json:"-"`
}

// TableName overrides gorm to use profile table.
func (Profile) TableName() string {
	return "profile"
}

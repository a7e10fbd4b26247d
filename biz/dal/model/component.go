package model

import "time"

// Component is a deployable unit owned by a project.
type Component struct {
	ID               uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
	ProjectID        uint      `gorm:"column:project_id;not null;uniqueIndex:uk_project_component,priority:1" json:"project_id,omitempty"`
	Name             string    `gorm:"column:name;size:128;uniqueIndex:uk_project_component,priority:2" json:"name,omitempty"`
	Description      string    `gorm:"column:description;type:varchar(512)" json:"description,omitempty"`
	Module           string    `gorm:"column:module;size:64" json:"module,omitempty"`
	DefaultInfraType string    `gorm:"column:default_infra_type;size:16" json:"default_infra_type,omitempty"`
	DefaultPort      int       `gorm:"column:default_port" json:"default_port,omitempty"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// TableName overrides gorm to use component table.
func (Component) TableName() string {
	return "component"
}

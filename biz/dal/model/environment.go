package model

import "time"

// Environment is a deployment tier such as DEV or PROD.
type Environment struct {
	ID          uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
	Code        string    `gorm:"column:code;size:32;uniqueIndex:uk_environment_code" json:"code,omitempty"`
	Description string    `gorm:"column:description;type:varchar(512)" json:"description,omitempty"`
}

// TableName overrides gorm to use environment table.
func (Environment) TableName() string {
	return "environment"
}

// Region is a geographic deployment region such as APAC.
type Region struct {
	ID          uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
	Code        string    `gorm:"column:code;size:32;uniqueIndex:uk_region_code" json:"code,omitempty"`
	Description string    `gorm:"column:description;type:varchar(512)" json:"description,omitempty"`
}

// TableName overrides gorm to use region table.
func (Region) TableName() string {
	return "region"
}

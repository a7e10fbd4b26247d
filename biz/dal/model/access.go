package model

import "time"

// AccessPermission states whether a role may perform a function in an environment.
type AccessPermission struct {
	ID              uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
	Role            string    `gorm:"column:role;size:64;uniqueIndex:uk_access_rule,priority:1" json:"role,omitempty"`
	Function        string    `gorm:"column:function_name;size:64;uniqueIndex:uk_access_rule,priority:2" json:"function,omitempty"`
	EnvironmentCode string    `gorm:"column:environment_code;size:32;uniqueIndex:uk_access_rule,priority:3" json:"environment_code,omitempty"`
	Allowed         bool      `gorm:"column:allowed" json:"allowed"`
}

// TableName overrides gorm to use access_permission table.
func (AccessPermission) TableName() string {
	return "access_permission"
}

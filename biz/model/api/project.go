// Package api provides API request/response models for the dashboard.
package api

import "time"

// ProjectSummary is a project with the sizes of what it owns.
type ProjectSummary struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Type            string    `json:"type"`
	Description     string    `json:"description,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	ProfileCount    int64     `json:"profile_count"`
	ComponentCount  int64     `json:"component_count"`
	InfraCount      int64     `json:"infrastructure_count"`
	DeploymentCount int64     `json:"deployment_count"`
	InstanceCount   int64     `json:"instance_count"`
}

// ProjectDetail is a project with its environment tree.
type ProjectDetail struct {
	ProjectSummary
	Mappings []*EnvironmentMapping `json:"mappings"`
}

// EnvironmentMapping is one environment/region branch of a project.
type EnvironmentMapping struct {
	ID          uint       `json:"id"`
	Environment string     `json:"environment"`
	Region      string     `json:"region"`
	Profiles    []*Profile `json:"profiles"`
}

// Profile is a deployable target of a project.
type Profile struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// ListProjectsRequest filters project listings.
type ListProjectsRequest struct {
	Active *bool `query:"active"`
}

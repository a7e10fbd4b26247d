package api

import "time"

// Infrastructure is a host with optional metrics.
type Infrastructure struct {
	ID              uint      `json:"id"`
	Type            string    `json:"type"`
	Name            string    `json:"name"`
	Hostname        string    `json:"hostname"`
	IPAddress       *string   `json:"ip_address"`
	EnvironmentCode string    `json:"environment"`
	RegionCode      string    `json:"region"`
	Datacenter      string    `json:"datacenter"`
	Status          string    `json:"status"`
	ProfileID       uint      `json:"profile_id"`
	Metrics         []*Metric `json:"metrics,omitempty"`
}

// Metric is a capacity limit (no date) or a usage sample.
type Metric struct {
	Name       string     `json:"name"`
	Value      float64    `json:"value"`
	Unit       string     `json:"unit"`
	Limit      bool       `json:"limit"`
	MetricDate *time.Time `json:"metric_date,omitempty"`
	SampledAt  *time.Time `json:"sampled_at,omitempty"`
}

// ListInfrastructureRequest filters host listings.
type ListInfrastructureRequest struct {
	ProjectID   uint   `query:"project_id"`
	ProfileID   uint   `query:"profile_id"`
	Environment string `query:"environment"`
	Region      string `query:"region"`
	Type        string `query:"type"`
}

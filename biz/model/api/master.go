package api

// Environment is a deployment tier.
type Environment struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Region is a geographic deployment region.
type Region struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Overview counts the dashboard's top-level rows.
type Overview struct {
	Environments      int64 `json:"environments"`
	Projects          int64 `json:"projects"`
	DeploymentConfigs int64 `json:"deployment_configs"`
	ServiceInstances  int64 `json:"service_instances"`
}

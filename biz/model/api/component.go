package api

// Component is a deployable unit of a project.
type Component struct {
	ID               uint   `json:"id"`
	ProjectID        uint   `json:"project_id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	Module           string `json:"module,omitempty"`
	DefaultInfraType string `json:"default_infra_type"`
	DefaultPort      int    `json:"default_port"`
}

// ListComponentsRequest filters component listings.
type ListComponentsRequest struct {
	ProjectID uint `query:"project_id"`
}

// CreateComponentRequest registers a component.
type CreateComponentRequest struct {
	ProjectID        uint   `json:"project_id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Module           string `json:"module"`
	DefaultInfraType string `json:"default_infra_type"`
	DefaultPort      int    `json:"default_port"`
}

func (x *CreateComponentRequest) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

func (x *CreateComponentRequest) GetProjectID() uint {
	if x != nil {
		return x.ProjectID
	}
	return 0
}

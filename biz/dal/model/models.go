package model

// All returns every persisted model, parents before children, for AutoMigrate.
func All() []any {
	return []any{
		&Environment{},
		&Region{},
		&Project{},
		&ProjectEnvironmentMapping{},
		&Profile{},
		&AccessPermission{},
		&Infrastructure{},
		&InfraMetric{},
		&Component{},
		&DeploymentConfig{},
		&ServiceInstance{},
	}
}

package constants

// Infrastructure types.
const (
	InfraTypeLinux   = "linux"
	InfraTypeWindows = "windows"
	InfraTypeECS     = "ecs"
)

// InfraTypes lists every supported infrastructure type.
var InfraTypes = []string{InfraTypeLinux, InfraTypeWindows, InfraTypeECS}

// IsInfraType reports whether t is a supported infrastructure type.
func IsInfraType(t string) bool {
	for _, v := range InfraTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Environment tiers.
const (
	EnvDev     = "DEV"
	EnvStaging = "STAGING"
	EnvProd    = "PROD"
	EnvCOB     = "COB"
)

// Regions. RegionGlobal profiles are region agnostic.
const (
	RegionGlobal = "GLOBAL"
	RegionAPAC   = "APAC"
	RegionEMEA   = "EMEA"
	RegionNAM    = "NAM"
)

// Instance and host statuses.
const (
	StatusRunning  = "running"
	StatusDegraded = "degraded"
	StatusStopped  = "stopped"
	StatusActive   = "active"
)

// InstanceStatuses lists statuses accepted for service instances.
var InstanceStatuses = map[string]bool{
	StatusRunning:  true,
	StatusDegraded: true,
	StatusStopped:  true,
}

// Component port range, upper bound exclusive.
const (
	MinComponentPort = 7000
	MaxComponentPort = 9000
)

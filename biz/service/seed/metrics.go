package seed

import (
	"time"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"github.com/yi-nology/opsboard/pkg/constants"
	"gorm.io/datatypes"
)

// Capacity is the static limit of a host type.
type Capacity struct {
	CPU    float64 // vCPU
	Memory float64 // GiB
}

var (
	ecsCapacity = Capacity{CPU: 8, Memory: 32}
	vmCapacity  = Capacity{CPU: 4, Memory: 16}
)

const (
	unitCPU    = "vCPU"
	unitMemory = "GiB"
	unitDisk   = "GiB"
	unitPods   = "pods"

	requestRatio = 0.5
)

// CapacityFor returns the limits of an infra type.
func CapacityFor(infraType string) Capacity {
	if infraType == constants.InfraTypeECS {
		return ecsCapacity
	}
	return vmCapacity
}

// GenerateMetrics builds the metric bundle of one host. Limits carry no date;
// usage samples are stamped with now. InfrastructureID is left for the caller.
func GenerateMetrics(g *Rand, infraType string, now time.Time) []model.InfraMetric {
	c := CapacityFor(infraType)
	if infraType == constants.InfraTypeECS {
		return ecsMetrics(g, c, now)
	}
	return vmMetrics(g, c, now)
}

func ecsMetrics(g *Rand, c Capacity, now time.Time) []model.InfraMetric {
	requestCPU := c.CPU * requestRatio
	requestMemory := c.Memory * requestRatio
	podMax := g.IntRange(50, 200)
	podUsed := g.IntRange(11, podMax)

	return []model.InfraMetric{
		limit("limit_cpu_max", c.CPU, unitCPU),
		sample("limit_cpu_used", usage(g, c.CPU), unitCPU, now),
		limit("request_cpu_max", requestCPU, unitCPU),
		sample("request_cpu_used", usage(g, requestCPU), unitCPU, now),
		limit("limit_memory_max", c.Memory, unitMemory),
		sample("limit_memory_used", usage(g, c.Memory), unitMemory, now),
		limit("request_memory_max", requestMemory, unitMemory),
		sample("request_memory_used", usage(g, requestMemory), unitMemory, now),
		limit("pod_max", float64(podMax), unitPods),
		sample("pod_used", float64(podUsed), unitPods, now),
	}
}

func vmMetrics(g *Rand, c Capacity, now time.Time) []model.InfraMetric {
	diskMax := float64(g.IntRange(100, 500))
	diskUsed := round2(diskMax * g.FloatRange(0.3, 0.7))

	return []model.InfraMetric{
		limit("cpu_max", c.CPU, unitCPU),
		sample("cpu_used", usage(g, c.CPU), unitCPU, now),
		limit("memory_max", c.Memory, unitMemory),
		sample("memory_used", usage(g, c.Memory), unitMemory, now),
		limit("disk_max", diskMax, unitDisk),
		sample("disk_used", diskUsed, unitDisk, now),
	}
}

// usage draws a utilisation between 10% and 90% of ceiling.
func usage(g *Rand, ceiling float64) float64 {
	return round2(ceiling * g.FloatRange(0.1, 0.9))
}

func limit(name string, value float64, unit string) model.InfraMetric {
	return model.InfraMetric{Name: name, Value: value, Unit: unit}
}

func sample(name string, value float64, unit string, now time.Time) model.InfraMetric {
	day := datatypes.Date(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()))
	at := now
	return model.InfraMetric{Name: name, Value: value, Unit: unit, MetricDate: &day, SampledAt: &at}
}

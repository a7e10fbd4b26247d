package seed

import (
	"regexp"
	"testing"
	"time"

	"github.com/yi-nology/opsboard/biz/dal/model"
	"github.com/yi-nology/opsboard/pkg/constants"
)

var (
	fixedNow  = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	maxSuffix = regexp.MustCompile(`_max$`)
)

func byName(metrics []model.InfraMetric) map[string]model.InfraMetric {
	out := make(map[string]model.InfraMetric, len(metrics))
	for _, m := range metrics {
		out[m.Name] = m
	}
	return out
}

func TestECSMetricsRequestIsHalfOfLimit(t *testing.T) {
	metrics := byName(GenerateMetrics(NewRand(42), constants.InfraTypeECS, fixedNow))
	if got := metrics["limit_cpu_max"].Value; got != 8.0 {
		t.Fatalf("limit_cpu_max = %v, want 8.0", got)
	}
	if got := metrics["request_cpu_max"].Value; got != 4.0 {
		t.Fatalf("request_cpu_max = %v, want 4.0", got)
	}
	if got := metrics["limit_memory_max"].Value; got != 32.0 {
		t.Fatalf("limit_memory_max = %v, want 32.0", got)
	}
	if got := metrics["request_memory_max"].Value; got != 16.0 {
		t.Fatalf("request_memory_max = %v, want 16.0", got)
	}
	if len(metrics) != 10 {
		t.Fatalf("expected 10 ecs metrics, got %d", len(metrics))
	}
}

func TestECSPodBounds(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		metrics := byName(GenerateMetrics(NewRand(seed), constants.InfraTypeECS, fixedNow))
		podMax := metrics["pod_max"].Value
		podUsed := metrics["pod_used"].Value
		if podMax < 50 || podMax >= 200 {
			t.Fatalf("seed %d: pod_max %v out of [50,200)", seed, podMax)
		}
		if podUsed <= 10 || podUsed >= podMax {
			t.Fatalf("seed %d: pod_used %v not in (10,%v)", seed, podUsed, podMax)
		}
	}
}

func TestVMDiskBounds(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		metrics := byName(GenerateMetrics(NewRand(seed), constants.InfraTypeLinux, fixedNow))
		diskMax := metrics["disk_max"].Value
		diskUsed := metrics["disk_used"].Value
		if diskMax < 100 || diskMax >= 500 {
			t.Fatalf("seed %d: disk_max %v out of [100,500)", seed, diskMax)
		}
		ratio := diskUsed / diskMax
		if diskUsed > diskMax || ratio < 0.3-1e-9 || ratio > 0.7+1e-9 {
			t.Fatalf("seed %d: disk_used %v / disk_max %v = %v", seed, diskUsed, diskMax, ratio)
		}
	}
}

func TestMetricDatesSeparateLimitsFromSamples(t *testing.T) {
	for _, infraType := range constants.InfraTypes {
		for _, m := range GenerateMetrics(NewRand(7), infraType, fixedNow) {
			isMax := maxSuffix.MatchString(m.Name)
			if isMax != m.IsLimit() {
				t.Errorf("%s %s: limit=%v", infraType, m.Name, m.IsLimit())
			}
			if m.IsLimit() {
				if m.SampledAt != nil {
					t.Errorf("%s %s: limit carries a timestamp", infraType, m.Name)
				}
				continue
			}
			if m.SampledAt == nil || !m.SampledAt.Equal(fixedNow) {
				t.Errorf("%s %s: sample time %v", infraType, m.Name, m.SampledAt)
			}
			if day := time.Time(*m.MetricDate); day.Day() != 14 || day.Hour() != 0 {
				t.Errorf("%s %s: metric date %v", infraType, m.Name, m.MetricDate)
			}
		}
	}
}

func TestVMMetricsUseVMCapacity(t *testing.T) {
	metrics := byName(GenerateMetrics(NewRand(1), constants.InfraTypeWindows, fixedNow))
	if metrics["cpu_max"].Value != 4 || metrics["memory_max"].Value != 16 {
		t.Fatalf("unexpected vm capacity %v/%v", metrics["cpu_max"].Value, metrics["memory_max"].Value)
	}
	if _, ok := metrics["pod_max"]; ok {
		t.Fatal("vm hosts must not report pods")
	}
}

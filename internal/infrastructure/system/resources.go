package system

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/ports"
)

const resultName = "system_resources"

const bytesPerGB = 1 << 30

// ResourceCheck warns when CPU, memory or disk usage crosses the threshold.
type ResourceCheck struct {
	Available bool
	Sampler   Sampler
	Platform  ports.PlatformProvider
	Threshold float64
}

// NewResourceCheck builds the check on the host sampler.
func NewResourceCheck(available bool, platform ports.PlatformProvider) *ResourceCheck {
	return &ResourceCheck{
		Available: available,
		Sampler:   NewHostSampler(domain.CPUSampleInterval),
		Platform:  platform,
		Threshold: domain.ResourceThresholdPercent,
	}
}

func (c *ResourceCheck) Name() string { return string(domain.GroupResources) }

// Run implements ports.Check.
func (c *ResourceCheck) Run(ctx context.Context) []domain.CheckResult {
	return []domain.CheckResult{c.check(ctx)}
}

func (c *ResourceCheck) check(ctx context.Context) domain.CheckResult {
	if !c.Available {
		return domain.Skip(resultName, "resource inspection unavailable on this platform")
	}

	snap, err := c.Sampler.Sample(ctx)
	if err != nil {
		return domain.Fail(resultName, fmt.Sprintf("System resource check error: %v", err))
	}

	platform := domain.Platform{System: runtime.GOOS, GoVersion: runtime.Version()}
	if c.Platform != nil {
		platform = c.Platform.Platform(ctx)
	}

	details := domain.NewDetails().
		With("cpu_percent", domain.Number(round(snap.CPUPercent, 1))).
		With("memory_total_gb", domain.Number(gigabytes(snap.MemoryTotal))).
		With("memory_available_gb", domain.Number(gigabytes(snap.MemoryAvail))).
		With("memory_percent", domain.Number(round(snap.MemoryPercent, 1))).
		With("disk_total_gb", domain.Number(gigabytes(snap.DiskTotal))).
		With("disk_free_gb", domain.Number(gigabytes(snap.DiskFree))).
		With("disk_percent", domain.Number(round(snap.DiskPercent, 1))).
		With("platform", domain.Text(platform.System)).
		With("go_version", domain.Text(platform.GoVersion))

	var breaches []string
	if snap.CPUPercent > c.Threshold {
		breaches = append(breaches, fmt.Sprintf("High CPU usage: %s%%", percent(snap.CPUPercent)))
	}
	if snap.MemoryPercent > c.Threshold {
		breaches = append(breaches, fmt.Sprintf("High memory usage: %s%%", percent(snap.MemoryPercent)))
	}
	if snap.DiskPercent > c.Threshold {
		breaches = append(breaches, fmt.Sprintf("High disk usage: %s%%", percent(snap.DiskPercent)))
	}

	if len(breaches) > 0 {
		return domain.Warn(resultName, "Resource constraints detected: "+strings.Join(breaches, "; ")).WithDetails(details)
	}
	return domain.Pass(resultName, "System resources healthy").WithDetails(details)
}

func gigabytes(b uint64) float64 {
	return round(float64(b)/bytesPerGB, 2)
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// percent formats without a trailing ".0" so 95 prints as "95".
func percent(v float64) string {
	return fmt.Sprintf("%g", round(v, 1))
}

var _ ports.Check = (*ResourceCheck)(nil)

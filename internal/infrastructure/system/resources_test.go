package system

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
)

type fakeSampler struct {
	snap Snapshot
	err  error
}

func (f fakeSampler) Sample(context.Context) (Snapshot, error) { return f.snap, f.err }

type fixedPlatform struct{}

func (fixedPlatform) Platform(context.Context) domain.Platform {
	return domain.Platform{System: "Linux", Release: "6.1.0", GoVersion: "go1.25.3"}
}

func newCheck(s Sampler) *ResourceCheck {
	return &ResourceCheck{Available: true, Sampler: s, Platform: fixedPlatform{}, Threshold: 90}
}

func TestResourceCheckWarnsOnlyForBreachedResource(t *testing.T) {
	check := newCheck(fakeSampler{snap: Snapshot{
		CPUPercent: 95, MemoryPercent: 40, DiskPercent: 50,
		MemoryTotal: 16 << 30, MemoryAvail: 8 << 30, DiskTotal: 100 << 30, DiskFree: 50 << 30,
	}})

	results := check.Run(context.Background())

	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, domain.StatusWarning, r.Status)
	assert.Equal(t, "Resource constraints detected: High CPU usage: 95%", r.Message)
	assert.NotContains(t, r.Message, "memory")
	assert.NotContains(t, r.Message, "disk")

	keys := make([]string, 0, r.Details.Len())
	for _, f := range r.Details.Fields() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{
		"cpu_percent", "memory_total_gb", "memory_available_gb", "memory_percent",
		"disk_total_gb", "disk_free_gb", "disk_percent", "platform", "go_version",
	}, keys)

	total, _ := r.Details.Get("memory_total_gb")
	n, _ := total.AsNumber()
	assert.Equal(t, 16.0, n)
}

func TestResourceCheckListsEveryBreach(t *testing.T) {
	check := newCheck(fakeSampler{snap: Snapshot{CPUPercent: 91.25, MemoryPercent: 97, DiskPercent: 99.5}})

	r := check.Run(context.Background())[0]

	assert.Equal(t, domain.StatusWarning, r.Status)
	assert.Equal(t,
		"Resource constraints detected: High CPU usage: 91.3%; High memory usage: 97%; High disk usage: 99.5%",
		r.Message)
}

func TestResourceCheckPassesUnderThreshold(t *testing.T) {
	check := newCheck(fakeSampler{snap: Snapshot{CPUPercent: 12, MemoryPercent: 89.9, DiskPercent: 90}})

	r := check.Run(context.Background())[0]

	assert.Equal(t, domain.StatusPass, r.Status)
	assert.Equal(t, "System resources healthy", r.Message)
	platform, _ := r.Details.Get("platform")
	assert.Equal(t, "Linux", platform.String())
}

func TestResourceCheckSkipsWhenUnavailable(t *testing.T) {
	check := newCheck(fakeSampler{err: errors.New("must not be called")})
	check.Available = false

	results := check.Run(context.Background())

	require.Len(t, results, 1)
	assert.Equal(t, domain.StatusSkip, results[0].Status)
}

func TestResourceCheckSamplingError(t *testing.T) {
	check := newCheck(fakeSampler{err: errors.New("permission denied")})

	r := check.Run(context.Background())[0]

	assert.Equal(t, domain.StatusFail, r.Status)
	assert.Equal(t, "System resource check error: permission denied", r.Message)
}

func TestPlatformInfo(t *testing.T) {
	info := &PlatformInfo{KernelVersion: func(context.Context) (string, error) {
		return "", errors.New("unsupported")
	}}

	p := info.Platform(context.Background())

	assert.Equal(t, "unknown", p.Release)
	assert.NotEmpty(t, p.System)
	assert.NotEmpty(t, p.GoVersion)
	assert.Equal(t, "Darwin", SystemName("darwin"))
}

// Package system samples host resources and identifies the platform.
package system

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// Snapshot is one reading of CPU, memory and root disk usage.
type Snapshot struct {
	CPUPercent    float64
	MemoryTotal   uint64
	MemoryAvail   uint64
	MemoryPercent float64
	DiskTotal     uint64
	DiskFree      uint64
	DiskPercent   float64
}

// Sampler reads a resource snapshot.
type Sampler interface {
	Sample(ctx context.Context) (Snapshot, error)
}

// HostSampler reads the local host through gopsutil.
type HostSampler struct {
	Interval time.Duration
	DiskPath string
}

// NewHostSampler samples CPU over interval and the root filesystem.
func NewHostSampler(interval time.Duration) *HostSampler {
	return &HostSampler{Interval: interval, DiskPath: RootPath()}
}

func (s *HostSampler) Sample(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	percents, err := cpu.PercentWithContext(ctx, s.Interval, false)
	if err != nil {
		return snap, err
	}
	if len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return snap, err
	}
	snap.MemoryTotal = vm.Total
	snap.MemoryAvail = vm.Available
	snap.MemoryPercent = vm.UsedPercent

	usage, err := disk.UsageWithContext(ctx, s.DiskPath)
	if err != nil {
		return snap, err
	}
	snap.DiskTotal = usage.Total
	snap.DiskFree = usage.Free
	snap.DiskPercent = usage.UsedPercent
	return snap, nil
}

// RootPath returns the filesystem root whose usage is reported.
func RootPath() string {
	if runtime.GOOS == "windows" {
		if drive := os.Getenv("SystemDrive"); drive != "" {
			return drive + `\`
		}
		return `C:\`
	}
	return "/"
}

// Probe reports whether resource inspection works on this platform.
func Probe(ctx context.Context) bool {
	if _, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		return false
	}
	_, err := disk.UsageWithContext(ctx, RootPath())
	return err == nil
}

var _ Sampler = (*HostSampler)(nil)

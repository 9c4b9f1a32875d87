package system

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/ports"
)

// PlatformInfo identifies the local host.
type PlatformInfo struct {
	// KernelVersion is swappable in tests.
	KernelVersion func(ctx context.Context) (string, error)
}

// NewPlatformInfo reads the kernel release through gopsutil.
func NewPlatformInfo() *PlatformInfo {
	return &PlatformInfo{KernelVersion: host.KernelVersionWithContext}
}

// Platform implements ports.PlatformProvider.
func (p *PlatformInfo) Platform(ctx context.Context) domain.Platform {
	release := "unknown"
	if p.KernelVersion != nil {
		if v, err := p.KernelVersion(ctx); err == nil && v != "" {
			release = v
		}
	}
	return domain.Platform{
		System:    SystemName(runtime.GOOS),
		Release:   release,
		GoVersion: runtime.Version(),
	}
}

// SystemName title-cases a GOOS value ("linux" → "Linux", "darwin" → "Darwin").
func SystemName(goos string) string {
	return cases.Title(language.English).String(goos)
}

var _ ports.PlatformProvider = (*PlatformInfo)(nil)

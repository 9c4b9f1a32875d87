// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (the doctor orchestrator) depends only on these
// abstractions. Concrete probes for Docker, PostgreSQL, n8n, third-party APIs
// and host resources live in the infrastructure layer and are wired together in
// internal/app.
package ports

import (
	"context"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
)

// ConfigProvider loads the effective checker configuration.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Check probes one module of the ecosystem.
// Run never returns an error: every failure is converted into a fail result.
// Client handles opened by Run are released before it returns.
type Check interface {
	Name() string
	Run(ctx context.Context) []domain.CheckResult
}

// CheckFunc adapts a function to the Check interface.
type CheckFunc struct {
	name string
	fn   func(context.Context) []domain.CheckResult
}

// NewCheckFunc creates a CheckFunc.
func NewCheckFunc(name string, fn func(context.Context) []domain.CheckResult) *CheckFunc {
	return &CheckFunc{name: name, fn: fn}
}

func (f *CheckFunc) Name() string { return f.name }

func (f *CheckFunc) Run(ctx context.Context) []domain.CheckResult { return f.fn(ctx) }

// PlatformProvider identifies the host for banners and exports.
type PlatformProvider interface {
	Platform(ctx context.Context) domain.Platform
}

// ReportExporter persists a run report and returns the path written.
type ReportExporter interface {
	Export(report domain.Report, path string) (string, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/ports"
)

// ErrInterrupted is returned when the run is cancelled between groups.
var ErrInterrupted = errors.New("health check interrupted")

// Indicator shows activity while a group runs.
type Indicator interface {
	Start(label string)
	Stop()
}

// Service runs the selected check groups in their fixed order.
type Service struct {
	Checks   map[domain.CheckGroup]ports.Check
	Platform ports.PlatformProvider
	Logger   ports.Logger
	Tracer   trace.Tracer

	// Progress receives the banner and per-group markers unless Silent is set.
	Progress  io.Writer
	Indicator Indicator
	Silent    bool
	Now       func() time.Time
}

// Run executes every selected group exactly once and appends results to rec.
// A nil or empty selection runs all groups.
func (s *Service) Run(ctx context.Context, rec *domain.Recorder, groups []domain.CheckGroup) error {
	selected := selectGroups(groups)
	s.banner(ctx)

	for _, group := range selected {
		if ctx.Err() != nil {
			return ErrInterrupted
		}
		check, ok := s.Checks[group]
		if !ok {
			s.logger().Warn("no check registered for group", map[string]interface{}{"group": string(group)})
			rec.Record(domain.Fail(string(group), "no check registered"))
			continue
		}
		s.progress(group.Label())
		s.startIndicator(check.Name())
		results := s.runGroup(ctx, group, check)
		s.stopIndicator()
		rec.Record(results...)
	}

	if ctx.Err() != nil {
		return ErrInterrupted
	}
	return nil
}

func (s *Service) runGroup(ctx context.Context, group domain.CheckGroup, check ports.Check) (results []domain.CheckResult) {
	ctx, span := s.tracer().Start(ctx, "check."+string(group),
		trace.WithAttributes(attribute.String("check.name", check.Name())))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.logger().Error("check panicked", fmt.Errorf("%v", r), map[string]interface{}{"group": string(group)})
			results = []domain.CheckResult{
				domain.Fail(string(group), fmt.Sprintf("Unexpected error in %s check: %v", group, r)),
			}
		}
		summary := domain.Summarize(results)
		span.SetAttributes(
			attribute.Int("check.results", summary.Total),
			attribute.Int("check.failed", summary.Failed),
			attribute.Int("check.warnings", summary.Warnings),
		)
		if summary.Failed > 0 {
			span.SetStatus(codes.Error, fmt.Sprintf("%d failed", summary.Failed))
		}
		span.End()
		s.logger().Debug("check group finished", map[string]interface{}{
			"group":    string(group),
			"results":  summary.Total,
			"duration": time.Since(start).String(),
		})
	}()

	return check.Run(ctx)
}

func (s *Service) banner(ctx context.Context) {
	if s.Silent || s.Progress == nil {
		return
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	var platform domain.Platform
	if s.Platform != nil {
		platform = s.Platform.Platform(ctx)
	}
	fmt.Fprintln(s.Progress, "🔍 Starting SBS n8n Ecosystem Health Check")
	fmt.Fprintf(s.Progress, "Platform: %s %s\n", platform.System, platform.Release)
	fmt.Fprintf(s.Progress, "Go: %s\n", platform.GoVersion)
	fmt.Fprintf(s.Progress, "Timestamp: %s\n\n", now().Format("2006-01-02 15:04:05"))
}

func (s *Service) progress(line string) {
	if s.Silent || s.Progress == nil {
		return
	}
	fmt.Fprintln(s.Progress, line)
}

func (s *Service) startIndicator(label string) {
	if s.Silent || s.Indicator == nil {
		return
	}
	s.Indicator.Start(label)
}

func (s *Service) stopIndicator() {
	if s.Silent || s.Indicator == nil {
		return
	}
	s.Indicator.Stop()
}

func (s *Service) tracer() trace.Tracer {
	if s.Tracer == nil {
		return tracenoop.NewTracerProvider().Tracer("")
	}
	return s.Tracer
}

func (s *Service) logger() ports.Logger {
	if s.Logger == nil {
		return nopLogger{}
	}
	return s.Logger
}

// selectGroups orders the selection by GroupOrder and drops duplicates.
func selectGroups(groups []domain.CheckGroup) []domain.CheckGroup {
	if len(groups) == 0 {
		return append([]domain.CheckGroup(nil), domain.GroupOrder...)
	}
	wanted := make(map[domain.CheckGroup]bool, len(groups))
	for _, g := range groups {
		wanted[g] = true
	}
	out := make([]domain.CheckGroup, 0, len(wanted))
	for _, g := range domain.GroupOrder {
		if wanted[g] {
			out = append(out, g)
		}
	}
	return out
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

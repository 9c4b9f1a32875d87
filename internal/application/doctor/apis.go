// Package doctor orchestrates the ecosystem health checks.
package doctor

import (
	"context"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/ports"
)

// Prober performs a single request and reports one result.
type Prober interface {
	Probe(ctx context.Context) domain.CheckResult
}

// ExternalAPIs runs the third-party API probes in order, one result each.
type ExternalAPIs struct {
	Probers []Prober
}

// NewExternalAPIs composes probers into the "apis" group.
func NewExternalAPIs(probers ...Prober) *ExternalAPIs {
	return &ExternalAPIs{Probers: probers}
}

func (e *ExternalAPIs) Name() string { return string(domain.GroupAPIs) }

// Run implements ports.Check.
func (e *ExternalAPIs) Run(ctx context.Context) []domain.CheckResult {
	results := make([]domain.CheckResult, 0, len(e.Probers))
	for _, p := range e.Probers {
		results = append(results, p.Probe(ctx))
	}
	return results
}

var _ ports.Check = (*ExternalAPIs)(nil)

// Package n8n probes the n8n automation engine: its health endpoint, the
// configured webhook endpoints and the pg-listener notification webhook.
package n8n

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/pkg/httpprobe"
	"github.com/sbs-ecosystem/ecocheck/internal/ports"
)

const healthResultName = "n8n_health"

// APICheck probes the n8n health endpoint and every configured webhook endpoint.
type APICheck struct {
	BaseURL   string
	Endpoints []string
	Client    *httpprobe.Client
	Now       func() time.Time
}

// NewAPICheck builds the check. baseURL falls back to cfg.N8NBaseURL when empty.
func NewAPICheck(cfg domain.Config, baseURL string) *APICheck {
	return &APICheck{
		BaseURL:   resolveBaseURL(baseURL, cfg.N8NBaseURL),
		Endpoints: cfg.Endpoints(),
		Client:    httpprobe.New(cfg.HTTPTimeoutDuration()),
		Now:       time.Now,
	}
}

func (c *APICheck) Name() string { return string(domain.GroupN8N) }

// Run implements ports.Check.
func (c *APICheck) Run(ctx context.Context) []domain.CheckResult {
	results := []domain.CheckResult{c.checkHealth(ctx)}
	for _, endpoint := range c.Endpoints {
		if endpoint == domain.N8NHealthPath {
			continue
		}
		results = append(results, c.checkEndpoint(ctx, endpoint))
	}
	return results
}

func (c *APICheck) checkHealth(ctx context.Context) domain.CheckResult {
	resp, err := c.Client.Get(ctx, c.BaseURL+domain.N8NHealthPath, nil)
	if err != nil {
		switch httpprobe.Classify(err) {
		case httpprobe.FailureConnection:
			return domain.Fail(healthResultName, fmt.Sprintf("Cannot connect to n8n at %s", c.BaseURL))
		case httpprobe.FailureTimeout:
			return domain.Fail(healthResultName, "n8n health check timed out")
		default:
			return domain.Fail(healthResultName, fmt.Sprintf("n8n health check error: %v", err))
		}
	}

	if resp.StatusCode == http.StatusOK {
		return domain.Pass(healthResultName, "n8n health endpoint responding").
			WithDetails(domain.NewDetails().
				With("status_code", domain.Int(resp.StatusCode)).
				With("response_time_ms", domain.Int(resp.Duration.Milliseconds()))).
			WithDuration(resp.Duration)
	}
	return domain.Warn(healthResultName, fmt.Sprintf("n8n health endpoint returned %d", resp.StatusCode)).
		WithDetails(domain.NewDetails().With("status_code", domain.Int(resp.StatusCode))).
		WithDuration(resp.Duration)
}

func (c *APICheck) checkEndpoint(ctx context.Context, endpoint string) domain.CheckResult {
	name := EndpointResultName(endpoint)
	url := c.BaseURL + endpoint
	payload := map[string]any{
		"test":      true,
		"timestamp": c.Now().Format(domain.TimestampFormat),
	}

	resp, err := c.Client.PostJSON(ctx, url, payload)
	if err != nil {
		return domain.Fail(name, fmt.Sprintf("Webhook %s error: %v", endpoint, err))
	}

	details := domain.NewDetails().
		With("status_code", domain.Int(resp.StatusCode)).
		With("url", domain.Text(url))

	var result domain.CheckResult
	switch resp.StatusCode {
	case http.StatusOK:
		result = domain.Pass(name, fmt.Sprintf("Webhook %s accessible", endpoint))
	case http.StatusNotFound:
		// n8n answers 404 when no active workflow listens on the path.
		result = domain.Warn(name, fmt.Sprintf("Webhook %s not configured (404 expected)", endpoint))
	default:
		result = domain.Fail(name, fmt.Sprintf("Webhook %s returned %d", endpoint, resp.StatusCode))
	}
	return result.WithDetails(details).WithDuration(resp.Duration)
}

// EndpointResultName derives the result name for an endpoint path, e.g. /metrics -> webhook__metrics.
func EndpointResultName(endpoint string) string {
	return "webhook_" + strings.ReplaceAll(endpoint, "/", "_")
}

func resolveBaseURL(primary, fallback string) string {
	base := primary
	if base == "" {
		base = fallback
	}
	return strings.TrimRight(base, "/")
}

var _ ports.Check = (*APICheck)(nil)

package n8n

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/pkg/httpprobe"
	"github.com/sbs-ecosystem/ecocheck/internal/ports"
)

const listenerResultName = "pg_listener_webhook"

// ListenerCheck sends a test notification to the webhook pg-listener forwards to.
type ListenerCheck struct {
	WebhookURL string
	Client     *httpprobe.Client
	Now        func() time.Time
}

// NewListenerCheck builds the check against <base><webhook path>/pg-notify.
func NewListenerCheck(cfg domain.Config, baseURL string) *ListenerCheck {
	return &ListenerCheck{
		WebhookURL: resolveBaseURL(baseURL, cfg.N8NBaseURL) + cfg.N8NWebhookPath + domain.PGNotifySuffix,
		Client:     httpprobe.New(cfg.HTTPTimeoutDuration()),
		Now:        time.Now,
	}
}

func (c *ListenerCheck) Name() string { return string(domain.GroupPGListener) }

// notification mirrors what pg-listener posts for a NOTIFY event.
type notification struct {
	Channel string              `json:"channel"`
	Payload notificationPayload `json:"payload"`
}

type notificationPayload struct {
	Test      bool   `json:"test"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// Run implements ports.Check.
func (c *ListenerCheck) Run(ctx context.Context) []domain.CheckResult {
	return []domain.CheckResult{c.probe(ctx)}
}

func (c *ListenerCheck) probe(ctx context.Context) domain.CheckResult {
	payload := notification{
		Channel: "health_check",
		Payload: notificationPayload{
			Test:      true,
			Timestamp: c.Now().Format(domain.TimestampFormat),
			Source:    domain.HealthCheckSource,
		},
	}

	resp, err := c.Client.PostJSON(ctx, c.WebhookURL, payload)
	if err != nil {
		return domain.Fail(listenerResultName, fmt.Sprintf("pg-listener webhook error: %v", err))
	}

	details := domain.NewDetails().
		With("webhook_url", domain.Text(c.WebhookURL)).
		With("status_code", domain.Int(resp.StatusCode))

	var result domain.CheckResult
	switch resp.StatusCode {
	case http.StatusOK:
		result = domain.Pass(listenerResultName, "pg-listener webhook accessible")
	case http.StatusNotFound:
		result = domain.Warn(listenerResultName, "pg-listener webhook endpoint exists but no workflow configured")
	default:
		result = domain.Fail(listenerResultName, fmt.Sprintf("pg-listener webhook returned %d", resp.StatusCode))
	}
	return result.WithDetails(details).WithDuration(resp.Duration)
}

var _ ports.Check = (*ListenerCheck)(nil)

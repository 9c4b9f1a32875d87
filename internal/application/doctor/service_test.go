package doctor

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/ports"
)

type callLog struct {
	calls []domain.CheckGroup
}

func (l *callLog) check(group domain.CheckGroup, results ...domain.CheckResult) ports.Check {
	return ports.NewCheckFunc(string(group), func(context.Context) []domain.CheckResult {
		l.calls = append(l.calls, group)
		return results
	})
}

func allChecks(l *callLog) map[domain.CheckGroup]ports.Check {
	return map[domain.CheckGroup]ports.Check{
		domain.GroupDocker:     l.check(domain.GroupDocker, domain.Fail("docker_daemon", "Docker daemon not accessible: refused")),
		domain.GroupDatabase:   l.check(domain.GroupDatabase, domain.Pass("database", "ok")),
		domain.GroupN8N:        l.check(domain.GroupN8N, domain.Pass("n8n_health", "ok"), domain.Warn("webhook__metrics", "404")),
		domain.GroupAPIs:       l.check(domain.GroupAPIs, domain.Skip("openai_api", "no key")),
		domain.GroupPGListener: l.check(domain.GroupPGListener, domain.Pass("pg_listener_webhook", "ok")),
		domain.GroupResources:  l.check(domain.GroupResources, domain.Pass("system_resources", "ok")),
	}
}

type staticPlatform struct{}

func (staticPlatform) Platform(context.Context) domain.Platform {
	return domain.Platform{System: "Linux", Release: "6.1", GoVersion: "go1.25.3"}
}

func names(results []domain.CheckResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestRunExecutesAllGroupsInFixedOrder(t *testing.T) {
	log := &callLog{}
	svc := &Service{Checks: allChecks(log)}
	rec := domain.NewRecorder()

	require.NoError(t, svc.Run(context.Background(), rec, nil))

	assert.Equal(t, domain.GroupOrder, log.calls)
	assert.Equal(t, []string{
		"docker_daemon", "database", "n8n_health", "webhook__metrics",
		"openai_api", "pg_listener_webhook", "system_resources",
	}, names(rec.Results()))
}

func TestRunSubsetKeepsFixedOrderAndRunsOnce(t *testing.T) {
	log := &callLog{}
	svc := &Service{Checks: allChecks(log)}

	selection := []domain.CheckGroup{domain.GroupAPIs, domain.GroupN8N, domain.GroupAPIs}
	require.NoError(t, svc.Run(context.Background(), domain.NewRecorder(), selection))

	assert.Equal(t, []domain.CheckGroup{domain.GroupN8N, domain.GroupAPIs}, log.calls)
}

func TestRunContinuesAfterFailure(t *testing.T) {
	log := &callLog{}
	svc := &Service{Checks: allChecks(log)}
	rec := domain.NewRecorder()

	groups, err := domain.PresetQuick.Groups()
	require.NoError(t, err)
	require.NoError(t, svc.Run(context.Background(), rec, groups))

	assert.Len(t, log.calls, 3, "docker failing must not stop later groups")
	summary := rec.Summary()
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, domain.VerdictUnhealthy, summary.Verdict())
}

func TestRunStopsBetweenGroupsWhenInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls []string
	svc := &Service{Checks: map[domain.CheckGroup]ports.Check{
		domain.GroupDocker: ports.NewCheckFunc("docker", func(context.Context) []domain.CheckResult {
			calls = append(calls, "docker")
			cancel()
			return []domain.CheckResult{domain.Pass("docker_n8n", "ok")}
		}),
		domain.GroupDatabase: ports.NewCheckFunc("database", func(context.Context) []domain.CheckResult {
			calls = append(calls, "database")
			return nil
		}),
	}}
	rec := domain.NewRecorder()

	err := svc.Run(ctx, rec, nil)

	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Equal(t, []string{"docker"}, calls)
	assert.Equal(t, 1, rec.Len())
}

func TestRunRecoversPanickingCheck(t *testing.T) {
	svc := &Service{Checks: map[domain.CheckGroup]ports.Check{
		domain.GroupDatabase: ports.NewCheckFunc("database", func(context.Context) []domain.CheckResult {
			panic("driver exploded")
		}),
		domain.GroupResources: ports.NewCheckFunc("resources", func(context.Context) []domain.CheckResult {
			return []domain.CheckResult{domain.Pass("system_resources", "ok")}
		}),
	}}
	rec := domain.NewRecorder()

	require.NoError(t, svc.Run(context.Background(), rec, []domain.CheckGroup{domain.GroupDatabase, domain.GroupResources}))

	results := rec.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "database", results[0].Name)
	assert.Equal(t, domain.StatusFail, results[0].Status)
	assert.Contains(t, results[0].Message, "driver exploded")
	assert.Equal(t, "system_resources", results[1].Name)
}

func TestRunRecordsFailureForUnregisteredGroup(t *testing.T) {
	svc := &Service{Checks: map[domain.CheckGroup]ports.Check{
		domain.GroupDocker: ports.NewCheckFunc("docker", func(context.Context) []domain.CheckResult {
			return []domain.CheckResult{domain.Pass("docker_n8n", "ok")}
		}),
	}}
	rec := domain.NewRecorder()

	require.NoError(t, svc.Run(context.Background(), rec, []domain.CheckGroup{domain.GroupDocker, domain.GroupResources}))

	results := rec.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "docker_n8n", results[0].Name)
	assert.Equal(t, "resources", results[1].Name)
	assert.Equal(t, domain.StatusFail, results[1].Status)
	assert.Equal(t, "no check registered", results[1].Message)
}

func TestRunWritesBannerAndProgressUnlessSilent(t *testing.T) {
	var buf bytes.Buffer
	svc := &Service{
		Checks:   allChecks(&callLog{}),
		Platform: staticPlatform{},
		Progress: &buf,
		Now:      func() time.Time { return time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC) },
	}

	require.NoError(t, svc.Run(context.Background(), domain.NewRecorder(), []domain.CheckGroup{domain.GroupDocker}))

	out := buf.String()
	assert.Contains(t, out, "Platform: Linux 6.1")
	assert.Contains(t, out, "Go: go1.25.3")
	assert.Contains(t, out, "Timestamp: 2026-05-01 08:00:00")
	assert.Contains(t, out, domain.GroupDocker.Label())
	assert.NotContains(t, out, domain.GroupDatabase.Label())

	buf.Reset()
	svc.Silent = true
	require.NoError(t, svc.Run(context.Background(), domain.NewRecorder(), nil))
	assert.Empty(t, strings.TrimSpace(buf.String()))
}

type fixedProber struct{ result domain.CheckResult }

func (p fixedProber) Probe(context.Context) domain.CheckResult { return p.result }

func TestExternalAPIsKeepsProberOrder(t *testing.T) {
	apis := NewExternalAPIs(
		fixedProber{domain.Skip("openai_api", "OpenAI API key not configured")},
		fixedProber{domain.Pass("telegram_api", "Telegram Bot API accessible - @sbs_bot")},
	)

	results := apis.Run(context.Background())

	assert.Equal(t, "apis", apis.Name())
	assert.Equal(t, []string{"openai_api", "telegram_api"}, names(results))
}

type recordingIndicator struct{ events []string }

func (r *recordingIndicator) Start(label string) { r.events = append(r.events, "start "+label) }
func (r *recordingIndicator) Stop()              { r.events = append(r.events, "stop") }

func TestRunDrivesIndicatorPerGroup(t *testing.T) {
	ind := &recordingIndicator{}
	svc := &Service{Checks: allChecks(&callLog{}), Indicator: ind}

	groups := []domain.CheckGroup{domain.GroupDocker, domain.GroupN8N}
	require.NoError(t, svc.Run(context.Background(), domain.NewRecorder(), groups))
	assert.Equal(t, []string{"start docker", "stop", "start n8n", "stop"}, ind.events)

	ind.events = nil
	svc.Silent = true
	require.NoError(t, svc.Run(context.Background(), domain.NewRecorder(), groups))
	assert.Empty(t, ind.events)
}

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearOverrides(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvSettingsPath, EnvHTTPTimeout, EnvDBTimeout, EnvDockerTimeout,
		EnvN8NBaseURL, EnvRequiredServices, EnvRequiredTables, EnvTestEndpoints,
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultsMatchDocumentedValues(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)

	assert.Equal(t, ".env", cfg.EnvFile)
	assert.Equal(t, 10, cfg.HTTPTimeout)
	assert.Equal(t, 5, cfg.DBTimeout)
	assert.Equal(t, 30, cfg.DockerTimeout)
	assert.Equal(t, "http://localhost:5678", cfg.N8NBaseURL)
	assert.Equal(t, "/webhook", cfg.N8NWebhookPath)
	assert.Equal(t, []string{"postgres", "n8n", "pg-listener"}, cfg.RequiredServices)
	assert.Len(t, cfg.RequiredTables, 9)
	assert.Equal(t, []string{"/healthz", "/metrics", "/webhook/health-check"}, cfg.TestEndpoints)
}

func TestLoadLayersSettingsEnvAndFlags(t *testing.T) {
	clearOverrides(t)
	path := filepath.Join(t.TempDir(), "settings.yaml")
	settings := "http_timeout: 3\nrequired_services: [postgres]\nn8n_base_url: http://n8n:5678/\n"
	require.NoError(t, os.WriteFile(path, []byte(settings), 0o600))

	t.Setenv(EnvDBTimeout, "7")
	t.Setenv(EnvRequiredTables, "users, tasks ,")

	loader := NewFileLoader(path, Overrides{EnvFile: "custom.env", HTTPTimeout: 20})
	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.HTTPTimeout, "flag wins over settings file")
	assert.Equal(t, 7, cfg.DBTimeout)
	assert.Equal(t, 30, cfg.DockerTimeout)
	assert.Equal(t, "custom.env", cfg.EnvFile)
	assert.Equal(t, "http://n8n:5678", cfg.N8NBaseURL)
	assert.Equal(t, []string{"postgres"}, cfg.RequiredServices)
	assert.Equal(t, []string{"users", "tasks"}, cfg.RequiredTables)
}

func TestLoadIgnoresInvalidNumericOverrides(t *testing.T) {
	clearOverrides(t)
	t.Setenv(EnvHTTPTimeout, "soon")
	t.Setenv(EnvDockerTimeout, "-1")

	cfg, err := NewFileLoader("", Overrides{}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.HTTPTimeout)
	assert.Equal(t, 30, cfg.DockerTimeout)
}

func TestLoadMissingSettingsFileIsAnError(t *testing.T) {
	clearOverrides(t)
	_, err := NewFileLoader(filepath.Join(t.TempDir(), "nope.yaml"), Overrides{}).Load(context.Background())
	assert.Error(t, err)
}

func TestLoadReturnsIndependentCopies(t *testing.T) {
	clearOverrides(t)
	loader := NewFileLoader("", Overrides{})

	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	first.RequiredServices[0] = "mutated"

	second, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "postgres", second.RequiredServices[0])
}

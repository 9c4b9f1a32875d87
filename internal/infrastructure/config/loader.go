package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sbs-ecosystem/ecocheck/assets"
	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/pkg/filesystem"
	"github.com/sbs-ecosystem/ecocheck/internal/ports"
)

// Environment variables that override settings.
const (
	EnvSettingsPath     = "ECOCHECK_SETTINGS"
	EnvHTTPTimeout      = "ECOCHECK_HTTP_TIMEOUT"
	EnvDBTimeout        = "ECOCHECK_DB_TIMEOUT"
	EnvDockerTimeout    = "ECOCHECK_DOCKER_TIMEOUT"
	EnvN8NBaseURL       = "ECOCHECK_N8N_BASE_URL"
	EnvRequiredServices = "ECOCHECK_REQUIRED_SERVICES"
	EnvRequiredTables   = "ECOCHECK_REQUIRED_TABLES"
	EnvTestEndpoints    = "ECOCHECK_TEST_ENDPOINTS"
)

// Overrides are command-line values applied last. Zero values are ignored.
type Overrides struct {
	EnvFile     string
	HTTPTimeout int
}

// FileLoader layers embedded defaults, an optional YAML settings file,
// ECOCHECK_* environment variables and command-line overrides.
type FileLoader struct {
	settingsPath string
	overrides    Overrides
}

// NewFileLoader builds a new loader. An empty path falls back to ECOCHECK_SETTINGS.
func NewFileLoader(path string, overrides Overrides) *FileLoader {
	return &FileLoader{settingsPath: path, overrides: overrides}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return domain.Config{}, err
	}

	if path := l.resolvePath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Config{}, fmt.Errorf("read settings: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if l.overrides.EnvFile != "" {
		cfg.EnvFile = l.overrides.EnvFile
	}
	if l.overrides.HTTPTimeout > 0 {
		cfg.HTTPTimeout = l.overrides.HTTPTimeout
	}

	return hydrateDefaults(cfg).Clone(), nil
}

// SettingsPath reports the settings file in effect, if any.
func (l *FileLoader) SettingsPath() string {
	return l.resolvePath()
}

// Defaults decodes the embedded default settings.
func Defaults() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultSettingsYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return cfg, nil
}

func (l *FileLoader) resolvePath() string {
	if l.settingsPath != "" {
		return expandPath(l.settingsPath)
	}
	if custom := os.Getenv(EnvSettingsPath); custom != "" {
		return expandPath(custom)
	}
	return ""
}

func applyEnv(cfg *domain.Config) {
	if n, ok := positiveInt(os.Getenv(EnvHTTPTimeout)); ok {
		cfg.HTTPTimeout = n
	}
	if n, ok := positiveInt(os.Getenv(EnvDBTimeout)); ok {
		cfg.DBTimeout = n
	}
	if n, ok := positiveInt(os.Getenv(EnvDockerTimeout)); ok {
		cfg.DockerTimeout = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvN8NBaseURL)); v != "" {
		cfg.N8NBaseURL = v
	}
	if list := splitList(os.Getenv(EnvRequiredServices)); len(list) > 0 {
		cfg.RequiredServices = list
	}
	if list := splitList(os.Getenv(EnvRequiredTables)); len(list) > 0 {
		cfg.RequiredTables = list
	}
	if list := splitList(os.Getenv(EnvTestEndpoints)); len(list) > 0 {
		cfg.TestEndpoints = list
	}
}

// hydrateDefaults restores defaults for values a settings file zeroed out.
func hydrateDefaults(cfg domain.Config) domain.Config {
	def, err := Defaults()
	if err != nil {
		return cfg
	}
	if cfg.EnvFile == "" {
		cfg.EnvFile = def.EnvFile
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = def.HTTPTimeout
	}
	if cfg.DBTimeout <= 0 {
		cfg.DBTimeout = def.DBTimeout
	}
	if cfg.DockerTimeout <= 0 {
		cfg.DockerTimeout = def.DockerTimeout
	}
	if cfg.N8NBaseURL == "" {
		cfg.N8NBaseURL = def.N8NBaseURL
	}
	if cfg.N8NWebhookPath == "" {
		cfg.N8NWebhookPath = def.N8NWebhookPath
	}
	cfg.N8NBaseURL = strings.TrimRight(cfg.N8NBaseURL, "/")
	return cfg
}

func positiveInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)

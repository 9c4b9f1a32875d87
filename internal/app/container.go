package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/trace"

	"github.com/sbs-ecosystem/ecocheck/internal/application/doctor"
	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/ai"
	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/config"
	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/docker"
	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/envfile"
	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/export"
	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/n8n"
	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/postgres"
	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/system"
	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/telegram"
	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/telemetry"
	"github.com/sbs-ecosystem/ecocheck/internal/pkg/logger"
	"github.com/sbs-ecosystem/ecocheck/internal/ports"
	"github.com/sbs-ecosystem/ecocheck/internal/version"
)

const dockerInitResult = "docker_init"

// Options carries command-line choices into the dependency graph.
type Options struct {
	SettingsPath string
	Overrides    config.Overrides
	Verbose      bool
	// Quiet limits logging to errors.
	Quiet       bool
	LogFormat   string
	LogOutput   io.Writer
	Trace       bool
	TraceOutput io.Writer
	// DockerConnector replaces the environment-based Docker client.
	DockerConnector docker.Connector
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config       domain.Config
	Environment  domain.Environment
	Capabilities domain.Capabilities
	ConfigLoader *config.FileLoader

	// Startup holds env_load and, when the Docker client could not be built, docker_init.
	Startup []domain.CheckResult

	DoctorService *doctor.Service
	Platform      ports.PlatformProvider
	Exporter      ports.ReportExporter
	Logger        ports.Logger
	Tracer        trace.Tracer

	shutdown telemetry.ShutdownFunc
}

// BuildContainer constructs the dependency graph.
//
// The configuration is loaded twice: once to find the env file, and again
// after the env file has been applied so ECOCHECK_* values set there take effect.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	log := logger.New(logger.Config{Verbose: opts.Verbose, Quiet: opts.Quiet, Format: opts.LogFormat, Output: opts.LogOutput})

	cfgLoader := config.NewFileLoader(opts.SettingsPath, opts.Overrides)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	envResult := envfile.Load(cfg.EnvFile)
	log.Debug("env file processed", map[string]interface{}{"path": cfg.EnvFile, "status": envResult.Status.String()})

	cfg, err = cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	env := envfile.Resolve()

	startup := []domain.CheckResult{envResult}

	connect := opts.DockerConnector
	if connect == nil {
		connect = docker.NewEnvConnector()
	}
	dockerOK, dockerErr := docker.Probe(connect)
	if dockerErr != nil {
		log.Warn("docker client unavailable", map[string]interface{}{"error": dockerErr.Error()})
		if !dockerOK {
			startup = append(startup, domain.Warn(dockerInitResult, fmt.Sprintf("Docker client initialization failed: %v", dockerErr)))
		}
	}

	caps := domain.Capabilities{
		Docker:    dockerOK,
		Resources: system.Probe(ctx),
		DotEnv:    envResult.Status == domain.StatusPass,
	}

	tracer, shutdown, err := telemetry.NewProvider(ctx, telemetry.Options{
		Enabled:        opts.Trace,
		Output:         opts.TraceOutput,
		ServiceName:    "ecocheck",
		ServiceVersion: version.Version,
	})
	if err != nil {
		return nil, err
	}

	platform := system.NewPlatformInfo()
	webhookBase := os.Getenv(domain.EnvN8NWebhookBaseURL)

	checks := map[domain.CheckGroup]ports.Check{
		domain.GroupDocker:   docker.NewContainerCheck(cfg, caps.Docker, connect, log),
		domain.GroupDatabase: postgres.NewCheck(cfg, env, log),
		domain.GroupN8N:      n8n.NewAPICheck(cfg, webhookBase),
		domain.GroupAPIs: doctor.NewExternalAPIs(
			ai.NewOpenAIProbe(cfg, env.OpenAIAPIKey),
			telegram.NewBotProbe(cfg, env.TelegramBotToken),
		),
		domain.GroupPGListener: n8n.NewListenerCheck(cfg, webhookBase),
		domain.GroupResources:  system.NewResourceCheck(caps.Resources, platform),
	}

	log.Debug("container built", map[string]interface{}{
		"docker":    caps.Docker,
		"resources": caps.Resources,
		"dotenv":    caps.DotEnv,
		"settings":  cfgLoader.SettingsPath(),
	})

	return &Container{
		Config:        cfg,
		Environment:   env,
		Capabilities:  caps,
		ConfigLoader:  cfgLoader,
		Startup:       startup,
		DoctorService: &doctor.Service{Checks: checks, Platform: platform, Logger: log, Tracer: tracer},
		Platform:      platform,
		Exporter:      export.NewJSONExporter(),
		Logger:        log,
		Tracer:        tracer,
		shutdown:      shutdown,
	}, nil
}

// NewRecorder returns a recorder seeded with the startup results.
func (c *Container) NewRecorder() *domain.Recorder {
	rec := domain.NewRecorder()
	rec.Record(c.Startup...)
	return rec
}

// Close flushes telemetry.
func (c *Container) Close(ctx context.Context) error {
	if c.shutdown == nil {
		return nil
	}
	return c.shutdown(ctx)
}

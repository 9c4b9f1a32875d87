package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbs-ecosystem/ecocheck/internal/app"
	"github.com/sbs-ecosystem/ecocheck/internal/application/doctor"
	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/cli/commands"
	"github.com/sbs-ecosystem/ecocheck/internal/infrastructure/config"
)

const flushTimeout = 5 * time.Second

// Options holds CLI-level configuration.
type Options struct {
	Verbose   bool
	LogFormat string
	Stderr    io.Writer
	// Build replaces app.BuildContainer.
	Build func(ctx context.Context, opts app.Options) (*app.Container, error)
	Now   func() time.Time
}

type runFlags struct {
	quick       bool
	full        bool
	dockerOnly  bool
	apiOnly     bool
	exportJSON  bool
	output      string
	silent      bool
	summaryOnly bool
	envFile     string
	settings    string
	timeout     int
	trace       bool
}

func (f runFlags) preset() domain.Preset {
	switch {
	case f.quick:
		return domain.PresetQuick
	case f.dockerOnly:
		return domain.PresetDockerOnly
	case f.apiOnly:
		return domain.PresetAPIOnly
	default:
		return domain.PresetFull
	}
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Build == nil {
		opts.Build = app.BuildContainer
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	var flags runFlags

	build := func(cmd *cobra.Command) (*app.Container, error) {
		return opts.Build(cmd.Context(), app.Options{
			SettingsPath: flags.settings,
			Overrides:    config.Overrides{EnvFile: flags.envFile, HTTPTimeout: flags.timeout},
			Verbose:      opts.Verbose,
			Quiet:        flags.silent,
			LogFormat:    opts.LogFormat,
			LogOutput:    opts.Stderr,
			Trace:        flags.trace,
			TraceOutput:  opts.Stderr,
		})
	}

	root := &cobra.Command{
		Use:   "ecocheck",
		Short: "SBS n8n ecosystem health check",
		Long: `Probes Docker services, the LifeOS database, n8n and its webhooks,
the OpenAI and Telegram APIs, the pg-listener integration and host resources.`,
		Example: `  ecocheck                      # run all checks
  ecocheck --quick              # docker, database and n8n only
  ecocheck --docker-only        # Docker services only
  ecocheck --api-only           # n8n and external APIs only
  ecocheck --export-json        # also write sbs_health_check_<time>.json
  ecocheck --config custom.env  # use another environment file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := build(cmd)
			if err != nil {
				return err
			}
			return runChecks(cmd, container, flags, opts.Now)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.envFile, "config", "", "Path to environment configuration file (default .env)")
	pf.StringVar(&flags.settings, "settings", "", "Path to a YAML settings file (default $"+config.EnvSettingsPath+")")
	pf.IntVar(&flags.timeout, "timeout", 0, "HTTP timeout in seconds (default 10)")

	f := root.Flags()
	f.BoolVar(&flags.quick, "quick", false, "Run basic checks only (docker, database, n8n)")
	f.BoolVar(&flags.full, "full", false, "Run comprehensive checks (default)")
	f.BoolVar(&flags.dockerOnly, "docker-only", false, "Check Docker services only")
	f.BoolVar(&flags.apiOnly, "api-only", false, "Check APIs and webhooks only")
	f.BoolVar(&flags.exportJSON, "export-json", false, "Export results to a JSON file")
	f.StringVarP(&flags.output, "output", "o", "", "Path of the exported JSON file (implies --export-json)")
	f.BoolVar(&flags.silent, "silent", false, "Suppress console output")
	f.BoolVar(&flags.summaryOnly, "summary-only", false, "Print the summary without per-check details")
	f.BoolVar(&flags.trace, "trace", false, "Write one OpenTelemetry span per check group to stderr")
	root.MarkFlagsMutuallyExclusive("quick", "full", "docker-only", "api-only")

	root.AddCommand(commands.NewVersionCommand())
	root.AddCommand(commands.NewConfigCommand(build))
	return root
}

func runChecks(cmd *cobra.Command, container *app.Container, flags runFlags, now func() time.Time) error {
	ctx := cmd.Context()
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := container.Close(flushCtx); err != nil {
			container.Logger.Warn("telemetry shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	groups, err := flags.preset().Groups()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := NewRenderer(out)

	svc := container.DoctorService
	svc.Progress = out
	svc.Silent = flags.silent
	if isTerminal(out) {
		svc.Indicator = NewSpinner(out)
	}

	rec := container.NewRecorder()
	if err := svc.Run(ctx, rec, groups); err != nil {
		if errors.Is(err, doctor.ErrInterrupted) {
			if !flags.silent {
				renderer.Interrupted()
			}
			return &ExitError{Code: ExitInterrupted, Err: err}
		}
		return err
	}

	results := rec.Results()
	if !flags.silent {
		renderer.Render(results, !flags.summaryOnly)
	}

	if flags.exportJSON || flags.output != "" {
		report := domain.NewReport(now(), container.Platform.Platform(ctx), results, container.Config)
		path, err := container.Exporter.Export(report, flags.output)
		if err != nil {
			return &ExitError{Code: ExitFailure, Err: err}
		}
		if !flags.silent {
			renderer.Exported(path)
		}
	}

	if code := rec.Summary().ExitCode(); code != ExitOK {
		return &ExitError{Code: code}
	}
	return nil
}

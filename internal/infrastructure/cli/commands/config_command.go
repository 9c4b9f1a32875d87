package commands

import (
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sbs-ecosystem/ecocheck/internal/app"
	configinfra "github.com/sbs-ecosystem/ecocheck/internal/infrastructure/config"
)

const msgNoDifferencesFromDefault = "No differences from default configuration."

// ContainerBuilder builds the container from the command's persistent flags.
type ContainerBuilder func(cmd *cobra.Command) (*app.Container, error)

// NewConfigCommand creates the config command with its subcommands
func NewConfigCommand(build ContainerBuilder) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective ecocheck configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithContainer(cmd, build, showConfiguration)
		},
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show settings, capabilities and the resolved environment (secrets masked)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithContainer(cmd, build, showConfiguration)
			},
		},
		&cobra.Command{
			Use:   "diff",
			Short: "Show diff versus the built-in defaults",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithContainer(cmd, build, showConfigurationDiff)
			},
		},
	)

	return configCmd
}

func runWithContainer(cmd *cobra.Command, build ContainerBuilder, fn func(io.Writer, *app.Container) error) error {
	container, err := build(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return fn(cmd.OutOrStdout(), container)
}

type configView struct {
	Settings     interface{}       `yaml:"settings"`
	SettingsFile string            `yaml:"settings_file,omitempty"`
	Capabilities map[string]bool   `yaml:"capabilities"`
	Environment  map[string]string `yaml:"environment"`
}

// showConfiguration displays the configuration in YAML format
func showConfiguration(out io.Writer, container *app.Container) error {
	view := configView{
		Settings:     container.Config,
		SettingsFile: container.ConfigLoader.SettingsPath(),
		Capabilities: map[string]bool{
			"docker":    container.Capabilities.Docker,
			"resources": container.Capabilities.Resources,
			"dotenv":    container.Capabilities.DotEnv,
		},
		Environment: container.Environment.Redacted(),
	}

	data, err := yaml.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

// showConfigurationDiff compares the effective settings with the embedded defaults
func showConfigurationDiff(out io.Writer, container *app.Container) error {
	defaults, err := configinfra.Defaults()
	if err != nil {
		return err
	}

	diff := cmp.Diff(defaults, container.Config)
	if diff == "" {
		fmt.Fprintln(out, msgNoDifferencesFromDefault)
		return nil
	}
	fmt.Fprintln(out, diff)
	return nil
}

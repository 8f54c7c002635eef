package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/taskflow/internal/app"
	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/infra/crypto"
	"github.com/runoshun/taskflow/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	var initFile, force bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create configuration",
		Long: `Display the effective configuration after merging all sources.

Configuration is read from (later wins):
  1. built-in defaults
  2. $XDG_CONFIG_HOME/taskflow/config.toml (global)
  3. <data dir>/config.toml

With --init, writes a commented template to <data dir>/config.toml.
An existing file is only replaced with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if initFile {
				return runConfigInit(cmd, c, force)
			}
			if force {
				return errors.New("--force can only be used with --init")
			}
			return runConfigShow(cmd, c)
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write the configuration template")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file (with --init)")

	cmd.AddCommand(newConfigTemplateCommand(), newConfigGenKeyCommand())

	return cmd
}

func runConfigShow(cmd *cobra.Command, c *app.Container) error {
	uc := c.ShowConfigUseCase()
	out, err := uc.Execute(cmd.Context(), usecase.ShowConfigInput{})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	// Display loaded files section
	_, _ = fmt.Fprintln(w, "[Loaded from]")
	for _, info := range []domain.ConfigInfo{out.GlobalConfig, out.LocalConfig} {
		if info.Exists {
			_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
		} else {
			_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
		}
	}
	_, _ = fmt.Fprintln(w)

	if c.Config.SlotLocation != "" {
		_, _ = fmt.Fprintln(w, "[Store location]")
		_, _ = fmt.Fprintf(w, "- %s\n", c.Config.SlotLocation)
		updated, ok, err := c.SlotUpdatedAt()
		switch {
		case err != nil:
			_, _ = fmt.Fprintf(w, "- last saved: unknown (%v)\n", err)
		case ok:
			_, _ = fmt.Fprintf(w, "- last saved: %s\n", updated.Local().Format(time.RFC3339))
		}
		_, _ = fmt.Fprintln(w)
	}

	// Display effective config in TOML format
	_, _ = fmt.Fprintln(w, "[Effective Config]")
	return formatEffectiveConfig(w, out.EffectiveConfig)
}

// formatEffectiveConfig formats the effective config in TOML format.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, c *app.Container, force bool) error {
	uc := c.InitConfigUseCase()
	out, err := uc.Execute(cmd.Context(), usecase.InitConfigInput{Force: force})
	if errors.Is(err, domain.ErrConfigExists) {
		return fmt.Errorf("%w: %s (use --force to overwrite)", domain.ErrConfigExists, out.Path)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output the configuration file template to stdout.

It does not depend on existing configuration files and works even if they are broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), domain.ConfigTemplate())
			return nil
		},
	}

	return cmd
}

// newConfigGenKeyCommand creates the config genkey subcommand.
func newConfigGenKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genkey",
		Short: "Generate an encryption key for the git backend",
		Long: `Print a random hex key for encrypting the git-backed task list.

Export it as TASKFLOW_ENCRYPTION_KEY and set encrypt = true under [store].
Keep the key: tasks saved with it cannot be read without it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := crypto.GenerateKey()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}

	return cmd
}

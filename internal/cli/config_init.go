package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jetsetgo/dispatchdesk/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project (a .dispatchdesk directory was found or --project-dir was given) it
// creates the project-local config.yaml with a .gitignore; otherwise it creates the
// global $DISPATCHDESK_HOME/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a project, creates project-local configuration at $PROJECT/.dispatchdesk/config.yaml
with a .gitignore that keeps cached responses and logs out of version control.
Use --global to initialize the global configuration even inside a project.`,
		Example: `  # Create the global configuration
  dispatchdesk config init

  # Create project-local configuration for the current directory
  dispatchdesk config init --project-dir .

  # Overwrite an existing file
  dispatchdesk config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := config.GetResolvedProjectDir()
			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "initialize the global configuration even inside a project")

	return cmd
}

// initProjectConfig creates project-local config at projectDir/config.yaml with .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	if err := os.MkdirAll(projectDir, 0o750); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}

	path, err := config.InitProjectDir(config.Default(), projectDir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}

// initGlobalConfig creates the global config file.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	cfg := config.Default()

	if !force {
		if _, err := os.Stat(cfg.Path()); err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", cfg.Path(), err)
		}
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.Path())

	return nil
}

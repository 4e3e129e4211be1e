package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jetsetgo/dispatchdesk/internal/config"
)

// ErrNoProject is returned by --project when no project directory was resolved.
var ErrNoProject = errors.New("no project directory found (use --project-dir)")

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of a configuration key",
		Example: `  dispatchdesk config get api.base_url
  dispatchdesk config get report.page_size`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(value)
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command.
func NewConfigSetCmd() *cobra.Command {
	var project bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration key and save it",
		Long: `Sets a key in the global configuration file, or in the project overlay with --project.
The value is validated before the file is written.`,
		Example: `  dispatchdesk config set api.base_url https://dispatch.example.com
  dispatchdesk config set report.page_size 25
  dispatchdesk config set cache.enabled true --project`,
		Args: cobra.ExactArgs(2), //nolint:mnd // Key and value.
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if project {
				dir := config.GetResolvedProjectDir()
				if dir == "" {
					return ErrNoProject
				}
				cfg.SetPath(filepath.Join(dir, "config.yaml"))
			}
			if err := cfg.Load(); err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			cmd.Printf("Set %s = %s in %s\n", args[0], args[1], cfg.Path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&project, "project", false, "write to the project overlay instead of the global file")
	return cmd
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every configuration key with its effective value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			for _, key := range config.Keys() {
				value, err := cfg.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", key, value)
			}
			return w.Flush()
		},
	}
}

// NewConfigPathCmd creates the config path command.
func NewConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("Global:  %s\n", config.Default().Path())
			if dir := config.GetResolvedProjectDir(); dir != "" {
				cmd.Printf("Project: %s\n", filepath.Join(dir, "config.yaml"))
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jetsetgo/dispatchdesk/internal/config"
	"github.com/jetsetgo/dispatchdesk/internal/logging"
	"github.com/jetsetgo/dispatchdesk/pkg/version"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// annotationInteractive marks commands that own the terminal. Their logs never go to stderr.
const annotationInteractive = "dispatchdesk/interactive"

// NewRootCmd creates the root Cobra command for the dispatchdesk CLI.
// It loads configuration, sets up logging and tracing, and wires the report, health,
// status, tui and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "dispatchdesk",
		Short:         "Dispatch report client",
		Long:          "dispatchdesk: browse dispatched invoices and outstanding orders from the manifest backend",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			logger.Debug().Ctx(cmd.Context()).Str("command", cmd.Name()).Msg("command finished")
			return cleanupLogging(logResult)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("dispatchdesk %s\n", version.String()))

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("api-url", "", "backend base URL (overrides config and "+config.EnvAPIURL+")")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "cache report responses for this many seconds (0 = use config default)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding a .dispatchdesk overlay")

	cmd.AddCommand(
		newReportCmd(),
		NewHealthCmd(),
		NewStatusCmd(),
		NewTUICmd(),
		newConfigCmd(),
	)

	return cmd
}

// loadConfig resolves the project directory, loads configuration and applies flag overrides.
// The result becomes the global configuration for the command.
func loadConfig(cmd *cobra.Command) error {
	cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
	if cacheTTL < 0 {
		return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
	}

	ctx := cmd.Context()
	flagDir, _ := cmd.Flags().GetString("project-dir")
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	projectDir := config.ResolveProjectDir(ctx, flagDir, cwd)
	config.SetResolvedProjectDir(projectDir)

	cfg := config.NewWithProjectDir(ctx, projectDir)
	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # Show the first page of invoices dispatched in January
  dispatchdesk report dispatched --from 2026-01-01 --to 2026-01-31

  # Search by customer and sort by manifest number
  dispatchdesk report dispatched --search acme --sort manifest_number:asc

  # Export every page as NDJSON
  dispatchdesk report dispatched --all --output ndjson

  # List outstanding orders, oldest first
  dispatchdesk report outstanding --sort invoice_date:asc

  # Open the interactive report
  dispatchdesk tui

  # Check the backend
  dispatchdesk status

  # Point at another backend
  dispatchdesk config set api.base_url https://dispatch.example.com`

// newReportCmd creates the report command group.
func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "report", Short: "Query dispatch and outstanding-order reports"}
	cmd.AddCommand(NewReportDispatchedCmd(), NewReportOutstandingCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(), NewConfigPathCmd(),
	)
	return cmd
}

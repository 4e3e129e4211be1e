package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jetsetgo/dispatchdesk/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the global file, the project overlay and
environment overrides.

This includes:
- YAML syntax of the configuration files
- api.base_url is an http(s) URL and the timeout is positive
- report defaults name a valid page size, sort field, sort order and filter type
- output and logging formats and the log level are recognised`,
		Example: `  # Validate current configuration
  dispatchdesk config validate

  # Validate and show the effective settings
  dispatchdesk config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	// New ignores a malformed file; load it again to report the syntax error.
	probe := config.Default()
	if err := probe.Load(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.Path())
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project directory: %s\n", dir)
	}
	cmd.Printf("  Backend: %s (timeout %ds)\n", cfg.API.BaseURL, cfg.API.TimeoutSeconds)
	cmd.Printf("  Page size: %d\n", cfg.Report.PageSize)
	cmd.Printf("  Default sort: %s %s\n", cfg.Report.SortField, cfg.Report.SortOrder)
	cmd.Printf("  Filter type: %s\n", cfg.Report.FilterType)
	cmd.Printf("  Search debounce: %dms\n", cfg.Report.DebounceMS)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	if cfg.Cache.Enabled {
		cmd.Printf("  Cache: %s (ttl %ds)\n", cfg.Cache.Directory, cfg.Cache.TTLSeconds)
	} else {
		cmd.Println("  Cache: disabled")
	}
}

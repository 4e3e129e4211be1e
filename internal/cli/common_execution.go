package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jetsetgo/dispatchdesk/internal/cache"
	"github.com/jetsetgo/dispatchdesk/internal/client"
	"github.com/jetsetgo/dispatchdesk/internal/config"
	"github.com/jetsetgo/dispatchdesk/internal/logging"
	"github.com/jetsetgo/dispatchdesk/pkg/version"
)

// newAPIClient builds a backend client from the global configuration and the
// --cache-ttl flag.
func newAPIClient(cmd *cobra.Command) (*client.Client, error) {
	cfg := config.GetGlobalConfig()
	opts := []client.Option{
		client.WithTimeout(config.GetRequestTimeout()),
		client.WithUserAgent(version.UserAgent()),
	}

	flagTTL, _ := cmd.Flags().GetInt("cache-ttl")
	ttl, enabled, err := cache.ResolveTTL(flagTTL, cfg.Cache.TTLSeconds, cfg.Cache.Enabled)
	if err != nil {
		return nil, err
	}
	if enabled {
		store, storeErr := cache.NewFileStore(cfg.Cache.Directory, true, ttl)
		if storeErr != nil {
			// A broken cache directory only costs the cache.
			logging.FromContext(cmd.Context()).Warn().
				Str("component", "cli").
				Str("operation", "open_cache").
				Err(storeErr).
				Str("directory", cfg.Cache.Directory).
				Msg("response cache disabled")
		} else {
			opts = append(opts, client.WithCache(store))
		}
	}

	c, err := client.New(cfg.API.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("configuring backend client: %w", err)
	}
	return c, nil
}

// commandRun records the start of a command for the completion log line.
type commandRun struct {
	command string
	params  map[string]string
	start   time.Time
}

func newCommandRun(command string, params map[string]string) *commandRun {
	return &commandRun{command: command, params: params, start: time.Now()}
}

// logFailure logs a failed command with its parameters.
func (r *commandRun) logFailure(ctx context.Context, err error) {
	logging.FromContext(ctx).Error().
		Str("component", "cli").
		Str("operation", r.command).
		Interface("params", r.params).
		Dur("duration", time.Since(r.start)).
		Bool("temporary", client.IsTemporary(err)).
		Err(err).
		Msg("command failed")
}

// logSuccess logs a completed command with the number of rows it produced.
func (r *commandRun) logSuccess(ctx context.Context, rows int) {
	logging.FromContext(ctx).Info().
		Str("component", "cli").
		Str("operation", r.command).
		Interface("params", r.params).
		Int("rows", rows).
		Dur("duration", time.Since(r.start)).
		Msg("command completed")
}

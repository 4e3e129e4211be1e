package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/jetsetgo/dispatchdesk/internal/logging"
)

// Project-local configuration.
const (
	ProjectDirName   = ".dispatchdesk"
	EnvProjectDir    = "DISPATCHDESK_PROJECT_DIR"
	maxWalkUpParents = 64
)

//nolint:gochecknoglobals // Set once per command invocation by the CLI.
var (
	resolvedProjectDir   string
	resolvedProjectDirMu sync.RWMutex
)

// SetResolvedProjectDir records the project directory resolved for the running command.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the project directory resolved for the running command,
// or "" outside a project.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .dispatchdesk directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. DISPATCHDESK_PROJECT_DIR env var
//  3. the nearest .dispatchdesk directory at or above startDir
//
// Returns an absolute path, or "" when no project directory is found.
// The home configuration directory is never treated as a project directory.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	home, _ := GetConfigDir()

	for range maxWalkUpParents {
		candidate := filepath.Join(dir, ProjectDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() && candidate != home {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// NewWithProjectDir creates a Config by loading global config then
// shallow-merging project-local config on top. If projectDir is empty,
// behaves identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return cfg
	}

	// Environment still wins over the project file.
	merged.ApplyEnv(os.LookupEnv)
	return merged
}

// toAbsProjectDir converts dir to an absolute path and appends ".dispatchdesk" unless
// it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == ProjectDirName {
		return abs
	}

	return filepath.Join(abs, ProjectDirName)
}

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetgo/dispatchdesk/internal/config"
)

// isolateHome points the global config at an empty temp dir.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvPageSize, "")
	t.Setenv(config.EnvCacheTTL, "")
}

func TestResolveProjectDir_FlagOverride(t *testing.T) {
	isolateHome(t)
	flagDir := t.TempDir()

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".dispatchdesk"), got)
	assert.True(t, filepath.IsAbs(got), "returned path must be absolute")
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	isolateHome(t)
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".dispatchdesk"), got)
}

func TestResolveProjectDir_EnvVarOverride(t *testing.T) {
	isolateHome(t)
	envDir := filepath.Join(t.TempDir(), ".dispatchdesk")
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")

	assert.Equal(t, envDir, got, "no double append")
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".dispatchdesk"), 0o755))
	subDir := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	got := config.ResolveProjectDir(context.Background(), "", subDir)

	assert.Equal(t, filepath.Join(root, ".dispatchdesk"), got)
}

func TestResolveProjectDir_NoneFound(t *testing.T) {
	isolateHome(t)

	assert.Empty(t, config.ResolveProjectDir(context.Background(), "", ""))
}

func TestNewWithProjectDir(t *testing.T) {
	isolateHome(t)
	projectDir := filepath.Join(t.TempDir(), ".dispatchdesk")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte(`
api:
  base_url: http://depot-7.local:8000
  timeout_seconds: 15
`), 0o600))

	cfg := config.NewWithProjectDir(context.Background(), projectDir)

	assert.Equal(t, "http://depot-7.local:8000", cfg.API.BaseURL)
	assert.Equal(t, 15, cfg.API.TimeoutSeconds)
	assert.Equal(t, 50, cfg.Report.PageSize, "sections absent from the overlay keep global values")
}

func TestNewWithProjectDir_EnvWins(t *testing.T) {
	isolateHome(t)
	t.Setenv(config.EnvAPIURL, "http://from-env:8000")
	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
		[]byte("api:\n  base_url: http://from-project:8000\n  timeout_seconds: 5\n"), 0o600))

	cfg := config.NewWithProjectDir(context.Background(), projectDir)

	assert.Equal(t, "http://from-env:8000", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.TimeoutSeconds)
}

func TestNewWithProjectDir_MissingOrBadOverlay(t *testing.T) {
	isolateHome(t)

	cfg := config.NewWithProjectDir(context.Background(), t.TempDir())
	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)

	bad := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bad, "config.yaml"), []byte("api: [oops"), 0o600))
	cfg = config.NewWithProjectDir(context.Background(), bad)
	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
}

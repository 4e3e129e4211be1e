package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetgo/dispatchdesk/internal/config"
)

// newDefaultTarget returns a Config with known non-zero values so tests can
// verify that absent overlay keys leave the original values intact.
func newDefaultTarget() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Report: config.ReportConfig{
			PageSize:   50,
			DebounceMS: 500,
			SortField:  "date_dispatched",
			SortOrder:  "desc",
			FilterType: "dispatch",
		},
		Output: config.OutputConfig{DefaultFormat: "table"},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Cache: config.CacheConfig{
			Enabled:    true,
			TTLSeconds: 3600,
		},
	}
}

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
output:
  default_format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, "http://localhost:8000", target.API.BaseURL)
	assert.Equal(t, 50, target.Report.PageSize)
	assert.True(t, target.Cache.Enabled)
}

func TestShallowMergeYAML_SectionReplacedWhole(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
report:
  page_size: 100
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, 100, target.Report.PageSize)
	assert.Empty(t, target.Report.SortField, "fields absent from the overlay section reset")
	assert.Zero(t, target.Report.DebounceMS)
}

func TestShallowMergeYAML_MultipleSections(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
api:
  base_url: https://dispatch.example.com
  timeout_seconds: 10
logging:
  level: debug
  format: json
cache:
  enabled: false
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "https://dispatch.example.com", target.API.BaseURL)
	assert.Equal(t, 10, target.API.TimeoutSeconds)
	assert.Equal(t, "debug", target.Logging.Level)
	assert.False(t, target.Cache.Enabled)
	assert.Equal(t, "table", target.Output.DefaultFormat)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
output:
  default_format: ndjson
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "ndjson", target.Output.DefaultFormat)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, "# nothing here\n")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, newDefaultTarget(), target)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	assert.Error(t, config.ShallowMergeYAML(nil, "irrelevant.yaml"))
	assert.Error(t, config.ShallowMergeYAML(newDefaultTarget(), filepath.Join(t.TempDir(), "missing.yaml")))

	bad := writeOverlay(t, "report: [1, 2")
	assert.Error(t, config.ShallowMergeYAML(newDefaultTarget(), bad))

	wrongType := writeOverlay(t, "report:\n  page_size: lots\n")
	assert.Error(t, config.ShallowMergeYAML(newDefaultTarget(), wrongType))
}

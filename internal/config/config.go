// Package config loads and persists dispatchdesk settings.
//
// Settings come from, in increasing precedence: built-in defaults, the YAML file at
// $DISPATCHDESK_HOME/config.yaml, environment variables, and command-line flags (applied by
// the cli package).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jetsetgo/dispatchdesk/internal/report"
)

// Defaults.
const (
	DefaultBaseURL        = "http://localhost:8000"
	DefaultTimeoutSeconds = 30
	DefaultPageSize       = 50
	DefaultDebounceMS     = 500
	DefaultSortField      = "date_dispatched"
	DefaultSortOrder      = "desc"
	DefaultFilterType     = "dispatch"
	DefaultOutputFormat   = "table"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultCacheTTL       = 300
	configFileName        = "config.yaml"
	configFilePerm        = 0o600
	maxPageSize           = 1000
)

// Environment variables read on load.
const (
	EnvHome     = "DISPATCHDESK_HOME"
	EnvAPIURL   = "DISPATCHDESK_API_URL"
	EnvLogLevel = "DISPATCHDESK_LOG_LEVEL"
	EnvPageSize = "DISPATCHDESK_PAGE_SIZE"
	EnvCacheTTL = "DISPATCHDESK_CACHE_TTL"
)

var (
	// ErrUnknownKey is returned by Get and Set for keys that do not exist.
	ErrUnknownKey = errors.New("unknown configuration key")
	// ErrInvalidValue is returned when a value fails validation.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Config is the full dispatchdesk configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Report  ReportConfig  `yaml:"report"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Cache   CacheConfig   `yaml:"cache"`

	configPath string
}

// APIConfig locates the backend.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ReportConfig holds dispatch report defaults.
type ReportConfig struct {
	PageSize   int    `yaml:"page_size"`
	DebounceMS int    `yaml:"debounce_ms"`
	SortField  string `yaml:"sort_field"`
	SortOrder  string `yaml:"sort_order"`
	FilterType string `yaml:"filter_type"`
}

// OutputConfig controls non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// CacheConfig controls the on-disk response cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds"`
	Directory  string `yaml:"directory"`
}

// Default returns a Config holding only built-in defaults. File paths are resolved
// against the configuration directory.
func Default() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), ".dispatchdesk")
	}
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Report: ReportConfig{
			PageSize:   DefaultPageSize,
			DebounceMS: DefaultDebounceMS,
			SortField:  DefaultSortField,
			SortOrder:  DefaultSortOrder,
			FilterType: DefaultFilterType,
		},
		Output: OutputConfig{DefaultFormat: DefaultOutputFormat},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   filepath.Join(dir, "logs", "dispatchdesk.log"),
		},
		Cache: CacheConfig{
			Enabled:    false,
			TTLSeconds: DefaultCacheTTL,
			Directory:  filepath.Join(dir, "cache"),
		},
		configPath: filepath.Join(dir, configFileName),
	}
}

// New returns defaults overlaid with the config file, if present, and environment overrides.
// A malformed config file is ignored so that a broken file never blocks the CLI; Validate
// reports it.
func New() *Config {
	cfg := Default()
	_ = cfg.Load()
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// Path returns the file this config loads from and saves to.
func (c *Config) Path() string {
	return c.configPath
}

// SetPath changes the file used by Load and Save.
func (c *Config) SetPath(path string) {
	c.configPath = path
}

// Load reads the config file onto c. A missing file is not an error.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes c to its config file, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// ApplyEnv applies environment overrides. Unparseable numeric values are ignored.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvPageSize); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Report.PageSize = n
		}
	}
	if v, ok := lookupEnv(EnvCacheTTL); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Cache.TTLSeconds = n
			c.Cache.Enabled = n > 0
		}
	}
}

var (
	validFormats     = []string{"table", "json", "ndjson"}                       //nolint:gochecknoglobals // Lookup table.
	validLogFormats  = []string{"console", "json"}                               //nolint:gochecknoglobals // Lookup table.
	validLogLevels   = []string{"trace", "debug", "info", "warn", "error", "off"} //nolint:gochecknoglobals // Lookup table.
	validFilterTypes = []string{"dispatch", "manifest"}                          //nolint:gochecknoglobals // Lookup table.
	validSortOrders  = []string{"asc", "desc"}                                   //nolint:gochecknoglobals // Lookup table.
)

// Validate checks every section and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: api.base_url must be an http(s) URL, got %q", ErrInvalidValue, c.API.BaseURL))
	}
	if c.API.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("%w: api.timeout_seconds must be positive", ErrInvalidValue))
	}
	if c.Report.PageSize < 1 || c.Report.PageSize > maxPageSize {
		errs = append(errs, fmt.Errorf("%w: report.page_size must be between 1 and %d", ErrInvalidValue, maxPageSize))
	}
	if c.Report.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: report.debounce_ms must be non-negative", ErrInvalidValue))
	}
	if !report.IsDispatchSortField(c.Report.SortField) {
		errs = append(errs, fmt.Errorf("%w: report.sort_field must be one of %s, got %q",
			ErrInvalidValue, strings.Join(report.DispatchSortFields, ", "), c.Report.SortField))
	}
	errs = appendIfInvalid(errs, "report.sort_order", strings.ToLower(c.Report.SortOrder), validSortOrders)
	errs = appendIfInvalid(errs, "report.filter_type", c.Report.FilterType, validFilterTypes)
	errs = appendIfInvalid(errs, "output.default_format", c.Output.DefaultFormat, validFormats)
	errs = appendIfInvalid(errs, "logging.level", strings.ToLower(c.Logging.Level), validLogLevels)
	errs = appendIfInvalid(errs, "logging.format", c.Logging.Format, validLogFormats)
	if c.Cache.TTLSeconds < 0 {
		errs = append(errs, fmt.Errorf("%w: cache.ttl_seconds must be non-negative", ErrInvalidValue))
	}

	return errors.Join(errs...)
}

func appendIfInvalid(errs []error, key, value string, valid []string) []error {
	if slices.Contains(valid, value) {
		return errs
	}
	return append(errs, fmt.Errorf("%w: %s must be one of %s, got %q",
		ErrInvalidValue, key, strings.Join(valid, ", "), value))
}

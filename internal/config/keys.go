package config

import (
	"fmt"
	"sort"
	"strconv"
)

// field binds a dotted key to a Config value.
type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringField(ptr func(c *Config) *string) field {
	return field{
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error {
			*ptr(c) = v
			return nil
		},
	}
}

func intField(ptr func(c *Config) *int) field {
	return field{
		get: func(c *Config) string { return strconv.Itoa(*ptr(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, v)
			}
			*ptr(c) = n
			return nil
		},
	}
}

func boolField(ptr func(c *Config) *bool) field {
	return field{
		get: func(c *Config) string { return strconv.FormatBool(*ptr(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
			}
			*ptr(c) = b
			return nil
		},
	}
}

//nolint:gochecknoglobals // Static key table.
var fields = map[string]field{
	"api.base_url":          stringField(func(c *Config) *string { return &c.API.BaseURL }),
	"api.timeout_seconds":   intField(func(c *Config) *int { return &c.API.TimeoutSeconds }),
	"report.page_size":      intField(func(c *Config) *int { return &c.Report.PageSize }),
	"report.debounce_ms":    intField(func(c *Config) *int { return &c.Report.DebounceMS }),
	"report.sort_field":     stringField(func(c *Config) *string { return &c.Report.SortField }),
	"report.sort_order":     stringField(func(c *Config) *string { return &c.Report.SortOrder }),
	"report.filter_type":    stringField(func(c *Config) *string { return &c.Report.FilterType }),
	"output.default_format": stringField(func(c *Config) *string { return &c.Output.DefaultFormat }),
	"logging.level":         stringField(func(c *Config) *string { return &c.Logging.Level }),
	"logging.format":        stringField(func(c *Config) *string { return &c.Logging.Format }),
	"logging.file":          stringField(func(c *Config) *string { return &c.Logging.File }),
	"logging.max_size_mb":   intField(func(c *Config) *int { return &c.Logging.MaxSizeMB }),
	"logging.max_backups":   intField(func(c *Config) *int { return &c.Logging.MaxBackups }),
	"logging.max_age_days":  intField(func(c *Config) *int { return &c.Logging.MaxAgeDays }),
	"cache.enabled":         boolField(func(c *Config) *bool { return &c.Cache.Enabled }),
	"cache.ttl_seconds":     intField(func(c *Config) *int { return &c.Cache.TTLSeconds }),
	"cache.directory":       stringField(func(c *Config) *string { return &c.Cache.Directory }),
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a dotted key such as "report.page_size".
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set assigns a dotted key. When the config was valid beforehand the result is validated
// and the change is rolled back on failure.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	previous := f.get(c)
	wasValid := c.Validate() == nil
	if err := f.set(c, value); err != nil {
		return err
	}
	if !wasValid {
		return nil
	}
	if err := c.Validate(); err != nil {
		_ = f.set(c, previous)
		return err
	}
	return nil
}

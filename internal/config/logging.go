package config

import (
	"github.com/jetsetgo/dispatchdesk/internal/logging"
)

// ToLoggingConfig converts the logging section into a logging.Config.
func (l LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:      l.Level,
		Format:     l.Format,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
	}
}

// GetLoggingConfig returns a copy of the global logging section.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}

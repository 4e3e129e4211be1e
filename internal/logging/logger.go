// Package logging configures zerolog for dispatchdesk and carries loggers and trace IDs
// through context.Context.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Rotation defaults for file output.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// logDirPerm is the permission used when creating the log directory.
const logDirPerm = 0o700

// Config selects level, format and destination of log output.
type Config struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Stderr receives output when File is empty or cannot be opened. Defaults to os.Stderr.
	Stderr io.Writer
}

// LogPathResult is the logger built from a Config together with where its output goes.
type LogPathResult struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	closer io.Closer
}

// Close releases the log file, if one was opened.
func (r *LogPathResult) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// NewLoggerWithPath builds a logger from cfg. File output is rotated with lumberjack; when the
// log directory cannot be created the logger falls back to stderr and records why.
func NewLoggerWithPath(cfg Config) LogPathResult {
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	level := ParseLevel(cfg.Level)
	result := LogPathResult{}

	var out io.Writer = stderr
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), logDirPerm); err != nil {
			result.FallbackUsed = true
			result.FallbackReason = fmt.Sprintf("cannot create log directory: %v", err)
		} else {
			rotator := &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    orDefault(cfg.MaxSizeMB, DefaultMaxSizeMB),
				MaxBackups: orDefault(cfg.MaxBackups, DefaultMaxBackups),
				MaxAge:     orDefault(cfg.MaxAgeDays, DefaultMaxAgeDays),
			}
			out = rotator
			result.closer = rotator
			result.UsingFile = true
			result.FilePath = cfg.File
		}
	}

	if !strings.EqualFold(cfg.Format, FormatJSON) {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    result.UsingFile,
		}
	}

	result.Logger = zerolog.New(out).
		Level(level).
		Hook(traceHook{}).
		With().
		Timestamp().
		Logger()
	return result
}

// NewLogger builds a logger from cfg, discarding path information.
func NewLogger(cfg Config) zerolog.Logger {
	return NewLoggerWithPath(cfg).Logger
}

// ParseLevel parses a zerolog level name, falling back to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// ComponentLogger returns a child logger tagged with component.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where log output is going.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user that file logging could not be enabled.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: file logging disabled, %s\n", reason)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

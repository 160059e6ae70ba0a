// Package logging provides zerolog-based structured logging for pathscribe.
//
// Loggers are carried on the context: commands attach a configured logger
// with WithContext and downstream packages retrieve it with FromContext,
// so library code never constructs its own logger.
package logging

import (
	"context"
	"crypto/rand"
	"io"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level to emit (debug, info, warn, error).
	Level string

	// Format selects "console" (human-readable) or "json" output.
	Format string

	// File, when non-empty, duplicates output to the given log file.
	File string
}

// Result holds the constructed logger and any file handle that must be
// closed when the command finishes.
type Result struct {
	Logger zerolog.Logger

	// UsingFile reports whether log output is being written to FilePath.
	UsingFile bool
	FilePath  string

	// FallbackReason is set when a configured log file could not be
	// opened and output fell back to stderr only.
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any.
func (r *Result) Close() {
	if r.file != nil {
		_ = r.file.Close()
		r.file = nil
	}
}

// New constructs a logger from cfg. Unknown levels default to info. A log
// file that cannot be opened degrades to stderr-only output with
// FallbackReason set rather than failing the command.
func New(cfg Config) Result {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	if strings.EqualFold(cfg.Format, "json") {
		writers = append(writers, os.Stderr)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	result := Result{}
	if cfg.File != "" {
		f, fileErr := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if fileErr != nil {
			result.FallbackReason = fileErr.Error()
		} else {
			result.file = f
			result.UsingFile = true
			result.FilePath = cfg.File
			writers = append(writers, f)
		}
	}

	result.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return result
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger attached to ctx, or a disabled logger
// when none was attached (keeps library code free of nil checks).
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx for retrieval via FromContext.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// NewRunID generates a ULID identifying a single CLI invocation. Run IDs
// appear on every log line so interleaved runs sharing a log file can be
// told apart.
func NewRunID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

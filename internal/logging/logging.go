// Package logging configures the global zerolog logger. The TUI owns stdout,
// so logs go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options select the log destination and format.
type Options struct {
	// File is the log path; empty discards all output.
	File   string
	Level  string
	Format string
}

// Setup points log.Logger at opts.File. The returned closer releases the
// file and is never nil.
func Setup(opts Options) (io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nopCloser{}, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	if opts.File == "" {
		log.Logger = zerolog.Nop()
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nopCloser{}, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nopCloser{}, fmt.Errorf("opening log file: %w", err)
	}

	log.Logger = New(f, level, opts.Format)
	return f, nil
}

// New builds a logger writing to w. Format "console" uses zerolog's
// human-readable writer without colors; anything else writes JSON.
func New(w io.Writer, level zerolog.Level, format string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

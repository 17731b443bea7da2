// Package logging builds the zerolog loggers used across salonboard.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DebugLogPath is the fixed path for TUI debug logs, easy to find and tail.
const DebugLogPath = "salonboard-debug.log"

// Options select where logs go.
type Options struct {
	// Debug writes JSON lines to Path (DebugLogPath if empty).
	Debug bool
	Path  string
	// Console writes human-readable lines to Out (stderr if nil).
	// Used by long-running commands; ignored when Debug is set.
	Console bool
	Out     io.Writer
	// Verbose lowers the console level from info to debug.
	Verbose bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup returns a logger for opts and a closer for any file it opened.
// With neither Debug nor Console set the logger discards everything.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	switch {
	case opts.Debug:
		path := opts.Path
		if path == "" {
			path = DebugLogPath
		}
		f, err := os.Create(path)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("creating debug log: %w", err)
		}
		logger := zerolog.New(f).Level(zerolog.DebugLevel).With().Timestamp().Logger()
		logger.Debug().Str("log_file", path).Msg("debug start")
		return logger, f, nil

	case opts.Console:
		out := opts.Out
		if out == nil {
			out = os.Stderr
		}
		w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		level := zerolog.InfoLevel
		if opts.Verbose {
			level = zerolog.DebugLevel
		}
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), nopCloser{}, nil
	}

	return zerolog.Nop(), nopCloser{}, nil
}

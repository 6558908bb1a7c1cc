// Package logging builds the diagnostic logger used across the CLI.
//
// Diagnostics go to stderr and stay quiet by default so command output on
// stdout is exactly what the user asked for.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the diagnostic logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json, logfmt
	Prefix string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Level:  "warn",
		Format: "text",
		Prefix: "todo",
	}
}

// New creates a logger writing to w. Unknown level or format names are
// reported as errors rather than silently replaced.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := ParseFormatter(opts.Format)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:     level,
		Formatter: formatter,
		Prefix:    opts.Prefix,
	}), nil
}

// ParseLevel parses a level name. An empty name selects warn, and
// "warning" is accepted as an alias.
func ParseLevel(level string) (log.Level, error) {
	switch name := strings.ToLower(strings.TrimSpace(level)); name {
	case "", "warning":
		return log.WarnLevel, nil
	default:
		lvl, err := log.ParseLevel(name)
		if err != nil {
			return log.WarnLevel, fmt.Errorf("unknown log level %q", level)
		}
		return lvl, nil
	}
}

// ParseFormatter parses a formatter name. An empty name selects text.
func ParseFormatter(format string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unknown log format %q", format)
	}
}

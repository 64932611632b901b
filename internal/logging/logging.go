// Package logging builds the leveled stderr logger used by the tl commands.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

type Options struct {
	Level   string
	Verbose bool
}

func New(w io.Writer, opts Options) (*log.Logger, error) {
	level := log.WarnLevel
	if trimmed := strings.TrimSpace(opts.Level); trimmed != "" {
		parsed, err := log.ParseLevel(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:     level,
		Formatter: log.TextFormatter,
		Prefix:    "tl",
	}), nil
}

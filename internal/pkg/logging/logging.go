// Package logging builds the zerolog logger shared by the server and the CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the given level.
// format is "json" (default) or "console"/"pretty" for human output.
func New(level, format string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console", "pretty":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "":
		return zerolog.InfoLevel
	case "disabled", "none", "off":
		return zerolog.Disabled
	case "warning":
		return zerolog.WarnLevel
	}
	if l, err := zerolog.ParseLevel(level); err == nil {
		return l
	}
	return zerolog.InfoLevel
}

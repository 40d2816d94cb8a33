package config

import (
	"io"
	"log/slog"

	"git.home.luguber.info/inful/mdhtml/internal/foundation/normalization"
)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewEnumNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// ParseLogFormat maps raw to a LogFormat. Empty selects text; unknown
// values are rejected.
func ParseLogFormat(raw string) (LogFormat, error) {
	return logFormatNormalizer.NormalizeWithValidation(raw)
}

// LogFormatValues lists the accepted spellings.
func LogFormatValues() []string { return logFormatNormalizer.ValidValues() }

// NewLogger builds the process logger: Info level, Debug when verbose.
func NewLogger(w io.Writer, format LogFormat, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

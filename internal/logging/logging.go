// =============================================================================
// passwd2json - Logging
// =============================================================================
//
// zerolog setup for the CLI and an adapter that satisfies the converter's
// Logger interface.
//
// =============================================================================

package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SetLevel sets the global zerolog level from a level name. Unknown names
// fall back to info.
func SetLevel(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	zerolog.SetGlobalLevel(ParseLevel(level))
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a logger writing to w. format "json" emits JSON lines;
// anything else uses the human-readable console writer.
func New(format string, w io.Writer) zerolog.Logger {
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Adapter exposes a zerolog.Logger through printf-style methods.
type Adapter struct {
	log zerolog.Logger
}

// NewAdapter wraps l.
func NewAdapter(l zerolog.Logger) *Adapter {
	return &Adapter{log: l}
}

func (a *Adapter) Debug(msg string, args ...interface{}) {
	a.log.Debug().Msgf(msg, args...)
}

func (a *Adapter) Info(msg string, args ...interface{}) {
	a.log.Info().Msgf(msg, args...)
}

func (a *Adapter) Warn(msg string, args ...interface{}) {
	a.log.Warn().Msgf(msg, args...)
}

func (a *Adapter) Error(msg string, args ...interface{}) {
	a.log.Error().Msgf(msg, args...)
}

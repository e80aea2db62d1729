package telemetry

import (
	"log/slog"
	"os"
	"strings"
)

// serviceName tags every log record so aggregators can separate this backend
// from the site frontend and any sidecars sharing the same stream.
const serviceName = "cms-backend"

// SetupLogger installs the global slog default logger from the configured
// format and level strings.
//
// format: "json"  → JSONHandler (machine readable; recommended for production)
//
//	anything else → TextHandler (human readable; suitable for local development)
//
// level is parsed by ParseLevel. Installing the logger as the default lets
// slog.Info/Warn/Error calls elsewhere use it without carrying a *slog.Logger
// around.
func SetupLogger(format, level string) {
	lvl := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug, // include file:line only when debugging
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler).With(slog.String("service", serviceName)))
	slog.Info("logger initialised", "format", format, "level", lvl.String())
}

// ParseLevel maps a configuration string to a slog.Level. Unknown or empty
// values default to info; "warning" is accepted as an alias for warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

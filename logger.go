package svgrender

import (
	"log/slog"

	"github.com/benoitkugler/svgrender/internal/logging"
)

// SetLogger configures the logger for svgrender and all its sub-packages.
// By default, nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: timing of the pipeline steps, skipped font files
//   - [slog.LevelWarn]: font enumeration failures, invalid content when
//     the error mode is "warn"
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) { logging.Set(l) }

// Logger returns the current logger. It is never nil.
func Logger() *slog.Logger { return logging.Logger() }

package postfx

import (
	"log/slog"
	"sync"

	"github.com/gogpu/postfx/internal/logging"
)

// SetLogger configures the logger for postfx and all its sub-packages.
// By default, postfx produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by postfx:
//   - [slog.LevelDebug]: per-frame diagnostics (mode, buffer sizes, mip levels)
//   - [slog.LevelInfo]: lifecycle events (pipeline enabled, LUT installed)
//   - [slog.LevelWarn]: non-fatal issues (missing capability, rejected LUT strip)
//   - [slog.LevelError]: aborted frames
//
// Example:
//
//	postfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
//
// Backends of open pipelines that accept a logger receive the new one too.
func SetLogger(l *slog.Logger) {
	logging.Set(l)

	l = logging.Logger()
	attachedMu.Lock()
	defer attachedMu.Unlock()
	for _, ls := range attached {
		ls.SetLogger(l)
	}
}

// Logger returns the current logger used by postfx.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}

// loggerSetter is implemented by backends that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// Backends of open pipelines that accept a logger, keyed by pipeline.
var (
	attachedMu sync.Mutex
	attached   = make(map[*Pipeline]loggerSetter)
)

// attachLogger passes the current logger to the backend of p if it
// implements loggerSetter, and keeps it updated by SetLogger until
// detachLogger.
func attachLogger(p *Pipeline) {
	ls, ok := p.backend.(loggerSetter)
	if !ok {
		return
	}
	attachedMu.Lock()
	defer attachedMu.Unlock()
	ls.SetLogger(Logger())
	attached[p] = ls
}

func detachLogger(p *Pipeline) {
	attachedMu.Lock()
	defer attachedMu.Unlock()
	delete(attached, p)
}

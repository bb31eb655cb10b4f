package tinydi

import (
	"log/slog"
	"sync/atomic"

	"github.com/go-logr/logr"
)

var defaultLogger atomic.Pointer[logr.Logger]

// SetDefaultLogger replaces logger used by containers created without WithLogger.
func SetDefaultLogger(log logr.Logger) {
	defaultLogger.Store(&log)
}

func logger() logr.Logger {
	if log := defaultLogger.Load(); log != nil {
		return *log
	}

	return logr.FromSlogHandler(slog.Default().Handler())
}

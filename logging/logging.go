// Package logging is a small leveled logger that hands zapcore entries to appenders.
package logging

import (
	"os"
	"sync"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	globalMu     sync.RWMutex
	globalLogger = New("ddrive", INFO, NewWriterAppender(os.Stderr))
)

// ReplaceGlobal sets the logger returned by Global.
func ReplaceGlobal(logger Logger) {
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}

// Global returns the process wide logger. It starts out printing Info and above to stderr.
func Global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// NewBlankLogger returns a logger without appenders.
func NewBlankLogger(name string) Logger {
	return New(name, DEBUG)
}

// NewTestLogger returns a debug logger printing through tb.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is NewTestLogger that also records every entry for assertions.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	core, observed := observer.New(zapcore.DebugLevel)
	return New("", DEBUG, NewTestAppender(tb), core), observed
}

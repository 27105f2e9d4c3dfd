package logging

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity a Logger emits. INFO is the zero value.
type Level int

// Levels in increasing severity.
const (
	DEBUG Level = iota - 1
	INFO
	WARN
	ERROR
)

func (level Level) String() string {
	return level.zap().CapitalString()
}

// LevelFromString parses debug, info, warn (or warning) and error, ignoring case.
func LevelFromString(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, errors.Errorf("unknown log level %q", s)
	}
}

func (level Level) zap() zapcore.Level {
	// both scales put debug at -1 and step by one
	return zapcore.Level(level)
}

// AtomicLevel is a Level safe for concurrent Set and Get.
type AtomicLevel struct {
	val *atomic.Int32
}

// NewAtomicLevelAt returns an AtomicLevel holding level.
func NewAtomicLevelAt(level Level) AtomicLevel {
	return AtomicLevel{val: atomic.NewInt32(int32(level))}
}

// Set stores level.
func (a AtomicLevel) Set(level Level) {
	a.val.Store(int32(level))
}

// Get loads the level.
func (a AtomicLevel) Get() Level {
	return Level(a.val.Load())
}

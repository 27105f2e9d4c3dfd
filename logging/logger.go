package logging

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface of the kinematics model and the ddrive command.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})

	// Sublogger returns a logger named "<name>.<subname>" that starts at this logger's level and
	// shares its appenders.
	Sublogger(subname string) Logger
	SetLevel(level Level)
	GetLevel() Level
	Sync() error
}

type logger struct {
	name      string
	level     AtomicLevel
	appenders []Appender
}

// New returns a Logger emitting entries at or above level to every appender.
func New(name string, level Level, appenders ...Appender) Logger {
	return &logger{name: name, level: NewAtomicLevelAt(level), appenders: appenders}
}

func (l *logger) Sublogger(subname string) Logger {
	name := subname
	if l.name != "" {
		name = l.name + "." + subname
	}
	return &logger{name: name, level: NewAtomicLevelAt(l.level.Get()), appenders: l.appenders}
}

func (l *logger) SetLevel(level Level) {
	l.level.Set(level)
}

func (l *logger) GetLevel() Level {
	return l.level.Get()
}

func (l *logger) Sync() error {
	var err error
	for _, a := range l.appenders {
		err = multierr.Append(err, a.Sync())
	}
	return err
}

func (l *logger) enabled(level Level) bool {
	return level >= l.level.Get()
}

// Debugw logs msg with key/value pairs. fmt.Stringer values are only rendered by appenders that
// encode the field, so they cost nothing while debug is off.
func (l *logger) Debugw(msg string, keysAndValues ...interface{}) {
	if l.enabled(DEBUG) {
		l.write(DEBUG, msg, toFields(keysAndValues))
	}
}

func (l *logger) Infof(template string, args ...interface{}) {
	if l.enabled(INFO) {
		l.write(INFO, fmt.Sprintf(template, args...), nil)
	}
}

func (l *logger) Errorf(template string, args ...interface{}) {
	if l.enabled(ERROR) {
		l.write(ERROR, fmt.Sprintf(template, args...), nil)
	}
}

// write must be called directly by the exported logging method so the caller lookup lands on
// user code.
func (l *logger) write(level Level, msg string, fields []zapcore.Field) {
	entry := zapcore.Entry{
		Level:      level.zap(),
		Time:       time.Now().UTC(),
		LoggerName: l.name,
		Message:    msg,
		Caller:     zapcore.NewEntryCaller(runtime.Caller(2)),
	}
	var err error
	for _, a := range l.appenders {
		err = multierr.Append(err, a.Write(entry, fields))
	}
	if err != nil {
		//nolint:errcheck
		fmt.Fprintln(os.Stderr, err)
	}
}

func toFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.String(key, "unpaired log key"))
			break
		}
		switch v := keysAndValues[i+1].(type) {
		case error:
			fields = append(fields, zap.NamedError(key, v))
		case fmt.Stringer:
			fields = append(fields, zap.Stringer(key, v))
		default:
			fields = append(fields, zap.Any(key, v))
		}
	}
	return fields
}

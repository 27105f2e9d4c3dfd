package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

// TimeFormat is the timestamp layout of console lines.
const TimeFormat = "2006-01-02T15:04:05.000Z0700"

// Appender receives every entry a Logger emits at or above its level. It is the write half of
// zapcore.Core, so a zap core such as the test observer is an Appender as is.
type Appender interface {
	Write(zapcore.Entry, []zapcore.Field) error
	Sync() error
}

type writerAppender struct {
	w io.Writer
}

// NewWriterAppender returns an Appender printing one tab separated line per entry to w.
func NewWriterAppender(w io.Writer) Appender {
	return writerAppender{w}
}

func (a writerAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	line, err := formatLine(entry, fields)
	if _, werr := fmt.Fprintln(a.w, line); werr != nil {
		return werr
	}
	return err
}

func (a writerAppender) Sync() error {
	return nil
}

type tbAppender struct {
	tb testing.TB
}

// NewTestAppender returns an Appender that prints through tb.Log, keeping lines with the test
// that produced them.
func NewTestAppender(tb testing.TB) Appender {
	return tbAppender{tb}
}

func (a tbAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	a.tb.Helper()
	line, err := formatLine(entry, fields)
	a.tb.Log(line)
	return err
}

func (a tbAppender) Sync() error {
	return nil
}

// formatLine renders time, level, logger name, caller, message and the JSON encoded fields. On a
// field encoding error the line is still returned without the fields.
func formatLine(entry zapcore.Entry, fields []zapcore.Field) (string, error) {
	parts := []string{entry.Time.Format(TimeFormat), entry.Level.CapitalString()}
	if entry.LoggerName != "" {
		parts = append(parts, entry.LoggerName)
	}
	if entry.Caller.Defined {
		dir, file := filepath.Split(entry.Caller.File)
		parts = append(parts, fmt.Sprintf("%s/%s:%d", filepath.Base(dir), file, entry.Caller.Line))
	}
	parts = append(parts, entry.Message)
	if len(fields) == 0 {
		return strings.Join(parts, "\t"), nil
	}

	// The JSON encoder keeps fields in call order.
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{SkipLineEnding: true})
	buf, err := enc.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		return strings.Join(parts, "\t"), err
	}
	defer buf.Free()
	return strings.Join(append(parts, buf.String()), "\t"), nil
}

package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger provides structured logging. Values under secret-looking keys are
// redacted.
type Logger struct {
	base *logrus.Logger
}

var defaultLogger = New(os.Stderr)

// New creates a JSON logger writing to w at INFO level.
func New(w io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.JSONFormatter{})
	return &Logger{base: l}
}

// SetLevelName sets the default logger level from a name such as "debug".
func SetLevelName(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	defaultLogger.base.SetLevel(lvl)
	return nil
}

// SetFormat switches the default logger between "json" and "text" output.
func SetFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		defaultLogger.base.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		defaultLogger.base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

// SetOutput redirects the default logger.
func SetOutput(w io.Writer) { defaultLogger.base.SetOutput(w) }

// Debug emits a DEBUG-level structured log entry.
func Debug(msg string, fields ...interface{}) { defaultLogger.Debug(msg, fields...) }

// Info emits an INFO-level structured log entry.
func Info(msg string, fields ...interface{}) { defaultLogger.Info(msg, fields...) }

// Warn emits a WARN-level structured log entry.
func Warn(msg string, fields ...interface{}) { defaultLogger.Warn(msg, fields...) }

// Error emits an ERROR-level structured log entry.
func Error(msg string, fields ...interface{}) { defaultLogger.Error(msg, fields...) }

func (l *Logger) Debug(msg string, fields ...interface{}) { l.entry(fields).Debug(msg) }
func (l *Logger) Info(msg string, fields ...interface{})  { l.entry(fields).Info(msg) }
func (l *Logger) Warn(msg string, fields ...interface{})  { l.entry(fields).Warn(msg) }
func (l *Logger) Error(msg string, fields ...interface{}) { l.entry(fields).Error(msg) }

// entry parses key-value pairs from fields. A trailing key without a value
// is dropped.
func (l *Logger) entry(fields []interface{}) *logrus.Entry {
	data := make(logrus.Fields, len(fields)/2)
	for i := 0; i < len(fields)-1; i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		data[key] = redactValue(key, fmt.Sprintf("%v", fields[i+1]))
	}
	return l.base.WithFields(data)
}

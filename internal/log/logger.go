// Package log wraps logrus behind the small logging surface the rest of
// the application uses. The navigator owns the terminal, so log output
// always goes to a file, never to stdout/stderr.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

var logger = newDefaultLogger()

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// Setup directs log output to path and sets the level from the verbosity
// count (0 silent, 1 info, 2 debug, 3+ trace). An empty path derives a
// per-process file under dataDir.
func Setup(verbose int, path, dataDir string) error {
	if verbose <= 0 {
		logger.SetOutput(io.Discard)
		return nil
	}

	if path == "" {
		path = filepath.Join(dataDir, fmt.Sprintf("qs-%s-%d.log",
			time.Now().Format("2006-01-02"), os.Getpid()))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	logger.SetOutput(f)

	switch verbose {
	case 1:
		logger.SetLevel(logrus.InfoLevel)
	case 2:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.TraceLevel)
	}
	return nil
}

// F builds a single logrus field, a small convenience for WithFields call sites.
func F(key string, value interface{}) logrus.Fields {
	return logrus.Fields{key: value}
}

// WithFields returns an entry carrying structured fields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

// Info logs a formatted informational message
func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	logger.Debugf(msg+": %v", args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	logger.Warnf(msg+": %v", args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	logger.Errorf(msg+": %v", args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

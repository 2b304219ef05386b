package commands

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

// Logger writes client log entries through logrus to stderr.
type Logger struct {
	entry *logrus.Logger
}

// NewLogger creates a logger. With debug set, HTTP traces are shown.
func NewLogger(debug bool) *Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	return &Logger{entry: logger}
}

// Debug implements c8y.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

// Info implements c8y.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

// Warn implements c8y.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

// Error implements c8y.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Error(msg)
}

var _ c8y.Logger = (*Logger)(nil)

package logger

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	logger *logrus.Logger
	ctx    context.Context
	fields logrus.Fields
}

// NewLogger initializes a new instance of Logger writing to stdout.
// An unknown level falls back to info.
func NewLogger(ctx context.Context, jsonFormat bool, logLevel string) *Logger {
	logger := logrus.New()
	logger.Out = os.Stdout

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if jsonFormat {
		logger.SetFormatter(&logrus.JSONFormatter{
			PrettyPrint: false,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
			PadLevelText:  true,
		})
	}

	return &Logger{logger: logger, ctx: ctx}
}

// FromLogrus wraps an existing logrus logger, e.g. a test null logger.
func FromLogrus(l *logrus.Logger) *Logger {
	return &Logger{logger: l, ctx: context.Background()}
}

// WithFields returns a child logger that adds fields to every entry.
func (l *Logger) WithFields(fields logrus.Fields) *Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{logger: l.logger, ctx: l.ctx, fields: merged}
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string, fields ...logrus.Fields) {
	l.logWithFields(logrus.DebugLevel, msg, fields...)
}

// Info logs an info-level message.
func (l *Logger) Info(msg string, fields ...logrus.Fields) {
	l.logWithFields(logrus.InfoLevel, msg, fields...)
}

// Warn logs a warn-level message.
func (l *Logger) Warn(msg string, fields ...logrus.Fields) {
	l.logWithFields(logrus.WarnLevel, msg, fields...)
}

// Error logs an error-level message.
func (l *Logger) Error(msg string, fields ...logrus.Fields) {
	l.logWithFields(logrus.ErrorLevel, msg, fields...)
}

// Fatal logs a fatal-level message and exits the application.
func (l *Logger) Fatal(msg string, fields ...logrus.Fields) {
	l.logWithFields(logrus.FatalLevel, msg, fields...)
	os.Exit(1)
}

func (l *Logger) logWithFields(level logrus.Level, msg string, fields ...logrus.Fields) {
	entry := l.logger.WithContext(l.ctx)

	if len(l.fields) > 0 {
		entry = entry.WithFields(l.fields)
	}
	for _, field := range fields {
		entry = entry.WithFields(field)
	}

	entry.Log(level, msg)
}

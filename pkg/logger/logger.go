// Package logger provides logging for the user directory service.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger is the logging interface used across the service.
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// ConsoleLogger writes leveled, field-annotated log lines to a writer.
type ConsoleLogger struct {
	Level string
	out   *log.Logger
}

// NewConsoleLogger creates a console logger at the given level.
func NewConsoleLogger(level string) *ConsoleLogger {
	return &ConsoleLogger{
		Level: level,
		out:   log.New(os.Stdout, "", log.LstdFlags),
	}
}

// NewTestLogger creates a logger suitable for tests, discarding output.
func NewTestLogger() *ConsoleLogger {
	return &ConsoleLogger{
		Level: "debug",
		out:   log.New(io.Discard, "", 0),
	}
}

// SetOutput redirects log output, mainly for tests.
func (l *ConsoleLogger) SetOutput(w io.Writer) {
	l.out.SetOutput(w)
}

// Debug logs debug level messages
func (l *ConsoleLogger) Debug(msg string, fields ...map[string]interface{}) {
	if l.Level == "debug" {
		l.logWithFields("DEBUG", msg, fields...)
	}
}

// Info logs info level messages
func (l *ConsoleLogger) Info(msg string, fields ...map[string]interface{}) {
	l.logWithFields("INFO", msg, fields...)
}

// Warn logs warning level messages
func (l *ConsoleLogger) Warn(msg string, fields ...map[string]interface{}) {
	l.logWithFields("WARN", msg, fields...)
}

// Error logs error level messages
func (l *ConsoleLogger) Error(msg string, err error, fields ...map[string]interface{}) {
	var allFields []map[string]interface{}
	if err != nil {
		allFields = append(allFields, map[string]interface{}{"error": err.Error()})
	}
	allFields = append(allFields, fields...)
	l.logWithFields("ERROR", msg, allFields...)
}

// Fatal logs fatal level messages and exits
func (l *ConsoleLogger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Error(msg, err, fields...)
	os.Exit(1)
}

func (l *ConsoleLogger) logWithFields(level, msg string, fields ...map[string]interface{}) {
	logMsg := fmt.Sprintf("[%s] %s", level, msg)

	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			logMsg += fmt.Sprintf(" %s=%v", key, value)
		}
	}

	l.out.Println(logMsg)
}

package pkg

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Component identifies a subsystem for log filtering.
type Component string

// fw-utils component identifiers.
const (
	ComponentDevice    Component = "device"
	ComponentField     Component = "field"
	ComponentCheck     Component = "check"
	ComponentVirtual   Component = "virtual"
	ComponentTransport Component = "transport"
)

var (
	// defaultLogger is the logger used by the Log* helpers below.
	defaultLogger *logrus.Logger

	// logMutex protects logger configuration.
	logMutex sync.RWMutex
)

func init() {
	defaultLogger = logrus.New()
	defaultLogger.SetLevel(logrus.WarnLevel)
}

// SetLogLevel sets the minimum log level for all fw-utils logging.
func SetLogLevel(level logrus.Level) {
	logMutex.Lock()
	defer logMutex.Unlock()
	defaultLogger.SetLevel(level)
}

// GetLogLevel returns the current minimum log level.
func GetLogLevel() logrus.Level {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return defaultLogger.GetLevel()
}

// SetLogger replaces the default logger with a caller-supplied one.
func SetLogger(logger *logrus.Logger) {
	logMutex.Lock()
	defer logMutex.Unlock()
	defaultLogger = logger
}

func current() *logrus.Logger {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return defaultLogger
}

// LogDebug logs a debug message tagged with the given component.
func LogDebug(component Component, msg string, args ...any) {
	current().WithField("component", string(component)).Debug(formatArgs(msg, args...))
}

// LogInfo logs an info message tagged with the given component.
func LogInfo(component Component, msg string, args ...any) {
	current().WithField("component", string(component)).Info(formatArgs(msg, args...))
}

// LogWarn logs a warning message tagged with the given component.
func LogWarn(component Component, msg string, args ...any) {
	current().WithField("component", string(component)).Warn(formatArgs(msg, args...))
}

// LogError logs an error message tagged with the given component.
func LogError(component Component, msg string, args ...any) {
	current().WithField("component", string(component)).Error(formatArgs(msg, args...))
}

// formatArgs renders msg printf-style when args are given, matching the
// call convention used throughout reg/virtual's [ReportError] call sites.
func formatArgs(msg string, args ...any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

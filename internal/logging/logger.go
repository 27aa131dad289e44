package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// LogLevel represents available log levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// InitLogger initializes the global logger with configuration from environment variables
func InitLogger() {
	InitLoggerWithWriter(os.Stderr, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// InitLoggerWithWriter initializes the global logger writing to w at the given level.
func InitLoggerWithWriter(w io.Writer, level LogLevel) {
	Logger = log.New(w)
	setLogLevel(Logger, level)

	Logger.SetReportTimestamp(true)
	Logger.SetReportCaller(true)
	Logger.SetPrefix("[voidmesh-terrain]")

	Logger.Debug("Logger initialized successfully", "level", level)
}

// ParseLevel maps a free-form level string onto a LogLevel. Unknown values
// fall back to debug.
func ParseLevel(raw string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return DebugLevel
	}
}

// setLogLevel configures the logger with the specified level
func setLogLevel(logger *log.Logger, level LogLevel) {
	switch level {
	case DebugLevel:
		logger.SetLevel(log.DebugLevel)
	case InfoLevel:
		logger.SetLevel(log.InfoLevel)
	case WarnLevel:
		logger.SetLevel(log.WarnLevel)
	case ErrorLevel:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.DebugLevel)
	}
}

// SetLevel changes the level of the global logger.
func SetLevel(level LogLevel) {
	setLogLevel(GetLogger(), level)
}

// GetLogger returns the global logger instance
func GetLogger() *log.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}

// WithFields creates a logger with contextual fields
func WithFields(fields ...interface{}) *log.Logger {
	return GetLogger().With(fields...)
}

// WithTerrainID creates a logger with terrain_id context
func WithTerrainID(terrainID string) *log.Logger {
	return WithFields("terrain_id", terrainID)
}

// WithRunID creates a logger with scatter run_id context
func WithRunID(runID string) *log.Logger {
	return WithFields("run_id", runID)
}

// WithCoords creates a logger with world coordinate context
func WithCoords(x, y float64) *log.Logger {
	return WithFields("x", x, "y", y)
}

// WithDuration creates a logger with duration context (for performance logging)
func WithDuration(operation string, duration interface{}) *log.Logger {
	return WithFields("operation", operation, "duration", duration)
}

// SetFormat switches the global logger between "json", "logfmt" and the
// default human-readable text output.
func SetFormat(format string) {
	logger := GetLogger()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	default:
		logger.SetFormatter(log.TextFormatter)
	}
}

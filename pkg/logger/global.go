package logger

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// GetLogger returns the shared logger, initializing it from the
// environment on first use.
func GetLogger() *Logger {
	once.Do(func() {
		if globalLogger == nil {
			level := "info"
			if os.Getenv("DEBUG") == "true" {
				level = "debug"
			} else if v := os.Getenv("LOG_LEVEL"); v != "" {
				level = v
			}

			globalLogger = New(Config{Level: level, Format: "json"})
		}
	})
	return globalLogger
}

// SetLogger replaces the shared logger instance.
func SetLogger(logger *Logger) {
	globalLogger = logger
}

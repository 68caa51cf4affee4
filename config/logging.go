package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const defaultLogFile = "logs/course-connect.log"

// LogWriter is the writer used for application, request and database logs.
var LogWriter io.Writer = os.Stdout

// LogFilePath returns the server log file: LOG_FILE when set, otherwise
// logs/course-connect.log under the working directory.
func LogFilePath() string {
	if path := strings.TrimSpace(os.Getenv("LOG_FILE")); path != "" {
		return filepath.Clean(path)
	}
	return filepath.FromSlash(defaultLogFile)
}

// InitLogging sends the standard logger to stdout and the log file. When the
// file cannot be opened it logs a warning and keeps stdout only; the caller
// closes the returned file.
func InitLogging() (*os.File, io.Writer) {
	path := LogFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("Warning: Failed to create log directory for %s: %v", path, err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Warning: Failed to open log file %s: %v", path, err)
		LogWriter = os.Stdout
	} else {
		LogWriter = io.MultiWriter(os.Stdout, logFile)
	}

	log.SetOutput(LogWriter)
	return logFile, LogWriter
}

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// logFilePath names the log of a session started at sessionStart, e.g.
// logs/waymark_extractor.20261019_213836.log.
func logFilePath(logsDir, name string, sessionStart time.Time) string {
	return filepath.Join(logsDir, fmt.Sprintf("%s.%s.log", name, sessionStart.Format("20060102_150405")))
}

// OpenLogFile creates logsDir if needed and opens the session log for appending.
// It returns the open file and its path.
func OpenLogFile(logsDir, name string, sessionStart time.Time) (*os.File, string, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create logs directory %s: %w", logsDir, err)
	}

	path := logFilePath(logsDir, name, sessionStart)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, path, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, path, nil
}

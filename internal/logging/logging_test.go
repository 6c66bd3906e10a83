package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionStart = time.Date(2026, 10, 19, 21, 38, 36, 0, time.UTC)

func TestLogFilePath(t *testing.T) {
	tests := []struct {
		name    string
		logsDir string
		want    string
	}{
		{"relative", "logs", filepath.Join("logs", "waymark_extractor.20261019_213836.log")},
		{"dotted", "./logs", filepath.Join("logs", "waymark_extractor.20261019_213836.log")},
		{"absolute", filepath.Join("/var", "log", "waymarks"), filepath.Join("/var", "log", "waymarks", "waymark_extractor.20261019_213836.log")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logFilePath(tt.logsDir, "waymark_extractor", sessionStart))
		})
	}
}

func TestOpenLogFile_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	f, path, err := OpenLogFile(dir, "waymark_extractor", sessionStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, filepath.Join(dir, "waymark_extractor.20261019_213836.log"), path)
	_, err = f.WriteString("level=INFO msg=\"Presets extracted\"\n")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Presets extracted")
}

func TestOpenLogFile_Appends(t *testing.T) {
	dir := t.TempDir()

	for _, line := range []string{"first\n", "second\n"} {
		f, _, err := OpenLogFile(dir, "waymark_extractor", sessionStart)
		require.NoError(t, err)
		_, err = f.WriteString(line)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	content, err := os.ReadFile(logFilePath(dir, "waymark_extractor", sessionStart))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(content))
}

func TestOpenLogFile_DirIsFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	f, _, err := OpenLogFile(blocker, "waymark_extractor", sessionStart)
	assert.Error(t, err)
	assert.Nil(t, f)
}

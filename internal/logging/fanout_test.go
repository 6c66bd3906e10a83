package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingSink rejects every record, like a closed log file.
type failingSink struct {
	slog.Handler
}

func (failingSink) Enabled(context.Context, slog.Level) bool { return true }

func (failingSink) Handle(context.Context, slog.Record) error {
	return errors.New("file already closed")
}

func TestFanout_DropsNilSinks(t *testing.T) {
	var buf bytes.Buffer
	f := newFanout(nil, slog.NewTextHandler(&buf, nil), nil)
	require.Len(t, f, 1)

	slog.New(f).Info("Presets extracted")
	assert.Contains(t, buf.String(), "Presets extracted")
}

func TestFanout_LevelPerSink(t *testing.T) {
	var file, console bytes.Buffer
	f := newFanout(
		slog.NewTextHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&console, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	assert.True(t, f.Enabled(context.Background(), slog.LevelDebug))

	logger := slog.New(f)
	logger.Debug("Decoded preset")
	logger.Warn("Skipping waymark table")

	assert.Contains(t, file.String(), "Decoded preset")
	assert.Contains(t, file.String(), "Skipping waymark table")
	assert.NotContains(t, console.String(), "Decoded preset")
	assert.Contains(t, console.String(), "Skipping waymark table")
}

func TestFanout_EmptyIsDisabled(t *testing.T) {
	assert.False(t, newFanout().Enabled(context.Background(), slog.LevelError))
}

func TestFanout_FailingSinkDoesNotBlockOthers(t *testing.T) {
	var buf bytes.Buffer
	f := newFanout(failingSink{}, slog.NewTextHandler(&buf, nil))

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "Stopping at unreadable section", 0)
	err := f.Handle(context.Background(), r)

	assert.EqualError(t, err, "file already closed")
	assert.Contains(t, buf.String(), "Stopping at unreadable section")
}

func TestFanout_AttrsAndGroups(t *testing.T) {
	var a, b bytes.Buffer
	f := newFanout(slog.NewTextHandler(&a, nil), slog.NewTextHandler(&b, nil))

	slog.New(f).With("component", "parser").WithGroup("preset").Info("Decoded preset", "zone", 7)
	for _, out := range []string{a.String(), b.String()} {
		assert.Contains(t, out, "component=parser")
		assert.Contains(t, out, "preset.zone=7")
	}

	assert.Equal(t, f, f.WithGroup(""))
}

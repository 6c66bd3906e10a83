package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// ServiceName identifies log records sent through the OTel bridge
const ServiceName = "waymark-extractor"

// console is the terminal sink. Stdout is reserved for preset JSON.
var console io.Writer = os.Stderr

// SlogManager manages slog-based logging with optional OTel integration.
type SlogManager struct {
	logger *slog.Logger
	run    RunContext

	// OTel provider for flushing
	logProvider *sdklog.LoggerProvider
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// utcTimes renders every time-valued attribute, the record time and a
// preset's createdAt alike, as RFC3339 UTC.
func utcTimes(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339))
	}
	return a
}

// Setup initializes the logging system.
//
// With a file, records at level go to the file and warnings and errors are
// mirrored to the console, so skipped waymark tables stay visible on the
// terminal. Without a file everything at level goes to the console.
// If provider is nil, OTel logging is disabled.
func (m *SlogManager) Setup(file io.Writer, level string, provider *sdklog.LoggerProvider) {
	lvl := parseLevel(level)
	m.logProvider = provider

	var sinks []slog.Handler
	if file != nil {
		sinks = append(sinks,
			slog.NewTextHandler(file, &slog.HandlerOptions{Level: lvl, ReplaceAttr: utcTimes}),
			slog.NewTextHandler(console, &slog.HandlerOptions{Level: max(lvl, slog.LevelWarn), ReplaceAttr: utcTimes}),
		)
	} else {
		sinks = append(sinks, slog.NewTextHandler(console, &slog.HandlerOptions{Level: lvl, ReplaceAttr: utcTimes}))
	}

	if provider != nil {
		sinks = append(sinks, otelslog.NewHandler(ServiceName, otelslog.WithLoggerProvider(provider)))
	}

	m.logger = slog.New(NewContextHandler(newFanout(sinks...), &m.run))
	m.logger.Info("Logging initialized", "level", level)
}

// StartRun tags every following record with the run ID and its source file.
func (m *SlogManager) StartRun(runID, source string) {
	m.run.Start(runID, source)
}

// EndRun stops tagging records with the finished run.
func (m *SlogManager) EndRun() {
	m.run.End()
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// Flush forces a flush of OTel logs if available.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider != nil {
		return m.logProvider.ForceFlush(ctx)
	}
	return nil
}

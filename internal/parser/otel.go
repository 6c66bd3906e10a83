package parser

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// InstrumentationName is the meter name the parser counters are registered under.
const InstrumentationName = "github.com/fmarker/extractor/internal/parser"

type parserMetrics struct {
	sectionsRead   metric.Int64Counter
	presetsDecoded metric.Int64Counter
	tablesSkipped  metric.Int64Counter
}

// newParserMetrics registers the counters on m, or on the global meter
// provider when m is nil.
func newParserMetrics(m metric.Meter, logger *slog.Logger) *parserMetrics {
	if m == nil {
		m = otel.Meter(InstrumentationName)
	}
	return &parserMetrics{
		sectionsRead:   counter(m, logger, "uisave.sections.read", "Container sections read"),
		presetsDecoded: counter(m, logger, "waymark.presets.decoded", "Non-empty waymark presets decoded"),
		tablesSkipped:  counter(m, logger, "waymark.tables.skipped", "Waymark tables skipped as malformed"),
	}
}

func counter(m metric.Meter, logger *slog.Logger, name, desc string) metric.Int64Counter {
	c, err := m.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		logger.Warn("Failed to create counter", "name", name, "error", err)
		return noop.Int64Counter{}
	}
	return c
}

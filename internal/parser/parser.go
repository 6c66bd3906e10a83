package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fmarker/extractor/internal/uisave"
	"github.com/fmarker/extractor/pkg/core"
	"go.opentelemetry.io/otel/metric"
)

// Options controls how the parser treats damaged containers.
type Options struct {
	// Strict makes a truncated section header or payload fatal. Otherwise
	// iteration stops there and the presets decoded so far are returned.
	Strict bool

	// Meter receives the decode counters. Nil uses the global meter provider.
	Meter metric.Meter
}

// Result is the outcome of parsing one container.
type Result struct {
	Presets  []*core.Preset
	Sections int     // sections read
	Tables   int     // waymark tables found
	Skipped  []error // tables or trailing data that could not be decoded
}

// Parser turns a UI save container into waymark presets.
type Parser struct {
	logger  *slog.Logger
	opts    Options
	metrics *parserMetrics
}

// NewParser creates a parser logging to logger.
func NewParser(logger *slog.Logger, opts Options) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		logger:  logger,
		opts:    opts,
		metrics: newParserMetrics(opts.Meter, logger),
	}
}

// ParseFile reads the save file at path and parses it.
func (p *Parser) ParseFile(path string) (*Result, error) {
	data, err := uisave.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Loaded save file", "path", path, "size", len(data))
	return p.Parse(data)
}

// Parse walks every section of the container and decodes each waymark table.
func (p *Parser) Parse(data []byte) (*Result, error) {
	ctx := context.Background()
	res := &Result{}
	reader := uisave.NewSectionReader(data)

	for {
		section, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if p.opts.Strict {
				return nil, fmt.Errorf("error reading sections: %w", err)
			}
			p.logger.Warn("Stopping at unreadable section", "offset", reader.Offset(), "error", err)
			res.Skipped = append(res.Skipped, err)
			break
		}
		res.Sections++
		p.metrics.sectionsRead.Add(ctx, 1)

		if section.Tag() != uisave.TagWaymarks {
			p.logger.Debug("Skipping section",
				"tag", fmt.Sprintf("0x%02x", uint16(section.Tag())),
				"size", section.Header.Length)
			continue
		}

		res.Tables++
		p.logger.Info("Reading FMARKER", "size", section.Header.Length, "offset", section.Offset)

		presets, err := p.parseTable(section.Deobfuscated())
		if err != nil {
			p.logger.Warn("Skipping waymark table", "offset", section.Offset, "error", err)
			res.Skipped = append(res.Skipped, err)
			p.metrics.tablesSkipped.Add(ctx, 1)
			continue
		}
		res.Presets = append(res.Presets, presets...)
		p.metrics.presetsDecoded.Add(ctx, int64(len(presets)))
	}

	p.logger.Info("Presets extracted", "count", len(res.Presets), "sections", res.Sections)
	return res, nil
}

func (p *Parser) parseTable(payload []byte) ([]*core.Preset, error) {
	presets, err := DecodeWaymarkTable(payload)
	if err != nil {
		return nil, err
	}

	for _, preset := range presets {
		p.logger.Debug("Decoded preset",
			"name", preset.Name(),
			"enabled", preset.Enabled,
			"zone", preset.ZoneID,
			"createdAt", preset.CreatedAt)
	}

	return EnabledPresets(presets), nil
}

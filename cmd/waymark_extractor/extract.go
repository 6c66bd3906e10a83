package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fmarker/extractor/internal/config"
	"github.com/fmarker/extractor/internal/parser"
	"github.com/fmarker/extractor/internal/storage"
	v1 "github.com/fmarker/extractor/internal/storage/memory/export/v1"
	"github.com/fmarker/extractor/internal/uisave"
	"github.com/fmarker/extractor/pkg/core"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
)

// runExtract decodes the save file at path (or input.path) with the configured
// options and hands the presets to the configured storage backend.
func runExtract(path string, out io.Writer) error {
	extractCfg := config.GetExtractConfig()
	if path != "" {
		extractCfg.InputPath = path
	}

	backend, err := createStorageBackend(config.GetStorageConfig())
	if err != nil {
		Logger.Error("Failed to create storage backend", "error", err)
		return err
	}
	if err := backend.Init(); err != nil {
		Logger.Error("Failed to initialize storage backend", "error", err)
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			Logger.Warn("Failed to close storage backend", "error", err)
		}
	}()

	_, err = extract(extractCfg, backend, out)
	return err
}

// extract runs one extraction. Presets are printed to out as JSON lines when
// PrintJSON is set, then stored through backend.
func extract(cfg config.ExtractConfig, backend storage.Backend, out io.Writer) (*core.Extraction, error) {
	run := &core.Extraction{
		ID:               uuid.NewString(),
		SourcePath:       cfg.InputPath,
		StartTime:        time.Now(),
		ExtractorVersion: CurrentExtractorVersion,
	}
	SlogManager.StartRun(run.ID, cfg.InputPath)
	defer SlogManager.EndRun()

	data, err := uisave.ReadFile(cfg.InputPath)
	if err != nil {
		Logger.Error("Failed to read save file", "path", cfg.InputPath, "error", err)
		return nil, err
	}
	run.SourceSize = int64(len(data))
	Logger.Info("Extracting waymark presets", "path", cfg.InputPath, "size", run.SourceSize, "strict", cfg.Strict)

	p := parser.NewParser(Logger, parser.Options{Strict: cfg.Strict, Meter: parserMeter()})
	result, err := p.Parse(data)
	if err != nil {
		Logger.Error("Failed to parse save file", "path", cfg.InputPath, "error", err)
		return nil, err
	}
	run.PresetCount = len(result.Presets)

	if cfg.PrintJSON {
		if err := printPresets(out, result.Presets); err != nil {
			return nil, err
		}
	}

	if err := backend.StartExtraction(run); err != nil {
		return nil, fmt.Errorf("failed to start extraction: %w", err)
	}
	for _, preset := range result.Presets {
		if err := backend.AddPreset(preset); err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", preset.Name(), err)
		}
	}
	if err := backend.EndExtraction(); err != nil {
		return nil, fmt.Errorf("failed to finish extraction: %w", err)
	}

	flushTelemetry()

	if exp, ok := backend.(storage.Exportable); ok && exp.GetExportedFilePath() != "" {
		Logger.Info("Export written", "path", exp.GetExportedFilePath())
	}
	Logger.Info("Extraction complete",
		"presets", run.PresetCount,
		"skipped", len(result.Skipped),
		"duration", time.Since(run.StartTime))
	return run, nil
}

// parserMeter returns the SDK meter for the decode counters, or nil to fall
// back to the global meter provider when OTel is off.
func parserMeter() metric.Meter {
	if OTelProvider == nil || !OTelProvider.Enabled() {
		return nil
	}
	return OTelProvider.Meter(parser.InstrumentationName)
}

// flushTelemetry exports the run's logs and counters.
func flushTelemetry() {
	if OTelProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := OTelProvider.Flush(ctx); err != nil {
		Logger.Warn("Failed to flush OTel data", "error", err)
	}
}

// printPresets writes one compact JSON object per preset.
func printPresets(out io.Writer, presets []*core.Preset) error {
	w := bufio.NewWriter(out)
	for _, preset := range presets {
		line, err := v1.Marshal(preset)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("failed to write preset: %w", err)
		}
	}
	return w.Flush()
}

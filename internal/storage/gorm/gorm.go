// Package gormstorage implements the storage.Backend interface on any GORM database.
// Presets are buffered during a run and written in one transaction when it ends.
package gormstorage

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fmarker/extractor/internal/model"
	"github.com/fmarker/extractor/internal/model/convert"
	"github.com/fmarker/extractor/pkg/core"
	"gorm.io/gorm"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

// Backend implements storage.Backend using GORM.
type Backend struct {
	deps    Dependencies
	run     *model.ExtractionRun
	presets []model.Preset
	mu      sync.Mutex
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Backend{
		deps: deps,
	}
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return fmt.Errorf("database not set")
	}
	if err := b.deps.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close is a no-op; the connection belongs to the caller.
func (b *Backend) Close() error {
	return nil
}

// StartExtraction begins buffering a new run.
func (b *Backend) StartExtraction(e *core.Extraction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	run := convert.CoreToExtractionRun(*e)
	b.run = &run
	b.presets = nil
	return nil
}

// AddPreset converts and buffers a preset for the current run.
func (b *Backend) AddPreset(p *core.Preset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("no extraction started")
	}

	preset, err := convert.CoreToPreset(b.run.ID, p)
	if err != nil {
		return err
	}
	b.presets = append(b.presets, preset)
	return nil
}

// EndExtraction writes the run, its presets and their waymarks.
func (b *Backend) EndExtraction() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("no extraction started")
	}
	b.run.PresetCount = len(b.presets)

	err := b.deps.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b.run).Error; err != nil {
			return fmt.Errorf("failed to write extraction run: %w", err)
		}
		if len(b.presets) == 0 {
			return nil
		}
		if err := tx.Create(&b.presets).Error; err != nil {
			return fmt.Errorf("failed to write presets: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.deps.Logger.Info("Stored extraction run",
		"run", b.run.ID,
		"presets", len(b.presets))
	b.run = nil
	b.presets = nil
	return nil
}

// ErrRunNotFound is returned by LoadRun for an unknown run ID.
var ErrRunNotFound = errors.New("extraction run not found")

// LoadRun reads back a stored run and its presets in slot order.
func (b *Backend) LoadRun(runID string) (*core.Extraction, []*core.Preset, error) {
	if b.deps.DB == nil {
		return nil, nil, fmt.Errorf("database not set")
	}

	var row model.ExtractionRun
	err := b.deps.DB.Where("id = ?", runID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load extraction run: %w", err)
	}

	presets, err := b.loadPresets(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(presets) != row.PresetCount {
		b.deps.Logger.Warn("Stored preset count mismatch",
			"run", runID,
			"expected", row.PresetCount,
			"found", len(presets))
	}

	run := convert.ExtractionRunToCore(row)
	return &run, presets, nil
}

func (b *Backend) loadPresets(runID string) ([]*core.Preset, error) {
	var rows []model.Preset
	err := b.deps.DB.
		Preload("Waymarks", func(db *gorm.DB) *gorm.DB {
			return db.Order("slot")
		}).
		Where("run_id = ?", runID).
		Order("slot").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}

	presets := make([]*core.Preset, 0, len(rows))
	for _, row := range rows {
		presets = append(presets, convert.PresetToCore(row))
	}
	return presets, nil
}

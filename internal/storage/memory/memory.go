// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"sync"

	"github.com/fmarker/extractor/internal/config"
	"github.com/fmarker/extractor/pkg/core"
)

// Export formats
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Backend keeps the presets of a run in memory and writes them to a file
// when the run ends
type Backend struct {
	cfg     config.MemoryConfig
	run     *core.Extraction
	presets []*core.Preset

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	if cfg.Format == "" {
		cfg.Format = FormatJSON
	}
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartExtraction begins collecting a new run
func (b *Backend) StartExtraction(run *core.Extraction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.run = run
	b.presets = nil
	return nil
}

// AddPreset buffers a preset for export
func (b *Backend) AddPreset(p *core.Preset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("no extraction started")
	}
	b.presets = append(b.presets, p)
	return nil
}

// EndExtraction writes the buffered presets to disk
func (b *Backend) EndExtraction() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("no extraction started")
	}
	return b.exportFile()
}

// Presets returns the presets collected for the current run
func (b *Backend) Presets() []*core.Preset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*core.Preset, len(b.presets))
	copy(out, b.presets)
	return out
}

// GetExportedFilePath returns the path of the last written export
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

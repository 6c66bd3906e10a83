// internal/storage/storage.go
package storage

import "github.com/fmarker/extractor/pkg/core"

// Backend is the interface all export sinks must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Extraction run management
	StartExtraction(run *core.Extraction) error
	EndExtraction() error

	// AddPreset records one non-empty preset of the current run
	AddPreset(p *core.Preset) error
}

// Exportable is an optional interface for storage backends that produce
// a file on disk.
type Exportable interface {
	GetExportedFilePath() string
}

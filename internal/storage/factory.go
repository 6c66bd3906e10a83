// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/fmarker/extractor/internal/config"
	"github.com/fmarker/extractor/internal/storage/memory"
	"github.com/fmarker/extractor/pkg/core"
)

// Type names accepted in storage.type
const (
	TypeMemory   = "memory"
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeInflux   = "influx"
	TypeNone     = "none"
)

// NewBackend creates a backend that needs no external connection.
// Database and InfluxDB backends are built by the caller.
func NewBackend(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Type {
	case TypeMemory:
		switch cfg.Memory.Format {
		case "", memory.FormatJSON, memory.FormatMsgpack:
			return memory.New(cfg.Memory), nil
		default:
			return nil, fmt.Errorf("unknown export format: %s", cfg.Memory.Format)
		}
	case TypeNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// Nop discards everything
type Nop struct{}

func (Nop) Init() error                            { return nil }
func (Nop) Close() error                           { return nil }
func (Nop) StartExtraction(*core.Extraction) error { return nil }
func (Nop) EndExtraction() error                   { return nil }
func (Nop) AddPreset(*core.Preset) error           { return nil }

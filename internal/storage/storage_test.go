// internal/storage/storage_test.go
package storage_test

import (
	"testing"

	"github.com/fmarker/extractor/internal/config"
	"github.com/fmarker/extractor/internal/storage"
	"github.com/fmarker/extractor/internal/storage/memory"
	"github.com/fmarker/extractor/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface checks
var (
	_ storage.Backend    = (*memory.Backend)(nil)
	_ storage.Exportable = (*memory.Backend)(nil)
	_ storage.Backend    = storage.Nop{}
)

func TestNewBackend_Memory(t *testing.T) {
	for _, format := range []string{"", "json", "msgpack"} {
		b, err := storage.NewBackend(config.StorageConfig{
			Type:   storage.TypeMemory,
			Memory: config.MemoryConfig{OutputDir: t.TempDir(), Format: format},
		})
		require.NoError(t, err, "format %q", format)
		assert.IsType(t, &memory.Backend{}, b)
	}
}

func TestNewBackend_UnknownFormat(t *testing.T) {
	_, err := storage.NewBackend(config.StorageConfig{
		Type:   storage.TypeMemory,
		Memory: config.MemoryConfig{Format: "xml"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestNewBackend_None(t *testing.T) {
	b, err := storage.NewBackend(config.StorageConfig{Type: storage.TypeNone})
	require.NoError(t, err)

	require.NoError(t, b.Init())
	require.NoError(t, b.StartExtraction(&core.Extraction{}))
	require.NoError(t, b.AddPreset(core.NewPreset(1)))
	require.NoError(t, b.EndExtraction())
	require.NoError(t, b.Close())
}

func TestNewBackend_UnknownType(t *testing.T) {
	_, err := storage.NewBackend(config.StorageConfig{Type: "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage type")
}

// internal/storage/memory/memory_test.go
package memory

import (
	"testing"
	"time"

	"github.com/fmarker/extractor/internal/config"
	"github.com/fmarker/extractor/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun(source string) *core.Extraction {
	return &core.Extraction{
		ID:         "3f1c2a9e-0000-4000-8000-000000000001",
		SourcePath: source,
		StartTime:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func testPreset(t *testing.T, slot int, enabled uint8, zone uint16) *core.Preset {
	t.Helper()
	p := core.NewPreset(slot)
	for i := 0; i < core.MaxWaymarks; i++ {
		require.NoError(t, p.Append(core.PositionFromFixed(int32(i)*1000, -2000, 3000)))
	}
	p.SetInfo(enabled, zone)
	return p
}

func TestNew_DefaultsFormat(t *testing.T) {
	b := New(config.MemoryConfig{})
	assert.Equal(t, FormatJSON, b.cfg.Format)
}

func TestInitClose(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.Init())
	require.NoError(t, b.Close())
}

func TestAddPreset_RequiresRun(t *testing.T) {
	b := New(config.MemoryConfig{})
	err := b.AddPreset(testPreset(t, 1, 0xFF, 1))
	require.Error(t, err)

	err = b.EndExtraction()
	require.Error(t, err)
}

func TestAddPreset_Buffers(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, b.StartExtraction(testRun("UISAVE.DAT")))

	require.NoError(t, b.AddPreset(testPreset(t, 1, 0xFF, 1)))
	require.NoError(t, b.AddPreset(testPreset(t, 2, 0x01, 2)))

	presets := b.Presets()
	require.Len(t, presets, 2)
	assert.Equal(t, "Preset 1", presets[0].Name())
	assert.Equal(t, "Preset 2", presets[1].Name())
}

func TestStartExtraction_ResetsPresets(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, b.StartExtraction(testRun("a.dat")))
	require.NoError(t, b.AddPreset(testPreset(t, 1, 0xFF, 1)))

	require.NoError(t, b.StartExtraction(testRun("b.dat")))
	assert.Empty(t, b.Presets())
}

func TestGetExportedFilePath_EmptyBeforeExport(t *testing.T) {
	b := New(config.MemoryConfig{})
	assert.Equal(t, "", b.GetExportedFilePath())
}

package parser

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fmarker/extractor/pkg/core"
)

// Waymark table layout (FMARKER section payload, deobfuscated)
const (
	WaymarkTablePrefixSize = 16
	WaymarkTableSuffixSize = 4
	PresetCount            = 30

	waymarkRecordSize = 12
	presetFooterSize  = 8

	// PresetBlockSize is the size of one preset record: 8 waymarks and a footer.
	PresetBlockSize = core.MaxWaymarks*waymarkRecordSize + presetFooterSize

	// WaymarkTableSize is the minimum payload size of a waymark table.
	WaymarkTableSize = WaymarkTablePrefixSize + PresetCount*PresetBlockSize + WaymarkTableSuffixSize
)

// ErrMalformedTable is returned when a waymark table payload is too short.
var ErrMalformedTable = errors.New("malformed waymark table")

// waymarkRecord is one fixed-point waymark position.
type waymarkRecord struct {
	X, Y, Z int32
}

// presetBlock mirrors one preset record of the table.
type presetBlock struct {
	Waymarks  [core.MaxWaymarks]waymarkRecord
	Enabled   uint8
	Reserved  uint8
	Zone      uint16
	CreatedAt uint32 // unix seconds
}

// DecodeWaymarkTable decodes all preset records of a deobfuscated waymark
// table, including unused ones. Use EnabledPresets to drop empty slots.
func DecodeWaymarkTable(payload []byte) ([]*core.Preset, error) {
	if len(payload) < WaymarkTableSize {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrMalformedTable, len(payload), WaymarkTableSize)
	}

	r := bytes.NewReader(payload)

	// unknown prefix
	var prefix [WaymarkTablePrefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, fmt.Errorf("reading table prefix: %w", err)
	}

	presets := make([]*core.Preset, 0, PresetCount)
	for i := 0; i < PresetCount; i++ {
		var block presetBlock
		if err := binary.Read(r, binary.LittleEndian, &block); err != nil {
			return nil, fmt.Errorf("reading preset %d: %w", i+1, err)
		}

		preset, err := block.toPreset(i + 1)
		if err != nil {
			return nil, fmt.Errorf("decoding preset %d: %w", i+1, err)
		}
		presets = append(presets, preset)
	}

	// the trailing suffix is not interpreted
	return presets, nil
}

func (b *presetBlock) toPreset(slot int) (*core.Preset, error) {
	preset := core.NewPreset(slot)
	for _, w := range b.Waymarks {
		if err := preset.Append(core.PositionFromFixed(w.X, w.Y, w.Z)); err != nil {
			return nil, err
		}
	}
	preset.SetInfo(b.Enabled, b.Zone)
	preset.CreatedAt = time.Unix(int64(b.CreatedAt), 0).UTC()
	return preset, nil
}

// EnabledPresets returns the presets whose enabled bitmask is non-zero.
func EnabledPresets(presets []*core.Preset) []*core.Preset {
	out := make([]*core.Preset, 0, len(presets))
	for _, p := range presets {
		if p.IsEmpty() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ParseWaymarkTable decodes a waymark table and keeps only used presets.
func ParseWaymarkTable(payload []byte) ([]*core.Preset, error) {
	presets, err := DecodeWaymarkTable(payload)
	if err != nil {
		return nil, err
	}
	return EnabledPresets(presets), nil
}

package convert

import (
	"github.com/fmarker/extractor/internal/model"
	"github.com/fmarker/extractor/pkg/core"
)

// ExtractionRunToCore converts a GORM ExtractionRun to a core.Extraction.
func ExtractionRunToCore(r model.ExtractionRun) core.Extraction {
	return core.Extraction{
		ID:               r.ID,
		SourcePath:       r.SourcePath,
		SourceSize:       r.SourceSize,
		StartTime:        r.StartTime,
		ExtractorVersion: r.ExtractorVersion,
		PresetCount:      r.PresetCount,
	}
}

// WaymarkToCore converts a GORM Waymark to a core.Waymark.
// The X/Y/Z columns are authoritative; Position is derived from them.
func WaymarkToCore(w model.Waymark) core.Waymark {
	return core.Waymark{
		ID:       int(w.Slot),
		Position: core.Position3D{X: w.X, Y: w.Y, Z: w.Z},
		Active:   w.Active,
	}
}

// PresetToCore converts a GORM Preset and its loaded waymarks to a core.Preset.
func PresetToCore(p model.Preset) *core.Preset {
	out := core.NewPreset(p.Slot)
	out.ZoneID = p.ZoneID
	out.Enabled = p.Enabled
	out.CreatedAt = p.SavedAt
	for _, w := range p.Waymarks {
		out.Waymarks = append(out.Waymarks, WaymarkToCore(w))
	}
	return out
}

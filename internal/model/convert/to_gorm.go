// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"github.com/fmarker/extractor/internal/geo"
	"github.com/fmarker/extractor/internal/model"
	v1 "github.com/fmarker/extractor/internal/storage/memory/export/v1"
	"github.com/fmarker/extractor/pkg/core"
	"gorm.io/datatypes"
)

// CoreToExtractionRun converts a core.Extraction to a GORM model.ExtractionRun.
func CoreToExtractionRun(e core.Extraction) model.ExtractionRun {
	return model.ExtractionRun{
		ID:               e.ID,
		SourcePath:       e.SourcePath,
		SourceSize:       e.SourceSize,
		StartTime:        e.StartTime,
		ExtractorVersion: e.ExtractorVersion,
		PresetCount:      e.PresetCount,
	}
}

// CoreToWaymark converts a core.Waymark to a GORM model.Waymark.
func CoreToWaymark(w core.Waymark) model.Waymark {
	return model.Waymark{
		Slot:     uint8(w.ID),
		Label:    w.Label(),
		X:        w.Position.X,
		Y:        w.Position.Y,
		Z:        w.Position.Z,
		Position: geo.WKT(w.Position),
		Active:   w.Active,
	}
}

// CoreToPreset converts a core.Preset to a GORM model.Preset owned by runID.
// Export holds the same compact JSON the file export writes.
func CoreToPreset(runID string, p *core.Preset) (model.Preset, error) {
	export, err := v1.Marshal(p)
	if err != nil {
		return model.Preset{}, err
	}

	waymarks := make([]model.Waymark, 0, len(p.Waymarks))
	for _, w := range p.Waymarks {
		waymarks = append(waymarks, CoreToWaymark(w))
	}

	return model.Preset{
		RunID:    runID,
		Slot:     p.Slot,
		Name:     p.Name(),
		ZoneID:   p.ZoneID,
		Enabled:  p.Enabled,
		SavedAt:  p.CreatedAt,
		Export:   datatypes.JSON(export),
		Waymarks: waymarks,
	}, nil
}

package v1

import (
	"encoding/json"
	"fmt"

	"github.com/fmarker/extractor/pkg/core"
	ordered "gitlab.com/c0b/go-ordered-json"
)

// waymark converts a core waymark to its exported form
func waymark(w core.Waymark) Waymark {
	return Waymark{
		X:      Number(w.Position.X),
		Y:      Number(w.Position.Y),
		Z:      Number(w.Position.Z),
		ID:     w.ID,
		Active: w.Active,
	}
}

// Build creates the export object for a preset. Keys keep their
// canonical order: Name, MapID, then waymarks in slot order.
func Build(p *core.Preset) *ordered.OrderedMap {
	om := ordered.NewOrderedMap()
	om.Set(NameKey, p.Name())
	om.Set(MapIDKey, p.ZoneID)
	for _, w := range p.Waymarks {
		om.Set(w.Label(), waymark(w))
	}
	return om
}

// BuildMap creates the export object as a plain map, for encoders that
// do not preserve key order.
func BuildMap(p *core.Preset) map[string]any {
	m := make(map[string]any, 2+len(p.Waymarks))
	m[NameKey] = p.Name()
	m[MapIDKey] = p.ZoneID
	for _, w := range p.Waymarks {
		m[w.Label()] = waymark(w)
	}
	return m
}

// Marshal returns the compact JSON text of a preset.
func Marshal(p *core.Preset) ([]byte, error) {
	data, err := json.Marshal(Build(p))
	if err != nil {
		return nil, fmt.Errorf("marshal preset %q: %w", p.Name(), err)
	}
	return data, nil
}

// Package v1 contains the v1 export format for waymark presets.
// Each preset is one compact JSON object keyed by waymark slot label.
package v1

import "strconv"

// Top-level keys of a preset object. Waymark keys are core.WaymarkSlots.
const (
	NameKey  = "Name"
	MapIDKey = "MapID"
)

// Number is a coordinate that always encodes with a decimal point (1.0, not 1).
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	b := strconv.AppendFloat(nil, float64(n), 'f', -1, 64)
	for _, c := range b {
		if c == '.' {
			return b, nil
		}
	}
	return append(b, '.', '0'), nil
}

// Waymark is the exported form of a single waymark
type Waymark struct {
	X      Number `json:"X" msgpack:"X"`
	Y      Number `json:"Y" msgpack:"Y"`
	Z      Number `json:"Z" msgpack:"Z"`
	ID     int    `json:"ID" msgpack:"ID"`
	Active bool   `json:"Active" msgpack:"Active"`
}

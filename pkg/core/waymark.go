// pkg/core/waymark.go
package core

import (
	"errors"
	"fmt"
	"time"
)

// MaxWaymarks is the number of waymark slots in a preset.
const MaxWaymarks = 8

// WaymarkSlots are the slot labels in storage order. The slot index is the
// waymark ID and the bit position in a preset's enabled mask.
var WaymarkSlots = [MaxWaymarks]string{"A", "B", "C", "D", "One", "Two", "Three", "Four"}

// ErrTooManyWaymarks is returned when appending to a preset that already holds MaxWaymarks.
var ErrTooManyWaymarks = errors.New("too many waymarks in preset")

// Waymark is a single positioned marker inside a preset
type Waymark struct {
	ID       int // slot index, 0-7
	Position Position3D
	Active   bool
}

// Label returns the slot label for the waymark ("A" ... "Four").
func (w Waymark) Label() string {
	if w.ID < 0 || w.ID >= MaxWaymarks {
		return ""
	}
	return WaymarkSlots[w.ID]
}

// Preset is one saved set of waymarks.
//
// Slot is the 1-based position of the preset in the save file's preset
// table. A zero Slot marks a preset that did not come from a table.
type Preset struct {
	Slot      int
	ZoneID    uint16
	Enabled   uint8
	CreatedAt time.Time
	Waymarks  []Waymark
}

// NewPreset creates an empty preset for the given 1-based table slot.
func NewPreset(slot int) *Preset {
	return &Preset{
		Slot:     slot,
		Waymarks: make([]Waymark, 0, MaxWaymarks),
	}
}

// Name returns the display name of the preset.
func (p *Preset) Name() string {
	if p.Slot <= 0 {
		return "Imported"
	}
	return fmt.Sprintf("Preset %d", p.Slot)
}

// Append adds the next waymark in slot order.
func (p *Preset) Append(pos Position3D) error {
	idx := len(p.Waymarks)
	if idx >= MaxWaymarks {
		return fmt.Errorf("%w: index %d", ErrTooManyWaymarks, idx)
	}
	p.Waymarks = append(p.Waymarks, Waymark{
		ID:       idx,
		Position: pos,
		Active:   true,
	})
	return nil
}

// SetInfo applies the enabled bitmask and zone to the preset.
// Waymark i is active when bit i of enabled is set.
func (p *Preset) SetInfo(enabled uint8, zone uint16) {
	for i := range p.Waymarks {
		p.Waymarks[i].Active = enabled&(1<<uint(p.Waymarks[i].ID)) != 0
	}
	p.Enabled = enabled
	p.ZoneID = zone
}

// IsEmpty reports whether the preset slot is unused.
func (p *Preset) IsEmpty() bool {
	return p.Enabled == 0
}

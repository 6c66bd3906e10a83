package model

import (
	"time"

	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&ExtractionRun{},
	&Preset{},
	&Waymark{},
}

// ExtractionRun is one decode pass over one save file
type ExtractionRun struct {
	ID               string    `json:"id" gorm:"primaryKey;size:36"` // uuid
	SourcePath       string    `json:"sourcePath" gorm:"size:1024"`
	SourceSize       int64     `json:"sourceSize"`
	StartTime        time.Time `json:"startTime" gorm:"index:idx_run_start_time"`
	ExtractorVersion string    `json:"extractorVersion" gorm:"size:64"`
	PresetCount      int       `json:"presetCount"`
	Presets          []Preset  `json:"presets" gorm:"foreignKey:RunID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*ExtractionRun) TableName() string {
	return "extraction_runs"
}

// Preset is a saved waymark preset with an enabled bitmask
type Preset struct {
	ID       uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	RunID    string         `json:"runId" gorm:"size:36;index:idx_preset_run_id"`
	Slot     int            `json:"slot"`                // 1-based table position
	Name     string         `json:"name" gorm:"size:32"` // "Preset N"
	ZoneID   uint16         `json:"zoneId" gorm:"index:idx_preset_zone_id"`
	Enabled  uint8          `json:"enabled"` // bit i = waymark i active
	SavedAt  time.Time      `json:"savedAt"` // created_at field of the table entry
	Export   datatypes.JSON `json:"export"`  // canonical JSON line
	Waymarks []Waymark      `json:"waymarks" gorm:"foreignKey:PresetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*Preset) TableName() string {
	return "presets"
}

// Waymark is one positioned marker of a preset
type Waymark struct {
	ID       uint    `json:"id" gorm:"primarykey;autoIncrement;"`
	PresetID uint    `json:"presetId" gorm:"index:idx_waymark_preset_id"`
	Slot     uint8   `json:"slot"`                // 0-7
	Label    string  `json:"label" gorm:"size:8"` // A ... Four
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Position string  `json:"position" gorm:"size:128"` // WKT
	Active   bool    `json:"active"`
}

func (*Waymark) TableName() string {
	return "waymarks"
}

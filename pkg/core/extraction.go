// pkg/core/extraction.go
package core

import "time"

// Extraction describes one decode pass over one save file.
type Extraction struct {
	ID               string
	SourcePath       string
	SourceSize       int64
	StartTime        time.Time
	ExtractorVersion string
	PresetCount      int
}

// Package influxstorage implements the storage.Backend interface on InfluxDB.
// Every waymark of every preset becomes one point of the "waymark" measurement,
// stamped with the preset's save time.
package influxstorage

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/fmarker/extractor/internal/influx"
	"github.com/fmarker/extractor/pkg/core"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement is the measurement name of waymark points
const Measurement = "waymark"

// writeTimeout bounds the blocking write at the end of a run
const writeTimeout = 30 * time.Second

// Backend buffers points during a run and writes them when it ends.
type Backend struct {
	manager *influx.Manager
	run     *core.Extraction
	points  []*influxdb2_write.Point
	mu      sync.Mutex
}

// New creates a new InfluxDB storage backend.
func New(manager *influx.Manager) *Backend {
	return &Backend{manager: manager}
}

// Init connects to InfluxDB or opens the backup file.
func (b *Backend) Init() error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return b.manager.Connect(ctx)
}

// Close flushes and closes the connection.
func (b *Backend) Close() error {
	return b.manager.Close()
}

// StartExtraction begins a new run.
func (b *Backend) StartExtraction(run *core.Extraction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.run = run
	b.points = nil
	return nil
}

// AddPreset converts the preset's waymarks to points.
func (b *Backend) AddPreset(p *core.Preset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("no extraction started")
	}
	for _, w := range p.Waymarks {
		b.points = append(b.points, WaymarkPoint(b.run.ID, p, w))
	}
	return nil
}

// EndExtraction writes all buffered points, blocking until done.
func (b *Backend) EndExtraction() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.run == nil {
		return fmt.Errorf("no extraction started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := b.manager.WritePoints(ctx, b.points...); err != nil {
		return err
	}

	b.run = nil
	b.points = nil
	return nil
}

// WaymarkPoint builds the point for one waymark of a preset.
func WaymarkPoint(runID string, p *core.Preset, w core.Waymark) *influxdb2_write.Point {
	return influxdb2_write.NewPoint(
		Measurement,
		map[string]string{
			"preset": p.Name(),
			"slot":   w.Label(),
			"zone":   strconv.Itoa(int(p.ZoneID)),
			"run":    runID,
		},
		map[string]interface{}{
			"x":      w.Position.X,
			"y":      w.Position.Y,
			"z":      w.Position.Z,
			"active": w.Active,
		},
		p.CreatedAt,
	)
}

// Package sqlitestorage implements the storage.Backend interface using an in-memory
// SQLite database that is written to disk via VACUUM INTO when a run ends.
// It wraps the GORM backend via composition.
package sqlitestorage

import (
	"fmt"
	"log/slog"

	"github.com/fmarker/extractor/internal/database"
	gormstorage "github.com/fmarker/extractor/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Config holds configuration for the SQLite storage backend.
type Config struct {
	DumpPath string // file written at the end of each run; empty keeps the DB in memory only
	DSN      string // in-memory database to use; empty means the shared default
}

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	manager *database.Manager
	cfg     Config
	log     *slog.Logger
}

// New creates a new SQLite storage backend.
func New(cfg Config, logger *slog.Logger, dbLogger zerolog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m := database.NewManager(dbLogger)
	if err := m.ConnectSqlite(cfg.DSN); err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite DB: %w", err)
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			DB:     m.DB,
			Logger: logger,
		}),
		manager: m,
		cfg:     cfg,
		log:     logger,
	}, nil
}

// EndExtraction stores the run and dumps the database to disk.
func (b *Backend) EndExtraction() error {
	if err := b.Backend.EndExtraction(); err != nil {
		return err
	}
	if b.cfg.DumpPath == "" {
		return nil
	}
	if err := b.manager.DumpMemoryToDisk(b.cfg.DumpPath); err != nil {
		return err
	}
	b.log.Info("Wrote SQLite database", "path", b.cfg.DumpPath)
	return nil
}

// GetExportedFilePath returns the database file written at the end of a run.
func (b *Backend) GetExportedFilePath() string {
	return b.cfg.DumpPath
}

// Close closes the embedded GORM backend and the database.
func (b *Backend) Close() error {
	if err := b.Backend.Close(); err != nil {
		return err
	}
	return b.manager.Close()
}

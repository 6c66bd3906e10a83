package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fmarker/extractor/internal/config"
	"github.com/fmarker/extractor/internal/database"
	"github.com/fmarker/extractor/internal/storage"
	gormstorage "github.com/fmarker/extractor/internal/storage/gorm"
)

// runShow prints the presets of a stored run as JSON lines, the same lines
// extract printed when the run was recorded.
func runShow(runID string, out io.Writer) error {
	m, err := openStoredRuns(config.GetStorageConfig())
	if err != nil {
		Logger.Error("Failed to open stored runs", "error", err)
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			Logger.Warn("Failed to close database", "error", err)
		}
	}()

	store := gormstorage.New(gormstorage.Dependencies{DB: m.DB, Logger: Logger})
	run, presets, err := store.LoadRun(runID)
	if err != nil {
		Logger.Error("Failed to load run", "run", runID, "error", err)
		return err
	}

	Logger.Info("Loaded stored run",
		"run", run.ID,
		"source", run.SourcePath,
		"version", run.ExtractorVersion,
		"started", run.StartTime,
		"presets", len(presets))
	return printPresets(out, presets)
}

// openStoredRuns connects to the database the sqlite or postgres backend writes to.
func openStoredRuns(storageCfg config.StorageConfig) (*database.Manager, error) {
	m := database.NewManager(DBLogger)

	switch storageCfg.Type {
	case storage.TypeSQLite:
		path := storageCfg.SQLite.Path
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("no stored runs at %s: %w", path, err)
		}
		if err := m.ConnectSqlite(path); err != nil {
			return nil, err
		}
	case storage.TypePostgres:
		if err := m.ConnectPostgres(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("show needs storage.type %s or %s, got %q",
			storage.TypeSQLite, storage.TypePostgres, storageCfg.Type)
	}
	return m, nil
}

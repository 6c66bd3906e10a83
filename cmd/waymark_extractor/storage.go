package main

import (
	"fmt"

	"github.com/fmarker/extractor/internal/config"
	"github.com/fmarker/extractor/internal/influx"
	"github.com/fmarker/extractor/internal/storage"
	influxstorage "github.com/fmarker/extractor/internal/storage/influx"
	pgstorage "github.com/fmarker/extractor/internal/storage/postgres"
	sqlitestorage "github.com/fmarker/extractor/internal/storage/sqlite"
)

func createStorageBackend(storageCfg config.StorageConfig) (storage.Backend, error) {
	switch storageCfg.Type {
	case storage.TypePostgres:
		Logger.Info("Postgres storage backend initialized")
		return pgstorage.New(pgstorage.Dependencies{
			Logger:   Logger,
			DBLogger: DBLogger,
		}), nil

	case storage.TypeSQLite:
		backend, err := sqlitestorage.New(sqlitestorage.Config{
			DumpPath: storageCfg.SQLite.Path,
		}, Logger, DBLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		Logger.Info("SQLite storage backend initialized", "path", storageCfg.SQLite.Path)
		return backend, nil

	case storage.TypeInflux:
		influxCfg := config.GetInfluxConfig()
		Logger.Info("InfluxDB storage backend initialized", "url", influxCfg.URL(), "bucket", influxCfg.Bucket)
		return influxstorage.New(influx.NewManager(DBLogger, influxCfg)), nil

	default:
		backend, err := storage.NewBackend(storageCfg)
		if err != nil {
			return nil, err
		}
		Logger.Info("Storage backend initialized", "type", storageCfg.Type)
		return backend, nil
	}
}

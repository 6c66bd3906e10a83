// Package postgres implements the storage.Backend interface on a PostgreSQL
// database configured through the db.* keys.
package postgres

import (
	"fmt"
	"log/slog"

	"github.com/fmarker/extractor/internal/database"
	gormstorage "github.com/fmarker/extractor/internal/storage/gorm"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies holds all dependencies for the Postgres storage backend.
type Dependencies struct {
	DB       *gorm.DB // optional; a connection is opened on Init when nil
	Logger   *slog.Logger
	DBLogger zerolog.Logger
}

// Backend wraps the GORM backend with connection management.
// Init must be called before any run is recorded.
type Backend struct {
	*gormstorage.Backend
	deps    Dependencies
	manager *database.Manager
}

// New creates a new Postgres storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{
		deps: deps,
	}
}

// Init connects if needed and migrates the schema.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		m := database.NewManager(b.deps.DBLogger)
		if err := m.ConnectPostgres(); err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		b.manager = m
		b.deps.DB = m.DB
	}

	b.Backend = gormstorage.New(gormstorage.Dependencies{
		DB:     b.deps.DB,
		Logger: b.deps.Logger,
	})
	if err := b.Backend.Init(); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}
	return nil
}

// Close closes the connection if this backend opened it.
func (b *Backend) Close() error {
	if b.Backend != nil {
		if err := b.Backend.Close(); err != nil {
			return err
		}
	}
	if b.manager != nil {
		return b.manager.Close()
	}
	return nil
}

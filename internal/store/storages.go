package store

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-dataset-keeper/internal/config"
	"github.com/MKhiriev/go-dataset-keeper/internal/logger"
	"github.com/MKhiriev/go-dataset-keeper/migrations"
)

// Storages bundles every repository the service layer depends on.
type Storages struct {
	Datasets DatasetRepository
}

// NewStorages selects and constructs the storage backend from the DSN:
// postgres:// and postgresql:// DSNs connect via pgx (running the embedded
// migrations for the default table), "memory" builds the in-process store,
// and anything else is treated as a SQLite database file path.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	dsn := cfg.DB.DSN

	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}

		// migrations manage only the default table; a custom table name
		// points at an externally provisioned table
		if cfg.DB.Table == "datasets" {
			if err = migrations.Migrate(db.DB); err != nil {
				return nil, err
			}
		}

		return &Storages{Datasets: NewDatasetRepository(db, cfg.DB.Table, log)}, nil

	case dsn == "memory" || dsn == ":memory:":
		log.Warn().Str("func", "NewStorages").Msg("using non-durable in-memory dataset store")
		return &Storages{Datasets: NewMemoryDatasets()}, nil

	default:
		datasets, err := NewSQLiteDatasets(dsn, cfg.DB.Table, log)
		if err != nil {
			return nil, err
		}
		return &Storages{Datasets: datasets}, nil
	}
}

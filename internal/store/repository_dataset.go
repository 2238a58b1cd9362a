package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-dataset-keeper/internal/logger"
	"github.com/MKhiriev/go-dataset-keeper/models"
)

// datasetRepository is the PostgreSQL-backed implementation of
// [DatasetRepository]. Every conditional write is a single statement, so the
// database is the sole arbiter of ordering: ON CONFLICT DO NOTHING for the
// existence precondition on create, RETURNING on update and delete to detect
// a missing record without a separate read.
//
// Methods obtain a context-scoped logger via [logger.FromContext] so all
// database interactions are traced with structured fields.
type datasetRepository struct {
	*DB
	queries datasetQueries
	logger  *logger.Logger
}

// NewDatasetRepository constructs a [DatasetRepository] backed by the
// provided database connection, operating on the given table.
func NewDatasetRepository(db *DB, table string, logger *logger.Logger) DatasetRepository {
	return &datasetRepository{
		DB:      db,
		queries: newDatasetQueries(table),
		logger:  logger,
	}
}

// Create inserts a new dataset record. The "does not already exist"
// precondition is carried by the INSERT itself: a conflicting key leaves the
// statement with zero affected rows, which maps to [ErrDatasetExists].
func (d *datasetRepository) Create(ctx context.Context, dataset models.Dataset) error {
	log := logger.FromContext(ctx)

	result, err := d.DB.ExecContext(ctx, d.queries.insert,
		dataset.KeyID,
		dataset.Version,
		dataset.Payload,
		metaArg(dataset.Meta),
		dataset.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDatasetExists
		}
		log.Err(err).
			Str("func", "datasetRepository.Create").
			Str("key_id", dataset.KeyID).
			Msg("failed to execute insert query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "datasetRepository.Create").
			Str("key_id", dataset.KeyID).
			Msg("failed to read affected rows after insert")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected == 0 {
		log.Warn().
			Str("func", "datasetRepository.Create").
			Str("key_id", dataset.KeyID).
			Msg("key collision on create")
		return ErrDatasetExists
	}

	log.Debug().
		Str("func", "datasetRepository.Create").
		Str("key_id", dataset.KeyID).
		Msg("dataset created")

	return nil
}

// Get fetches the record for keyID with no side effects.
func (d *datasetRepository) Get(ctx context.Context, keyID string) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	dataset, err := scanDataset(d.DB.QueryRowContext(ctx, d.queries.get, keyID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Dataset{}, ErrDatasetNotFound
		}
		log.Err(err).
			Str("func", "datasetRepository.Get").
			Str("key_id", keyID).
			Msg("failed to query dataset")
		return models.Dataset{}, err
	}

	return dataset, nil
}

// Update replaces payload, meta, and updatedAt and increments the version by
// exactly 1 in one statement. The "exists" precondition is carried by the
// UPDATE: no matched row means no result from RETURNING, which maps to
// [ErrDatasetNotFound].
func (d *datasetRepository) Update(ctx context.Context, keyID string, payload string, meta json.RawMessage, updatedAt time.Time) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	dataset, err := scanDataset(d.DB.QueryRowContext(ctx, d.queries.update, keyID, payload, metaArg(meta), updatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "datasetRepository.Update").
				Str("key_id", keyID).
				Msg("update precondition failed: record not found")
			return models.Dataset{}, ErrDatasetNotFound
		}
		log.Err(err).
			Str("func", "datasetRepository.Update").
			Str("key_id", keyID).
			Msg("failed to execute update query")
		return models.Dataset{}, err
	}

	log.Debug().
		Str("func", "datasetRepository.Update").
		Str("key_id", keyID).
		Int64("version", dataset.Version).
		Msg("dataset updated")

	return dataset, nil
}

// Delete removes the record for keyID. RETURNING distinguishes a successful
// delete from a missing record in the same statement.
func (d *datasetRepository) Delete(ctx context.Context, keyID string) error {
	log := logger.FromContext(ctx)

	var deletedKeyID string
	err := d.DB.QueryRowContext(ctx, d.queries.delete, keyID).Scan(&deletedKeyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "datasetRepository.Delete").
				Str("key_id", keyID).
				Msg("delete precondition failed: record not found")
			return ErrDatasetNotFound
		}
		log.Err(err).
			Str("func", "datasetRepository.Delete").
			Str("key_id", keyID).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Debug().
		Str("func", "datasetRepository.Delete").
		Str("key_id", keyID).
		Msg("dataset deleted")

	return nil
}

// rowScanner is the subset of *sql.Row and *sql.Rows used by scanDataset.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDataset reads one dataset row in the canonical column order:
// key_id, version, payload, meta, updated_at. A NULL meta column becomes a
// nil RawMessage, which marshals back to JSON null.
func scanDataset(row rowScanner) (models.Dataset, error) {
	var dataset models.Dataset
	var meta []byte

	if err := row.Scan(
		&dataset.KeyID,
		&dataset.Version,
		&dataset.Payload,
		&meta,
		&dataset.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Dataset{}, err
		}
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if meta != nil {
		dataset.Meta = json.RawMessage(meta)
	}

	return dataset, nil
}

// metaArg converts a RawMessage into a driver argument, mapping an absent
// meta to SQL NULL.
func metaArg(meta json.RawMessage) any {
	if len(meta) == 0 {
		return nil
	}
	return []byte(meta)
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-dataset-keeper/internal/logger"
	"github.com/MKhiriev/go-dataset-keeper/models"
)

// sqliteDatasetSchema is applied on open. SQLite deployments are single-node
// by nature, so the schema lives here instead of the goose migration set.
const sqliteDatasetSchema = `CREATE TABLE IF NOT EXISTS %s (
	key_id     TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	payload    TEXT NOT NULL,
	meta       TEXT,
	updated_at TEXT NOT NULL
);`

// sqliteDatasetRepository implements [DatasetRepository] on an embedded
// SQLite database. The single writer lock of SQLite already serializes
// writes; the conditional semantics are expressed through the primary-key
// constraint (create) and affected-row counts (update, delete).
//
// Timestamps are stored as RFC 3339 UTC strings to stay independent of
// driver time handling.
type sqliteDatasetRepository struct {
	db     *sql.DB
	table  string
	logger *logger.Logger
}

// NewSQLiteDatasets opens (or creates) the SQLite database at path and
// ensures the dataset table exists.
func NewSQLiteDatasets(path string, table string, log *logger.Logger) (DatasetRepository, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpeningDatabase, err)
	}

	// the sqlite driver is not safe for concurrent writes over many conns
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(fmt.Sprintf(sqliteDatasetSchema, table)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpeningDatabase, err)
	}

	log.Info().Str("func", "NewSQLiteDatasets").Str("path", path).Msg("opened sqlite dataset store")

	return &sqliteDatasetRepository{db: db, table: table, logger: log}, nil
}

func (s *sqliteDatasetRepository) Create(ctx context.Context, dataset models.Dataset) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Insert(s.table).
		Columns("key_id", "version", "payload", "meta", "updated_at").
		Values(dataset.KeyID, dataset.Version, dataset.Payload, sqliteMetaArg(dataset.Meta), dataset.UpdatedAt.UTC().Format(time.RFC3339Nano)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		if isSQLiteConstraintViolation(err) {
			log.Warn().
				Str("func", "sqliteDatasetRepository.Create").
				Str("key_id", dataset.KeyID).
				Msg("key collision on create")
			return ErrDatasetExists
		}
		log.Err(err).
			Str("func", "sqliteDatasetRepository.Create").
			Str("key_id", dataset.KeyID).
			Msg("failed to execute insert query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (s *sqliteDatasetRepository) Get(ctx context.Context, keyID string) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("key_id", "version", "payload", "meta", "updated_at").
		From(s.table).
		Where(sq.Eq{"key_id": keyID}).
		ToSql()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	dataset, err := s.scanRow(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Dataset{}, ErrDatasetNotFound
		}
		log.Err(err).
			Str("func", "sqliteDatasetRepository.Get").
			Str("key_id", keyID).
			Msg("failed to query dataset")
		return models.Dataset{}, err
	}

	return dataset, nil
}

func (s *sqliteDatasetRepository) Update(ctx context.Context, keyID string, payload string, meta json.RawMessage, updatedAt time.Time) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := sq.Update(s.table).
		Set("version", sq.Expr("version + 1")).
		Set("payload", payload).
		Set("meta", sqliteMetaArg(meta)).
		Set("updated_at", updatedAt.UTC().Format(time.RFC3339Nano)).
		Where(sq.Eq{"key_id": keyID}).
		ToSql()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteDatasetRepository.Update").
			Str("key_id", keyID).
			Msg("failed to execute update query")
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		log.Warn().
			Str("func", "sqliteDatasetRepository.Update").
			Str("key_id", keyID).
			Msg("update precondition failed: record not found")
		return models.Dataset{}, ErrDatasetNotFound
	}

	selectQuery, selectArgs, err := sq.Select("key_id", "version", "payload", "meta", "updated_at").
		From(s.table).
		Where(sq.Eq{"key_id": keyID}).
		ToSql()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	dataset, err := s.scanRow(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
	if err != nil {
		return models.Dataset{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return dataset, nil
}

func (s *sqliteDatasetRepository) Delete(ctx context.Context, keyID string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete(s.table).
		Where(sq.Eq{"key_id": keyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteDatasetRepository.Delete").
			Str("key_id", keyID).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		log.Warn().
			Str("func", "sqliteDatasetRepository.Delete").
			Str("key_id", keyID).
			Msg("delete precondition failed: record not found")
		return ErrDatasetNotFound
	}

	return nil
}

func (s *sqliteDatasetRepository) scanRow(row rowScanner) (models.Dataset, error) {
	var dataset models.Dataset
	var meta sql.NullString
	var updatedAt string

	if err := row.Scan(
		&dataset.KeyID,
		&dataset.Version,
		&dataset.Payload,
		&meta,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Dataset{}, err
		}
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if meta.Valid {
		dataset.Meta = json.RawMessage(meta.String)
	}

	parsed, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	dataset.UpdatedAt = parsed

	return dataset, nil
}

// isSQLiteConstraintViolation reports whether err is the driver's signal for
// a primary-key or unique constraint breach.
func isSQLiteConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrConstraint
}

func sqliteMetaArg(meta json.RawMessage) any {
	if len(meta) == 0 {
		return nil
	}
	return string(meta)
}

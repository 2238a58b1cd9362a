package store

import "fmt"

// Query templates for the PostgreSQL repository. The table name is
// interpolated once at construction time; it is validated against a plain
// identifier pattern by the config layer, never taken from request input.
const (
	insertDatasetTemplate = `INSERT INTO %s (key_id, version, payload, meta, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key_id) DO NOTHING;`

	getDatasetTemplate = `SELECT key_id, version, payload, meta, updated_at
		FROM %s
		WHERE key_id = $1;`

	updateDatasetTemplate = `UPDATE %s
		SET version = version + 1, payload = $2, meta = $3, updated_at = $4
		WHERE key_id = $1
		RETURNING key_id, version, payload, meta, updated_at;`

	deleteDatasetTemplate = `DELETE FROM %s
		WHERE key_id = $1
		RETURNING key_id;`
)

// datasetQueries holds the per-table query text used by the PostgreSQL
// repository.
type datasetQueries struct {
	insert string
	get    string
	update string
	delete string
}

func newDatasetQueries(table string) datasetQueries {
	return datasetQueries{
		insert: fmt.Sprintf(insertDatasetTemplate, table),
		get:    fmt.Sprintf(getDatasetTemplate, table),
		update: fmt.Sprintf(updateDatasetTemplate, table),
		delete: fmt.Sprintf(deleteDatasetTemplate, table),
	}
}

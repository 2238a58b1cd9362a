package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDatasetExists is returned when a create targets a KeyID that is
	// already present. With server-generated random keys this is vanishingly
	// unlikely, but the conditional-write signal must still be surfaced.
	ErrDatasetExists = errors.New("dataset already exists")

	// ErrDatasetNotFound is returned when a read, update, or delete targets
	// a KeyID with no stored record.
	ErrDatasetNotFound = errors.New("dataset was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrOpeningDatabase is returned when the backend connection cannot be
	// established or the initial ping fails.
	ErrOpeningDatabase = errors.New("error opening database")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan dataset row")
)

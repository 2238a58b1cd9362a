package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-dataset-keeper/models"
)

// DatasetRepository is the storage contract every backend implements.
//
// All mutating operations are conditional writes: the backend applies them
// atomically and signals a precondition failure through a sentinel error,
// so the layers above stay backend-agnostic. The three outcomes callers
// must distinguish with [errors.Is] are success, [ErrDatasetExists]
// (create against an existing key) and [ErrDatasetNotFound] (read, update
// or delete against a missing key); anything else is an unexpected backend
// error.
type DatasetRepository interface {
	// Create persists dataset on the precondition that no record with its
	// KeyID exists yet. Returns ErrDatasetExists when the precondition fails.
	Create(ctx context.Context, dataset models.Dataset) error

	// Get returns the dataset stored under keyID, or ErrDatasetNotFound.
	// Has no side effects.
	Get(ctx context.Context, keyID string) (models.Dataset, error)

	// Update atomically increments the version by 1 and replaces payload,
	// meta, and updatedAt, on the precondition that a record for keyID
	// exists. Returns the post-update record, or ErrDatasetNotFound when
	// the precondition fails.
	Update(ctx context.Context, keyID string, payload string, meta json.RawMessage, updatedAt time.Time) (models.Dataset, error)

	// Delete removes the record for keyID on the precondition that it
	// exists. Returns ErrDatasetNotFound when the precondition fails.
	Delete(ctx context.Context, keyID string) error
}

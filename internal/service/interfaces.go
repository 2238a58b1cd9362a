package service

import (
	"context"

	"github.com/MKhiriev/go-dataset-keeper/models"
)

// KeyGenerator produces new dataset keys. Satisfied by
// [utils.UUIDGenerator]; tests substitute a deterministic implementation.
type KeyGenerator interface {
	Generate() string
}

// DatasetService owns the business rules around the stored entity: input
// validation, key generation, version and timestamp stamping. All validation
// happens before any storage call; conditional-write sentinels from the
// repository pass through unchanged.
type DatasetService interface {
	// Create validates input, assigns a fresh key, and persists the dataset
	// at version 1. Returns the stored record.
	Create(ctx context.Context, input models.DatasetInput) (models.Dataset, error)

	// Get returns the dataset stored under keyID.
	Get(ctx context.Context, keyID string) (models.Dataset, error)

	// Update validates input and replaces payload and meta under keyID,
	// bumping the version by 1. Returns the post-update record.
	Update(ctx context.Context, keyID string, input models.DatasetInput) (models.Dataset, error)

	// Delete removes the dataset stored under keyID.
	Delete(ctx context.Context, keyID string) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client provides an HTTP client for the dataset keeper server.
//
// The primary abstraction is [DatasetClient], which decouples callers from
// the REST transport. Error values defined in errors.go are mapped from HTTP
// status codes by mapHTTPError so that callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrConflict] for 409,
// [ErrNotFound] for 404).
package client

import (
	"context"

	"github.com/MKhiriev/go-dataset-keeper/models"
)

// DatasetClient defines transport-agnostic communication with the dataset
// keeper server. Implementations are responsible for serialisation and for
// mapping transport-level errors to the sentinel values defined in this
// package.
type DatasetClient interface {
	// Create stores a new dataset and returns the server-assigned key and
	// initial version.
	Create(ctx context.Context, input models.DatasetInput) (models.WriteResponse, error)

	// Read fetches the dataset stored under keyID.
	Read(ctx context.Context, keyID string) (models.Dataset, error)

	// Update replaces the payload and meta of the dataset stored under keyID
	// and returns the bumped version.
	Update(ctx context.Context, keyID string, input models.DatasetInput) (models.WriteResponse, error)

	// Delete removes the dataset stored under keyID.
	Delete(ctx context.Context, keyID string) (models.DeleteResponse, error)
}

package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/MKhiriev/go-dataset-keeper/models"
)

// memoryDatasetRepository is a non-durable [DatasetRepository] holding
// datasets in a mutex-guarded map. It honours the same conditional-write
// contract as the SQL backends, which makes it the substitute implementation
// used by tests and local "memory" DSN runs.
type memoryDatasetRepository struct {
	mu       sync.RWMutex
	datasets map[string]models.Dataset
}

// NewMemoryDatasets constructs an empty in-process repository.
func NewMemoryDatasets() DatasetRepository {
	return &memoryDatasetRepository{
		datasets: make(map[string]models.Dataset),
	}
}

func (m *memoryDatasetRepository) Create(_ context.Context, dataset models.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.datasets[dataset.KeyID]; exists {
		return ErrDatasetExists
	}

	m.datasets[dataset.KeyID] = cloneDataset(dataset)
	return nil
}

func (m *memoryDatasetRepository) Get(_ context.Context, keyID string) (models.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dataset, exists := m.datasets[keyID]
	if !exists {
		return models.Dataset{}, ErrDatasetNotFound
	}

	return cloneDataset(dataset), nil
}

func (m *memoryDatasetRepository) Update(_ context.Context, keyID string, payload string, meta json.RawMessage, updatedAt time.Time) (models.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dataset, exists := m.datasets[keyID]
	if !exists {
		return models.Dataset{}, ErrDatasetNotFound
	}

	dataset.Version++
	dataset.Payload = payload
	dataset.Meta = cloneMeta(meta)
	dataset.UpdatedAt = updatedAt
	m.datasets[keyID] = dataset

	return cloneDataset(dataset), nil
}

func (m *memoryDatasetRepository) Delete(_ context.Context, keyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.datasets[keyID]; !exists {
		return ErrDatasetNotFound
	}

	delete(m.datasets, keyID)
	return nil
}

// cloneDataset copies the record so callers cannot mutate stored state
// through the shared meta slice.
func cloneDataset(dataset models.Dataset) models.Dataset {
	dataset.Meta = cloneMeta(dataset.Meta)
	return dataset
}

func cloneMeta(meta json.RawMessage) json.RawMessage {
	if meta == nil {
		return nil
	}
	return json.RawMessage(append([]byte(nil), meta...))
}

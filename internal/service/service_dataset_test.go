package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-dataset-keeper/internal/config"
	"github.com/MKhiriev/go-dataset-keeper/internal/logger"
	"github.com/MKhiriev/go-dataset-keeper/internal/store"
	"github.com/MKhiriev/go-dataset-keeper/models"
)

// mockDatasetRepo is a function-field test double for store.DatasetRepository.
type mockDatasetRepo struct {
	createFn func(ctx context.Context, dataset models.Dataset) error
	getFn    func(ctx context.Context, keyID string) (models.Dataset, error)
	updateFn func(ctx context.Context, keyID string, payload string, meta json.RawMessage, updatedAt time.Time) (models.Dataset, error)
	deleteFn func(ctx context.Context, keyID string) error
}

func (m *mockDatasetRepo) Create(ctx context.Context, dataset models.Dataset) error {
	return m.createFn(ctx, dataset)
}

func (m *mockDatasetRepo) Get(ctx context.Context, keyID string) (models.Dataset, error) {
	return m.getFn(ctx, keyID)
}

func (m *mockDatasetRepo) Update(ctx context.Context, keyID string, payload string, meta json.RawMessage, updatedAt time.Time) (models.Dataset, error) {
	return m.updateFn(ctx, keyID, payload, meta, updatedAt)
}

func (m *mockDatasetRepo) Delete(ctx context.Context, keyID string) error {
	return m.deleteFn(ctx, keyID)
}

type fixedKeys struct{ key string }

func (f fixedKeys) Generate() string { return f.key }

func newTestService(repo store.DatasetRepository, cfg config.App) DatasetService {
	return NewDatasetService(repo, fixedKeys{key: "generated-key"}, cfg, logger.Nop())
}

func opaqueConfig() config.App {
	return config.App{MetaValidation: config.MetaOpaque}
}

func strictConfig() config.App {
	return config.App{
		MetaValidation:   config.MetaStrict,
		CipherName:       "AES-GCM",
		KDFName:          "PBKDF2",
		MinKDFIterations: 100000,
	}
}

func strPtr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	var stored models.Dataset
	repo := &mockDatasetRepo{
		createFn: func(_ context.Context, dataset models.Dataset) error {
			stored = dataset
			return nil
		},
	}

	svc := newTestService(repo, opaqueConfig())
	dataset, err := svc.Create(context.Background(), models.DatasetInput{Payload: strPtr("hello")})

	require.NoError(t, err)
	assert.Equal(t, "generated-key", dataset.KeyID)
	assert.Equal(t, int64(1), dataset.Version)
	assert.Equal(t, "hello", dataset.Payload)
	assert.Nil(t, dataset.Meta)
	assert.WithinDuration(t, time.Now().UTC(), dataset.UpdatedAt, 2*time.Second)
	assert.Equal(t, dataset, stored)
}

func TestCreate_MissingPayload(t *testing.T) {
	called := false
	repo := &mockDatasetRepo{
		createFn: func(_ context.Context, _ models.Dataset) error {
			called = true
			return nil
		},
	}

	svc := newTestService(repo, opaqueConfig())

	for name, input := range map[string]models.DatasetInput{
		"absent": {},
		"empty":  {Payload: strPtr("")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), input)

			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), "payload")
			assert.False(t, called, "no backend write may happen on validation failure")
		})
	}
}

func TestCreate_OpaqueMetaShape(t *testing.T) {
	repo := &mockDatasetRepo{
		createFn: func(_ context.Context, _ models.Dataset) error { return nil },
	}
	svc := newTestService(repo, opaqueConfig())

	tests := []struct {
		name    string
		meta    string
		wantErr bool
	}{
		{name: "object accepted", meta: `{"anything":"goes"}`},
		{name: "null accepted", meta: `null`},
		{name: "array rejected", meta: `[1,2]`, wantErr: true},
		{name: "string rejected", meta: `"text"`, wantErr: true},
		{name: "number rejected", meta: `42`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := models.DatasetInput{Payload: strPtr("p"), Meta: json.RawMessage(tt.meta)}
			_, err := svc.Create(context.Background(), input)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				assert.Contains(t, err.Error(), "meta")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreate_StrictMeta(t *testing.T) {
	repo := &mockDatasetRepo{
		createFn: func(_ context.Context, _ models.Dataset) error { return nil },
	}
	svc := newTestService(repo, strictConfig())

	validMeta := func() map[string]any {
		return map[string]any{
			"enc":           "AES-GCM",
			"kdf":           "PBKDF2",
			"iterations":    250000,
			"salt":          "c2FsdA==",
			"iv":            "aXY=",
			"schemaVersion": 1,
		}
	}

	tests := []struct {
		name       string
		mutate     func(m map[string]any)
		wantFields []string
	}{
		{name: "valid", mutate: func(map[string]any) {}},
		{
			name:       "wrong cipher",
			mutate:     func(m map[string]any) { m["enc"] = "ROT13" },
			wantFields: []string{"meta.enc"},
		},
		{
			name:       "wrong kdf",
			mutate:     func(m map[string]any) { m["kdf"] = "scrypt" },
			wantFields: []string{"meta.kdf"},
		},
		{
			name:       "iterations below minimum",
			mutate:     func(m map[string]any) { m["iterations"] = 1000 },
			wantFields: []string{"meta.iterations"},
		},
		{
			name:       "iterations not a number",
			mutate:     func(m map[string]any) { m["iterations"] = "many" },
			wantFields: []string{"meta.iterations"},
		},
		{
			name:       "empty salt",
			mutate:     func(m map[string]any) { m["salt"] = "" },
			wantFields: []string{"meta.salt"},
		},
		{
			name:       "missing iv",
			mutate:     func(m map[string]any) { delete(m, "iv") },
			wantFields: []string{"meta.iv"},
		},
		{
			name:       "schemaVersion not a number",
			mutate:     func(m map[string]any) { m["schemaVersion"] = "one" },
			wantFields: []string{"meta.schemaVersion"},
		},
		{
			name: "multiple violations are all reported",
			mutate: func(m map[string]any) {
				delete(m, "salt")
				delete(m, "iv")
			},
			wantFields: []string{"meta.salt", "meta.iv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := validMeta()
			tt.mutate(meta)
			raw, err := json.Marshal(meta)
			require.NoError(t, err)

			_, err = svc.Create(context.Background(), models.DatasetInput{Payload: strPtr("p"), Meta: raw})

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, ErrValidation)
			for _, field := range tt.wantFields {
				assert.Contains(t, err.Error(), field)
			}
		})
	}
}

func TestCreate_StrictRequiresMeta(t *testing.T) {
	repo := &mockDatasetRepo{
		createFn: func(_ context.Context, _ models.Dataset) error { return nil },
	}
	svc := newTestService(repo, strictConfig())

	_, err := svc.Create(context.Background(), models.DatasetInput{Payload: strPtr("p")})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "meta")
}

func TestCreate_NullMetaNormalized(t *testing.T) {
	var stored models.Dataset
	repo := &mockDatasetRepo{
		createFn: func(_ context.Context, dataset models.Dataset) error {
			stored = dataset
			return nil
		},
	}

	svc := newTestService(repo, opaqueConfig())
	input := models.DatasetInput{Payload: strPtr("p"), Meta: json.RawMessage(`null`)}
	_, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Nil(t, stored.Meta)
}

func TestCreate_RepositoryConflictPassesThrough(t *testing.T) {
	repo := &mockDatasetRepo{
		createFn: func(_ context.Context, _ models.Dataset) error {
			return store.ErrDatasetExists
		},
	}

	svc := newTestService(repo, opaqueConfig())
	_, err := svc.Create(context.Background(), models.DatasetInput{Payload: strPtr("p")})

	assert.ErrorIs(t, err, store.ErrDatasetExists)
}

func TestGet(t *testing.T) {
	repo := &mockDatasetRepo{
		getFn: func(_ context.Context, keyID string) (models.Dataset, error) {
			assert.Equal(t, "key-1", keyID)
			return models.Dataset{KeyID: keyID, Version: 2, Payload: "stored"}, nil
		},
	}

	svc := newTestService(repo, opaqueConfig())

	dataset, err := svc.Get(context.Background(), "key-1")
	require.NoError(t, err)
	assert.Equal(t, "stored", dataset.Payload)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoKeyID)
}

func TestUpdate_Success(t *testing.T) {
	repo := &mockDatasetRepo{
		updateFn: func(_ context.Context, keyID string, payload string, meta json.RawMessage, updatedAt time.Time) (models.Dataset, error) {
			assert.Equal(t, "key-1", keyID)
			assert.Equal(t, "world", payload)
			assert.WithinDuration(t, time.Now().UTC(), updatedAt, 2*time.Second)
			return models.Dataset{KeyID: keyID, Version: 2, Payload: payload, Meta: meta, UpdatedAt: updatedAt}, nil
		},
	}

	svc := newTestService(repo, opaqueConfig())
	dataset, err := svc.Update(context.Background(), "key-1", models.DatasetInput{Payload: strPtr("world")})

	require.NoError(t, err)
	assert.Equal(t, int64(2), dataset.Version)
}

func TestUpdate_ValidationBeforeStorage(t *testing.T) {
	called := false
	repo := &mockDatasetRepo{
		updateFn: func(_ context.Context, _ string, _ string, _ json.RawMessage, _ time.Time) (models.Dataset, error) {
			called = true
			return models.Dataset{}, nil
		},
	}

	svc := newTestService(repo, opaqueConfig())
	_, err := svc.Update(context.Background(), "key-1", models.DatasetInput{})

	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, called)
}

func TestUpdate_NotFoundPassesThrough(t *testing.T) {
	repo := &mockDatasetRepo{
		updateFn: func(_ context.Context, _ string, _ string, _ json.RawMessage, _ time.Time) (models.Dataset, error) {
			return models.Dataset{}, store.ErrDatasetNotFound
		},
	}

	svc := newTestService(repo, opaqueConfig())
	_, err := svc.Update(context.Background(), "missing", models.DatasetInput{Payload: strPtr("p")})

	assert.ErrorIs(t, err, store.ErrDatasetNotFound)
}

func TestDelete(t *testing.T) {
	repo := &mockDatasetRepo{
		deleteFn: func(_ context.Context, keyID string) error {
			if keyID == "missing" {
				return store.ErrDatasetNotFound
			}
			return nil
		},
	}

	svc := newTestService(repo, opaqueConfig())

	assert.NoError(t, svc.Delete(context.Background(), "key-1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), store.ErrDatasetNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), ""), ErrNoKeyID)
}

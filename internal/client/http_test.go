// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-dataset-keeper/internal/logger"
	"github.com/MKhiriev/go-dataset-keeper/models"
)

func newTestClient(t *testing.T, serverURL string) *httpDatasetClient {
	t.Helper()
	log := logger.NewClientLogger("test")

	c, err := NewHTTPDatasetClient(Config{BaseURL: serverURL}, log)
	require.NoError(t, err)
	return c.(*httpDatasetClient)
}

func strPtr(s string) *string { return &s }

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain host gets scheme", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash trimmed", raw: "http://localhost:8080/", want: "http://localhost:8080"},
		{name: "https kept", raw: "https://data.example.com", want: "https://data.example.com"},
		{name: "empty", raw: "   ", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := normalizeBaseURL(test.raw)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestClientCreate_Success(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/data", r.URL.Path)

		var input models.DatasetInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		require.NotNil(t, input.Payload)
		assert.Equal(t, "ciphertext", *input.Payload)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.WriteResponse{KeyID: "key-1", Version: 1, UpdatedAt: now})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.Create(context.Background(), models.DatasetInput{Payload: strPtr("ciphertext")})

	require.NoError(t, err)
	assert.Equal(t, "key-1", got.KeyID)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, now, got.UpdatedAt.UTC())
}

func TestClientCreate_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid dataset provided: payload"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Create(context.Background(), models.DatasetInput{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "payload")
}

func TestClientCreate_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"dataset already exists"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Create(context.Background(), models.DatasetInput{Payload: strPtr("p")})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestClientRead_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/data/key-1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Dataset{
			KeyID:     "key-1",
			Version:   3,
			Payload:   "stored",
			Meta:      json.RawMessage(`{"enc":"AES-GCM"}`),
			UpdatedAt: time.Now().UTC(),
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.Read(context.Background(), "key-1")

	require.NoError(t, err)
	assert.Equal(t, "key-1", got.KeyID)
	assert.Equal(t, int64(3), got.Version)
	assert.Equal(t, "stored", got.Payload)
	assert.JSONEq(t, `{"enc":"AES-GCM"}`, string(got.Meta))
}

func TestClientRead_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"dataset not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Read(context.Background(), "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientUpdate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/data/key-1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.WriteResponse{KeyID: "key-1", Version: 2, UpdatedAt: time.Now().UTC()})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.Update(context.Background(), "key-1", models.DatasetInput{Payload: strPtr("v2")})

	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
}

func TestClientUpdate_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"dataset not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Update(context.Background(), "missing", models.DatasetInput{Payload: strPtr("v2")})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientDelete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/data/key-1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.DeleteResponse{Message: "Dataset deleted successfully", KeyID: "key-1"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.Delete(context.Background(), "key-1")

	require.NoError(t, err)
	assert.Equal(t, "key-1", got.KeyID)
}

func TestClientDelete_InternalServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Delete(context.Background(), "broken")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
}

func TestClientKeyIDEscaped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/key%2Fwith%2Fslashes", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"dataset not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Read(context.Background(), "key/with/slashes")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-dataset-keeper/internal/logger"
	"github.com/MKhiriev/go-dataset-keeper/internal/utils"
	"github.com/MKhiriev/go-dataset-keeper/models"
)

// Config holds the settings for the HTTP dataset client.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type httpDatasetClient struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPDatasetClient constructs an HTTP/REST implementation of
// [DatasetClient]. It normalises and validates the base URL from cfg.BaseURL
// and configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPDatasetClient(cfg Config, logger *logger.Logger) (DatasetClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid client base url: %w", err)
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpDatasetClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Create implements [DatasetClient]. It POSTs input to POST /data and decodes
// the server-assigned key, version, and timestamp.
func (h *httpDatasetClient) Create(ctx context.Context, input models.DatasetInput) (models.WriteResponse, error) {
	var created models.WriteResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		SetResult(&created).
		Post("/data")
	if err != nil {
		return models.WriteResponse{}, fmt.Errorf("create request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.WriteResponse{}, err
	}

	return created, nil
}

// Read implements [DatasetClient]. It GETs /data/{keyID} and decodes the full
// dataset record.
func (h *httpDatasetClient) Read(ctx context.Context, keyID string) (models.Dataset, error) {
	var dataset models.Dataset

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&dataset).
		Get("/data/" + url.PathEscape(keyID))
	if err != nil {
		return models.Dataset{}, fmt.Errorf("read request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Dataset{}, err
	}

	return dataset, nil
}

// Update implements [DatasetClient]. It PUTs input to PUT /data/{keyID} and
// decodes the bumped version.
func (h *httpDatasetClient) Update(ctx context.Context, keyID string, input models.DatasetInput) (models.WriteResponse, error) {
	var updated models.WriteResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		SetResult(&updated).
		Put("/data/" + url.PathEscape(keyID))
	if err != nil {
		return models.WriteResponse{}, fmt.Errorf("update request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.WriteResponse{}, err
	}

	return updated, nil
}

// Delete implements [DatasetClient]. It sends DELETE /data/{keyID} and decodes
// the confirmation message.
func (h *httpDatasetClient) Delete(ctx context.Context, keyID string) (models.DeleteResponse, error) {
	var deleted models.DeleteResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&deleted).
		Delete("/data/" + url.PathEscape(keyID))
	if err != nil {
		return models.DeleteResponse{}, fmt.Errorf("delete request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DeleteResponse{}, err
	}

	return deleted, nil
}

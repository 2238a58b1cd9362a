package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-dataset-keeper/internal/config"
	"github.com/MKhiriev/go-dataset-keeper/internal/logger"
	"github.com/MKhiriev/go-dataset-keeper/internal/store"
	"github.com/MKhiriev/go-dataset-keeper/models"
)

type datasetService struct {
	datasetRepository store.DatasetRepository
	keys              KeyGenerator
	cfg               config.App

	logger *logger.Logger
}

func NewDatasetService(datasetRepository store.DatasetRepository, keys KeyGenerator, cfg config.App, logger *logger.Logger) DatasetService {
	return &datasetService{
		datasetRepository: datasetRepository,
		keys:              keys,
		cfg:               cfg,
		logger:            logger,
	}
}

func (d *datasetService) Create(ctx context.Context, input models.DatasetInput) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	if err := d.validateInput(input); err != nil {
		return models.Dataset{}, err
	}

	dataset := models.Dataset{
		KeyID:     d.keys.Generate(),
		Version:   1,
		Payload:   *input.Payload,
		Meta:      normalizeMeta(input.Meta),
		UpdatedAt: time.Now().UTC(),
	}

	if err := d.datasetRepository.Create(ctx, dataset); err != nil {
		return models.Dataset{}, err
	}

	log.Info().
		Str("func", "datasetService.Create").
		Str("key_id", dataset.KeyID).
		Msg("dataset created")

	return dataset, nil
}

func (d *datasetService) Get(ctx context.Context, keyID string) (models.Dataset, error) {
	if keyID == "" {
		return models.Dataset{}, ErrNoKeyID
	}

	return d.datasetRepository.Get(ctx, keyID)
}

func (d *datasetService) Update(ctx context.Context, keyID string, input models.DatasetInput) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	if keyID == "" {
		return models.Dataset{}, ErrNoKeyID
	}
	if err := d.validateInput(input); err != nil {
		return models.Dataset{}, err
	}

	dataset, err := d.datasetRepository.Update(ctx, keyID, *input.Payload, normalizeMeta(input.Meta), time.Now().UTC())
	if err != nil {
		return models.Dataset{}, err
	}

	log.Info().
		Str("func", "datasetService.Update").
		Str("key_id", keyID).
		Int64("version", dataset.Version).
		Msg("dataset updated")

	return dataset, nil
}

func (d *datasetService) Delete(ctx context.Context, keyID string) error {
	log := logger.FromContext(ctx)

	if keyID == "" {
		return ErrNoKeyID
	}

	if err := d.datasetRepository.Delete(ctx, keyID); err != nil {
		return err
	}

	log.Info().
		Str("func", "datasetService.Delete").
		Str("key_id", keyID).
		Msg("dataset deleted")

	return nil
}

// validateInput performs all structural checks before any storage call.
// Violations are collected rather than short-circuited so a single 400
// response can name every offending field.
func (d *datasetService) validateInput(input models.DatasetInput) error {
	var violations []string

	if input.Payload == nil || *input.Payload == "" {
		violations = append(violations, "payload")
	}

	strict := d.cfg.MetaValidation == config.MetaStrict
	violations = append(violations, validateMeta(input.Meta, strict, d.cfg)...)

	if len(violations) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, joinFields(violations))
	}

	return nil
}

package service

import (
	"github.com/MKhiriev/go-dataset-keeper/internal/config"
	"github.com/MKhiriev/go-dataset-keeper/internal/logger"
	"github.com/MKhiriev/go-dataset-keeper/internal/store"
	"github.com/MKhiriev/go-dataset-keeper/internal/utils"
)

// Services bundles every service the transport layer depends on.
type Services struct {
	Datasets DatasetService
}

func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	logger.Info().Msg("creating new services...")

	return &Services{
		Datasets: NewDatasetService(storages.Datasets, utils.NewUUIDGenerator(), cfg, logger),
	}
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-dataset-keeper/internal/logger"
	"github.com/MKhiriev/go-dataset-keeper/internal/utils"
	"github.com/MKhiriev/go-dataset-keeper/models"
)

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var input models.DatasetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Str("func", "*Handler.create").Msg("invalid JSON was passed")
		_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: "invalid JSON body"}, http.StatusBadRequest)
		return
	}

	dataset, err := h.services.Datasets.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, r, "*Handler.create", err)
		return
	}

	_, _ = utils.WriteJSON(w, models.WriteResponse{
		KeyID:     dataset.KeyID,
		Version:   dataset.Version,
		UpdatedAt: dataset.UpdatedAt,
	}, http.StatusCreated)
}

func (h *Handler) read(w http.ResponseWriter, r *http.Request) {
	keyID := chi.URLParam(r, "keyID")

	dataset, err := h.services.Datasets.Get(r.Context(), keyID)
	if err != nil {
		h.writeError(w, r, "*Handler.read", err)
		return
	}

	_, _ = utils.WriteJSON(w, dataset, http.StatusOK)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	keyID := chi.URLParam(r, "keyID")

	var input models.DatasetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Str("func", "*Handler.update").Msg("invalid JSON was passed")
		_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: "invalid JSON body"}, http.StatusBadRequest)
		return
	}

	dataset, err := h.services.Datasets.Update(r.Context(), keyID, input)
	if err != nil {
		h.writeError(w, r, "*Handler.update", err)
		return
	}

	_, _ = utils.WriteJSON(w, models.WriteResponse{
		KeyID:     dataset.KeyID,
		Version:   dataset.Version,
		UpdatedAt: dataset.UpdatedAt,
	}, http.StatusOK)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	keyID := chi.URLParam(r, "keyID")

	if err := h.services.Datasets.Delete(r.Context(), keyID); err != nil {
		h.writeError(w, r, "*Handler.delete", err)
		return
	}

	_, _ = utils.WriteJSON(w, models.DeleteResponse{
		Message: "Dataset deleted successfully",
		KeyID:   keyID,
	}, http.StatusOK)
}

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-dataset-keeper/internal/logger"
	"github.com/MKhiriev/go-dataset-keeper/internal/service"
	"github.com/MKhiriev/go-dataset-keeper/internal/store"
	"github.com/MKhiriev/go-dataset-keeper/internal/utils"
	"github.com/MKhiriev/go-dataset-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrValidation: http.StatusBadRequest,
	service.ErrNoKeyID:    http.StatusBadRequest,

	store.ErrDatasetExists:   http.StatusConflict,
	store.ErrDatasetNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err onto the fixed error taxonomy and writes the uniform
// JSON error body. Client-caused errors (4xx) echo the sentinel's message so
// the caller sees which fields were violated; everything else is logged and
// answered with a generic message to avoid leaking backend detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Msg("unexpected backend error")
		_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: "internal server error"}, status)
		return
	}

	log.Warn().Str("func", funcName).Str("error", err.Error()).Int("status", status).Send()
	_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: err.Error()}, status)
}

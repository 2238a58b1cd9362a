package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-dataset-keeper/internal/utils"
	"github.com/MKhiriev/go-dataset-keeper/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withCORS)
	router.Use(h.withLogging)

	router.Route("/data", func(r chi.Router) {
		r.Post("/", h.create)
		r.Route("/{keyID}", func(r chi.Router) {
			r.Get("/", h.read)
			r.Put("/", h.update)
			r.Delete("/", h.delete)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: "route not found"}, http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: "method not allowed"}, http.StatusMethodNotAllowed)
	})

	return router
}

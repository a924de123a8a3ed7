package models

import (
	"net/http"

	"agentstudio/internal/store"
)

// RegisterRoutes adds all model endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /api/models", h.List)
	mux.HandleFunc("POST /api/models", h.Create)
	mux.HandleFunc("GET /api/models/{modelId}", h.Get)
	mux.HandleFunc("PUT /api/models/{modelId}", h.Update)
	mux.HandleFunc("DELETE /api/models/{modelId}", h.Delete)
}

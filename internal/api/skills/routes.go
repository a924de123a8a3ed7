package skills

import (
	"net/http"

	"agentstudio/internal/store"
)

// RegisterRoutes adds all skill endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /api/skills", h.List)
	mux.HandleFunc("POST /api/skills", h.Create)
	mux.HandleFunc("GET /api/skills/{skillId}", h.Get)
	mux.HandleFunc("PUT /api/skills/{skillId}", h.Update)
	mux.HandleFunc("DELETE /api/skills/{skillId}", h.Delete)
}

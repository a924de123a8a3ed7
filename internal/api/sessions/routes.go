package sessions

import (
	"net/http"

	"agentstudio/internal/store"
)

// RegisterRoutes adds all session endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /api/sessions", h.List)
	mux.HandleFunc("POST /api/sessions", h.Create)
	mux.HandleFunc("GET /api/sessions/{sessionId}", h.Get)
	mux.HandleFunc("DELETE /api/sessions/{sessionId}", h.Delete)

	mux.HandleFunc("GET /api/sessions/{sessionId}/messages", h.Messages)
	mux.HandleFunc("POST /api/sessions/{sessionId}/messages", h.AddMessage)
}

package workflows

import (
	"net/http"

	"agentstudio/internal/store"
)

// RegisterRoutes adds all workflow endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /api/workflows", h.List)
	mux.HandleFunc("POST /api/workflows", h.Create)
	mux.HandleFunc("GET /api/workflows/{workflowId}", h.Get)
	mux.HandleFunc("PUT /api/workflows/{workflowId}", h.Update)
	mux.HandleFunc("DELETE /api/workflows/{workflowId}", h.Delete)

	mux.HandleFunc("GET /api/workflows/{workflowId}/agents", h.ListAgents)
	mux.HandleFunc("POST /api/workflows/{workflowId}/agents/{agentId}", h.LinkAgent)
	mux.HandleFunc("DELETE /api/workflows/{workflowId}/agents/{agentId}", h.UnlinkAgent)

	mux.HandleFunc("GET /api/workflows/{workflowId}/export", h.Export)
}

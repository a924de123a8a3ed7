package agents

import (
	"net/http"

	"agentstudio/internal/store"
)

// RegisterRoutes adds all agent endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /api/agents", h.List)
	mux.HandleFunc("POST /api/agents", h.Create)
	mux.HandleFunc("GET /api/agents/{agentId}", h.Get)
	mux.HandleFunc("PUT /api/agents/{agentId}", h.Update)
	mux.HandleFunc("DELETE /api/agents/{agentId}", h.Delete)

	mux.HandleFunc("GET /api/agents/{agentId}/models", h.ListModels)
	mux.HandleFunc("POST /api/agents/{agentId}/models/{modelId}", h.LinkModel)
	mux.HandleFunc("DELETE /api/agents/{agentId}/models/{modelId}", h.UnlinkModel)

	mux.HandleFunc("GET /api/agents/{agentId}/skills", h.ListSkills)
	mux.HandleFunc("POST /api/agents/{agentId}/skills/{skillId}", h.LinkSkill)
	mux.HandleFunc("DELETE /api/agents/{agentId}/skills/{skillId}", h.UnlinkSkill)

	mux.HandleFunc("GET /api/agents/{agentId}/agents", h.ListAgents)
	mux.HandleFunc("POST /api/agents/{agentId}/agents/{childId}", h.LinkAgent)
	mux.HandleFunc("DELETE /api/agents/{agentId}/agents/{childId}", h.UnlinkAgent)
}

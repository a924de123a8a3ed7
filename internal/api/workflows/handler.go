package workflows

import (
	"encoding/json"
	"net/http"
	"strconv"

	"agentstudio/internal/api"
	"agentstudio/internal/domain"
	"agentstudio/internal/store"
)

// Handler handles workflow HTTP requests, including agent links and the
// export endpoint that materialises the full nested configuration.
type Handler struct {
	store *store.Store
}

// List handles GET /api/workflows.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	workflows, err := h.store.Workflows.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Workflows retrieved successfully", workflows))
}

// Get handles GET /api/workflows/{workflowId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "workflowId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	wf, err := h.store.Workflows.Get(r.Context(), id)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Workflow retrieved successfully", wf))
}

// Create handles POST /api/workflows.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var wf domain.Workflow
	if err := json.NewDecoder(r.Body).Decode(&wf); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("invalid JSON body", corrID, nil))
		return
	}
	if wf.Name == "" || wf.UserID == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"name and user_id are required", corrID, nil))
		return
	}

	created, err := h.store.Workflows.Create(r.Context(), &wf)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Workflow created successfully", created))
}

// Update handles PUT /api/workflows/{workflowId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "workflowId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	var wf domain.Workflow
	if err := json.NewDecoder(r.Body).Decode(&wf); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("invalid JSON body", corrID, nil))
		return
	}
	wf.ID = id

	updated, err := h.store.Workflows.Update(r.Context(), &wf)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Workflow updated successfully", updated))
}

// Delete handles DELETE /api/workflows/{workflowId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "workflowId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Workflows.Delete(r.Context(), id); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Workflow deleted successfully", nil))
}

// ListAgents handles GET /api/workflows/{workflowId}/agents.
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "workflowId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if _, err := h.store.Workflows.Get(r.Context(), id); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	links, err := h.store.Workflows.Links(r.Context(), id)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Workflow agents retrieved successfully", links))
}

// LinkAgent handles POST /api/workflows/{workflowId}/agents/{agentId}.
// The link role defaults to sender and can be set with the agent_type query
// parameter; sequence_id orders agents in sequential workflows.
func (h *Handler) LinkAgent(w http.ResponseWriter, r *http.Request) {
	workflowID, ok := api.PathID(w, r, "workflowId")
	if !ok {
		return
	}
	agentID, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	agentType := domain.WorkflowAgentSender
	switch r.URL.Query().Get("agent_type") {
	case "", string(domain.WorkflowAgentSender):
	case string(domain.WorkflowAgentReceiver):
		agentType = domain.WorkflowAgentReceiver
	default:
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"agent_type must be sender or receiver", corrID, nil))
		return
	}

	sequenceID := 0
	if raw := r.URL.Query().Get("sequence_id"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
				"sequence_id must be a non-negative integer", corrID, nil))
			return
		}
		sequenceID = n
	}

	if err := h.store.Workflows.LinkAgent(r.Context(), workflowID, agentID, agentType, sequenceID); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Agent linked to workflow successfully", nil))
}

// UnlinkAgent handles DELETE /api/workflows/{workflowId}/agents/{agentId}.
// The agent_type query parameter selects which link to remove, defaulting to
// sender.
func (h *Handler) UnlinkAgent(w http.ResponseWriter, r *http.Request) {
	workflowID, ok := api.PathID(w, r, "workflowId")
	if !ok {
		return
	}
	agentID, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	agentType := domain.WorkflowAgentSender
	switch r.URL.Query().Get("agent_type") {
	case "", string(domain.WorkflowAgentSender):
	case string(domain.WorkflowAgentReceiver):
		agentType = domain.WorkflowAgentReceiver
	default:
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"agent_type must be sender or receiver", corrID, nil))
		return
	}

	if err := h.store.Workflows.UnlinkAgent(r.Context(), workflowID, agentID, agentType); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Agent unlinked from workflow successfully", nil))
}

// Export handles GET /api/workflows/{workflowId}/export.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "workflowId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	exported, err := h.store.Workflows.Export(r.Context(), id)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Workflow exported successfully", exported))
}

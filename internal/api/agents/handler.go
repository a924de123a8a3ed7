package agents

import (
	"encoding/json"
	"net/http"

	"agentstudio/internal/api"
	"agentstudio/internal/domain"
	"agentstudio/internal/store"
)

// Handler handles agent HTTP requests, including the link endpoints for
// models, skills and child agents.
type Handler struct {
	store *store.Store
}

// List handles GET /api/agents.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	agents, err := h.store.Agents.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Agents retrieved successfully", agents))
}

// Get handles GET /api/agents/{agentId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	agent, err := h.store.Agents.Get(r.Context(), id)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Agent retrieved successfully", agent))
}

// Create handles POST /api/agents.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var a domain.Agent
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("invalid JSON body", corrID, nil))
		return
	}
	if a.UserID == "" || a.Type == "" || a.Config.Name == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"user_id, type and config.name are required", corrID, nil))
		return
	}

	created, err := h.store.Agents.Create(r.Context(), &a)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Agent created successfully", created))
}

// Update handles PUT /api/agents/{agentId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	var a domain.Agent
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("invalid JSON body", corrID, nil))
		return
	}
	a.ID = id

	updated, err := h.store.Agents.Update(r.Context(), &a)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Agent updated successfully", updated))
}

// Delete handles DELETE /api/agents/{agentId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Agents.Delete(r.Context(), id); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Agent deleted successfully", nil))
}

// ListModels handles GET /api/agents/{agentId}/models.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if _, err := h.store.Agents.Get(r.Context(), id); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	models, err := h.store.Agents.Models(r.Context(), id)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Agent models retrieved successfully", models))
}

// LinkModel handles POST /api/agents/{agentId}/models/{modelId}.
func (h *Handler) LinkModel(w http.ResponseWriter, r *http.Request) {
	agentID, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	modelID, ok := api.PathID(w, r, "modelId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Agents.LinkModel(r.Context(), agentID, modelID); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Model linked to agent successfully", nil))
}

// UnlinkModel handles DELETE /api/agents/{agentId}/models/{modelId}.
func (h *Handler) UnlinkModel(w http.ResponseWriter, r *http.Request) {
	agentID, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	modelID, ok := api.PathID(w, r, "modelId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Agents.UnlinkModel(r.Context(), agentID, modelID); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Model unlinked from agent successfully", nil))
}

// ListSkills handles GET /api/agents/{agentId}/skills.
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if _, err := h.store.Agents.Get(r.Context(), id); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	skills, err := h.store.Agents.Skills(r.Context(), id)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Agent skills retrieved successfully", skills))
}

// LinkSkill handles POST /api/agents/{agentId}/skills/{skillId}.
func (h *Handler) LinkSkill(w http.ResponseWriter, r *http.Request) {
	agentID, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	skillID, ok := api.PathID(w, r, "skillId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Agents.LinkSkill(r.Context(), agentID, skillID); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Skill linked to agent successfully", nil))
}

// UnlinkSkill handles DELETE /api/agents/{agentId}/skills/{skillId}.
func (h *Handler) UnlinkSkill(w http.ResponseWriter, r *http.Request) {
	agentID, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	skillID, ok := api.PathID(w, r, "skillId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Agents.UnlinkSkill(r.Context(), agentID, skillID); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Skill unlinked from agent successfully", nil))
}

// ListAgents handles GET /api/agents/{agentId}/agents.
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if _, err := h.store.Agents.Get(r.Context(), id); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	children, err := h.store.Agents.Agents(r.Context(), id)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Child agents retrieved successfully", children))
}

// LinkAgent handles POST /api/agents/{agentId}/agents/{childId}.
func (h *Handler) LinkAgent(w http.ResponseWriter, r *http.Request) {
	parentID, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	childID, ok := api.PathID(w, r, "childId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Agents.LinkAgent(r.Context(), parentID, childID); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Agent linked successfully", nil))
}

// UnlinkAgent handles DELETE /api/agents/{agentId}/agents/{childId}.
func (h *Handler) UnlinkAgent(w http.ResponseWriter, r *http.Request) {
	parentID, ok := api.PathID(w, r, "agentId")
	if !ok {
		return
	}
	childID, ok := api.PathID(w, r, "childId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Agents.UnlinkAgent(r.Context(), parentID, childID); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Agent unlinked successfully", nil))
}

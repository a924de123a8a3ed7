package skills

import (
	"encoding/json"
	"net/http"

	"agentstudio/internal/api"
	"agentstudio/internal/domain"
	"agentstudio/internal/store"
)

// Handler handles skill HTTP requests.
type Handler struct {
	store *store.Store
}

// List handles GET /api/skills.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	skills, err := h.store.Skills.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Skills retrieved successfully", skills))
}

// Get handles GET /api/skills/{skillId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "skillId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	skill, err := h.store.Skills.Get(r.Context(), id)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Skill retrieved successfully", skill))
}

// Create handles POST /api/skills.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var sk domain.Skill
	if err := json.NewDecoder(r.Body).Decode(&sk); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("invalid JSON body", corrID, nil))
		return
	}
	if sk.Name == "" || sk.UserID == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"name and user_id are required", corrID, nil))
		return
	}

	created, err := h.store.Skills.Create(r.Context(), &sk)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Skill created successfully", created))
}

// Update handles PUT /api/skills/{skillId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "skillId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	var sk domain.Skill
	if err := json.NewDecoder(r.Body).Decode(&sk); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("invalid JSON body", corrID, nil))
		return
	}
	sk.ID = id

	updated, err := h.store.Skills.Update(r.Context(), &sk)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Skill updated successfully", updated))
}

// Delete handles DELETE /api/skills/{skillId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "skillId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Skills.Delete(r.Context(), id); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Skill deleted successfully", nil))
}

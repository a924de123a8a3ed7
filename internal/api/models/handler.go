package models

import (
	"encoding/json"
	"net/http"

	"agentstudio/internal/api"
	"agentstudio/internal/domain"
	"agentstudio/internal/store"
)

// Handler handles model HTTP requests.
type Handler struct {
	store *store.Store
}

// List handles GET /api/models.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	models, err := h.store.Models.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Models retrieved successfully", models))
}

// Get handles GET /api/models/{modelId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "modelId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	model, err := h.store.Models.Get(r.Context(), id)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Model retrieved successfully", model))
}

// Create handles POST /api/models.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var m domain.Model
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("invalid JSON body", corrID, nil))
		return
	}
	if m.Model == "" || m.UserID == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"model and user_id are required", corrID, nil))
		return
	}

	created, err := h.store.Models.Create(r.Context(), &m)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Model created successfully", created))
}

// Update handles PUT /api/models/{modelId}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "modelId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	var m domain.Model
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("invalid JSON body", corrID, nil))
		return
	}
	m.ID = id

	updated, err := h.store.Models.Update(r.Context(), &m)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Model updated successfully", updated))
}

// Delete handles DELETE /api/models/{modelId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "modelId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Models.Delete(r.Context(), id); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Model deleted successfully", nil))
}

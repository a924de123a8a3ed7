package sessions

import (
	"encoding/json"
	"net/http"

	"agentstudio/internal/api"
	"agentstudio/internal/domain"
	"agentstudio/internal/store"
)

// Handler handles chat session and message HTTP requests.
type Handler struct {
	store *store.Store
}

// List handles GET /api/sessions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	sessions, err := h.store.Sessions.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Sessions retrieved successfully", sessions))
}

// Get handles GET /api/sessions/{sessionId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "sessionId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	sess, err := h.store.Sessions.Get(r.Context(), id)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Session retrieved successfully", sess))
}

// Create handles POST /api/sessions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var sess domain.Session
	if err := json.NewDecoder(r.Body).Decode(&sess); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("invalid JSON body", corrID, nil))
		return
	}
	if sess.UserID == "" || sess.WorkflowID <= 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"user_id and workflow_id are required", corrID, nil))
		return
	}

	created, err := h.store.Sessions.Create(r.Context(), &sess)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Session created successfully", created))
}

// Delete handles DELETE /api/sessions/{sessionId}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "sessionId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Sessions.Delete(r.Context(), id); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Session deleted successfully", nil))
}

// Messages handles GET /api/sessions/{sessionId}/messages.
func (h *Handler) Messages(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "sessionId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	if _, err := h.store.Sessions.Get(r.Context(), id); err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	messages, err := h.store.Sessions.Messages(r.Context(), id)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Messages retrieved successfully", messages))
}

// AddMessage handles POST /api/sessions/{sessionId}/messages.
func (h *Handler) AddMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r, "sessionId")
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	var m domain.Message
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("invalid JSON body", corrID, nil))
		return
	}
	m.SessionID = id
	if m.UserID == "" || m.Role == "" {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"user_id and role are required", corrID, nil))
		return
	}

	created, err := h.store.Sessions.AddMessage(r.Context(), &m)
	if err != nil {
		api.WriteStoreError(w, corrID, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.OK("Message added successfully", created))
}

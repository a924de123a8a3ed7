package conformance_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestModelCRUD(t *testing.T) {
	resetServer(t)

	created := createModel(t, "test-model")
	id := objectID(t, created)
	assertStringField(t, created, "model", "test-model")
	assertStringField(t, created, "user_id", guestUser)
	assertISOTimestamp(t, assertIsString(t, created, "created_at"))

	// Get
	resp := doRequest(t, http.MethodGet, fmt.Sprintf("/api/models/%d", id), nil)
	mustStatus(t, resp, http.StatusOK)
	got := dataObject(t, readJSON(t, resp))
	assertStringField(t, got, "model", "test-model")

	// Update
	resp = doRequest(t, http.MethodPut, fmt.Sprintf("/api/models/%d", id), map[string]any{
		"user_id":     guestUser,
		"model":       "renamed-model",
		"api_type":    "azure",
		"base_url":    "https://example.com/v1",
		"api_version": "2024-02-01",
	})
	mustStatus(t, resp, http.StatusOK)
	updated := dataObject(t, readJSON(t, resp))
	assertStringField(t, updated, "model", "renamed-model")
	assertStringField(t, updated, "api_type", "azure")

	// Delete
	resp = doRequest(t, http.MethodDelete, fmt.Sprintf("/api/models/%d", id), nil)
	mustStatus(t, resp, http.StatusOK)

	resp = doRequest(t, http.MethodGet, fmt.Sprintf("/api/models/%d", id), nil)
	mustStatus(t, resp, http.StatusNotFound)
	assertError(t, readJSON(t, resp), "NOT_FOUND")
}

func TestModelListFilterByUser(t *testing.T) {
	resetServer(t)

	resp := doRequest(t, http.MethodPost, "/api/models", map[string]any{
		"user_id": "someone-else@example.com",
		"model":   "private-model",
	})
	mustStatus(t, resp, http.StatusOK)
	_ = readJSON(t, resp)

	resp = doRequest(t, http.MethodGet, "/api/models?user_id=someone-else@example.com", nil)
	mustStatus(t, resp, http.StatusOK)
	models := dataArray(t, readJSON(t, resp))
	if len(models) != 1 {
		t.Fatalf("expected 1 model for user, got %d", len(models))
	}
	assertStringField(t, toObject(t, models[0]), "model", "private-model")
}

func TestModelCreateValidation(t *testing.T) {
	resetServer(t)

	resp := doRequest(t, http.MethodPost, "/api/models", map[string]any{
		"model": "no-user",
	})
	mustStatus(t, resp, http.StatusBadRequest)
	assertError(t, readJSON(t, resp), "VALIDATION_ERROR")
}

func TestModelSeededSet(t *testing.T) {
	resetServer(t)

	resp := doRequest(t, http.MethodGet, "/api/models?user_id="+guestUser, nil)
	mustStatus(t, resp, http.StatusOK)
	models := dataArray(t, readJSON(t, resp))
	if len(models) != 4 {
		t.Fatalf("expected 4 seeded models, got %d", len(models))
	}

	names := map[string]bool{}
	for _, m := range models {
		names[assertIsString(t, toObject(t, m), "model")] = true
	}
	for _, want := range []string{"zephyr", "gemini-1.5-pro-latest", "gpt4-turbo", "gpt-4-1106-preview"} {
		if !names[want] {
			t.Errorf("missing seeded model %s", want)
		}
	}
}

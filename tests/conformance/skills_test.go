package conformance_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestSkillCRUD(t *testing.T) {
	resetServer(t)

	created := createSkill(t, "fetch_weather")
	id := objectID(t, created)
	assertStringField(t, created, "name", "fetch_weather")

	// Get
	resp := doRequest(t, http.MethodGet, fmt.Sprintf("/api/skills/%d", id), nil)
	mustStatus(t, resp, http.StatusOK)
	got := dataObject(t, readJSON(t, resp))
	assertStringField(t, got, "name", "fetch_weather")

	// Update
	resp = doRequest(t, http.MethodPut, fmt.Sprintf("/api/skills/%d", id), map[string]any{
		"user_id": guestUser,
		"name":    "fetch_weather",
		"content": "def fetch_weather(city):\n    return city",
	})
	mustStatus(t, resp, http.StatusOK)

	// Delete
	resp = doRequest(t, http.MethodDelete, fmt.Sprintf("/api/skills/%d", id), nil)
	mustStatus(t, resp, http.StatusOK)

	resp = doRequest(t, http.MethodGet, fmt.Sprintf("/api/skills/%d", id), nil)
	mustStatus(t, resp, http.StatusNotFound)
	assertError(t, readJSON(t, resp), "NOT_FOUND")
}

func TestSkillSecretsAndLibraries(t *testing.T) {
	resetServer(t)

	resp := doRequest(t, http.MethodPost, "/api/skills", map[string]any{
		"user_id": guestUser,
		"name":    "secretive",
		"content": "def secretive(): pass",
		"secrets": []map[string]any{
			{"secret": "API_KEY", "value": nil},
		},
		"libraries": []string{"requests"},
	})
	mustStatus(t, resp, http.StatusOK)
	created := dataObject(t, readJSON(t, resp))

	resp = doRequest(t, http.MethodGet, fmt.Sprintf("/api/skills/%d", objectID(t, created)), nil)
	mustStatus(t, resp, http.StatusOK)
	got := dataObject(t, readJSON(t, resp))

	secrets := assertIsArray(t, got, "secrets")
	if len(secrets) != 1 {
		t.Fatalf("expected 1 secret, got %d", len(secrets))
	}
	assertStringField(t, toObject(t, secrets[0]), "secret", "API_KEY")

	libs := assertIsArray(t, got, "libraries")
	if len(libs) != 1 || libs[0] != "requests" {
		t.Errorf("libraries = %v", libs)
	}
}

func TestSkillSeededSet(t *testing.T) {
	resetServer(t)

	resp := doRequest(t, http.MethodGet, "/api/skills?user_id="+guestUser, nil)
	mustStatus(t, resp, http.StatusOK)
	skills := dataArray(t, readJSON(t, resp))
	if len(skills) != 2 {
		t.Fatalf("expected 2 seeded skills, got %d", len(skills))
	}

	names := map[string]bool{}
	for _, s := range skills {
		names[assertIsString(t, toObject(t, s), "name")] = true
	}
	if !names["generate_and_save_pdf"] || !names["generate_and_save_images"] {
		t.Errorf("seeded skills = %v", names)
	}
}

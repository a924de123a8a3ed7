package conformance_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"
)

const guestUser = "guestuser@gmail.com"

// doRequest makes an HTTP request to the test server and returns the response.
// The caller is responsible for closing the response body.
func doRequest(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, serverURL+path, bodyReader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// readJSON reads the response body and unmarshals it into a map.
func readJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(b, &result); err != nil {
		t.Fatalf("unmarshal response (status %d): body=%s err=%v", resp.StatusCode, string(b), err)
	}
	return result
}

// mustStatus asserts the HTTP response has the expected status code.
func mustStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d; body=%s", expected, resp.StatusCode, string(b))
	}
}

// resetServer calls POST /_studio/reset to return the server to its seeded state.
func resetServer(t *testing.T) {
	t.Helper()
	resp := doRequest(t, http.MethodPost, "/_studio/reset", nil)
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("reset server failed: status=%d body=%s", resp.StatusCode, string(b))
	}
}

// assertError validates the response matches the standard error envelope.
func assertError(t *testing.T, body map[string]any, expectedCategory string) {
	t.Helper()
	assertBoolField(t, body, "status", false)
	assertFieldPresent(t, body, "message")
	assertFieldPresent(t, body, "correlationId")
	if expectedCategory != "" {
		assertStringField(t, body, "category", expectedCategory)
	}
}

// assertOK validates the success envelope and returns the data field, which may
// be nil for responses that carry no payload.
func assertOK(t *testing.T, body map[string]any) any {
	t.Helper()
	assertBoolField(t, body, "status", true)
	assertFieldPresent(t, body, "message")
	return body["data"]
}

// dataObject asserts the envelope's data field is a JSON object and returns it.
func dataObject(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data := assertOK(t, body)
	m, ok := data.(map[string]any)
	if !ok {
		t.Fatalf("expected data to be object, got %T", data)
	}
	return m
}

// dataArray asserts the envelope's data field is a JSON array and returns it.
func dataArray(t *testing.T, body map[string]any) []any {
	t.Helper()
	data := assertOK(t, body)
	a, ok := data.([]any)
	if !ok {
		t.Fatalf("expected data to be array, got %T", data)
	}
	return a
}

// assertFieldPresent checks that a key exists in the map.
func assertFieldPresent(t *testing.T, m map[string]any, key string) {
	t.Helper()
	if _, ok := m[key]; !ok {
		t.Errorf("expected field %q to be present, got keys: %v", key, mapKeys(m))
	}
}

// assertStringField checks that a key exists and has the expected string value.
func assertStringField(t *testing.T, m map[string]any, key, expected string) {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return
	}
	s, ok := v.(string)
	if !ok {
		t.Errorf("expected field %q to be string, got %T", key, v)
		return
	}
	if s != expected {
		t.Errorf("field %q: expected %q, got %q", key, expected, s)
	}
}

// assertBoolField checks that a key exists and has the expected boolean value.
func assertBoolField(t *testing.T, m map[string]any, key string, expected bool) {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return
	}
	b, ok := v.(bool)
	if !ok {
		t.Errorf("expected field %q to be bool, got %T", key, v)
		return
	}
	if b != expected {
		t.Errorf("field %q: expected %v, got %v", key, expected, b)
	}
}

// assertIsString checks that a field is a string and returns its value.
func assertIsString(t *testing.T, m map[string]any, key string) string {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		t.Errorf("expected field %q to be string, got %T", key, v)
		return ""
	}
	return s
}

// assertIsObject checks that a field is a JSON object and returns it.
func assertIsObject(t *testing.T, m map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return nil
	}
	o, ok := v.(map[string]any)
	if !ok {
		t.Errorf("expected field %q to be object, got %T", key, v)
		return nil
	}
	return o
}

// assertIsArray checks that a field is a JSON array and returns it.
func assertIsArray(t *testing.T, m map[string]any, key string) []any {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return nil
	}
	a, ok := v.([]any)
	if !ok {
		t.Errorf("expected field %q to be array, got %T", key, v)
		return nil
	}
	return a
}

// assertISOTimestamp checks that a string value is a valid ISO 8601 timestamp.
func assertISOTimestamp(t *testing.T, value string) {
	t.Helper()
	if value == "" {
		t.Error("expected non-empty ISO timestamp")
		return
	}
	formats := []string{
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
		time.RFC3339Nano,
	}
	for _, f := range formats {
		if _, err := time.Parse(f, value); err == nil {
			return
		}
	}
	t.Errorf("value %q is not a valid ISO 8601 timestamp", value)
}

// toObject converts a slice element to a map.
func toObject(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	return m
}

// objectID extracts the numeric id of a created record as an int.
func objectID(t *testing.T, obj map[string]any) int {
	t.Helper()
	v, ok := obj["id"].(float64)
	if !ok {
		t.Fatalf("expected numeric id, got %T", obj["id"])
	}
	return int(v)
}

// createModel creates a model and returns the created record.
func createModel(t *testing.T, name string) map[string]any {
	t.Helper()
	resp := doRequest(t, http.MethodPost, "/api/models", map[string]any{
		"user_id":  guestUser,
		"model":    name,
		"api_type": "open_ai",
	})
	mustStatus(t, resp, http.StatusOK)
	return dataObject(t, readJSON(t, resp))
}

// createSkill creates a skill and returns the created record.
func createSkill(t *testing.T, name string) map[string]any {
	t.Helper()
	resp := doRequest(t, http.MethodPost, "/api/skills", map[string]any{
		"user_id": guestUser,
		"name":    name,
		"content": fmt.Sprintf("def %s():\n    pass", name),
	})
	mustStatus(t, resp, http.StatusOK)
	return dataObject(t, readJSON(t, resp))
}

// createAgent creates an agent of the given type and returns the created record.
func createAgent(t *testing.T, name, agentType string) map[string]any {
	t.Helper()
	resp := doRequest(t, http.MethodPost, "/api/agents", map[string]any{
		"user_id": guestUser,
		"type":    agentType,
		"config": map[string]any{
			"name":                  name,
			"human_input_mode":      "NEVER",
			"code_execution_config": "none",
		},
	})
	mustStatus(t, resp, http.StatusOK)
	return dataObject(t, readJSON(t, resp))
}

// createWorkflow creates a workflow and returns the created record.
func createWorkflow(t *testing.T, name string) map[string]any {
	t.Helper()
	resp := doRequest(t, http.MethodPost, "/api/workflows", map[string]any{
		"user_id": guestUser,
		"name":    name,
	})
	mustStatus(t, resp, http.StatusOK)
	return dataObject(t, readJSON(t, resp))
}

// mapKeys returns the keys of a map for diagnostic output.
func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

package domain

// API types for model backends.
const (
	APITypeOpenAI = "open_ai"
	APITypeAzure  = "azure"
	APITypeGoogle = "google"
)

// Model is a configured LLM endpoint that agents can be linked to.
type Model struct {
	ID          int    `json:"id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	UserID      string `json:"user_id"`
	Model       string `json:"model"`
	APIKey      string `json:"api_key,omitempty"`
	BaseURL     string `json:"base_url,omitempty"`
	APIType     string `json:"api_type"`
	APIVersion  string `json:"api_version,omitempty"`
	Description string `json:"description,omitempty"`
}

// ModelSpec is the trimmed form of a Model that gets injected into an agent's
// llm_config config_list. Database bookkeeping fields (id, timestamps,
// user_id, description) are deliberately absent.
type ModelSpec struct {
	Model      string `json:"model"`
	APIKey     string `json:"api_key,omitempty"`
	BaseURL    string `json:"base_url,omitempty"`
	APIType    string `json:"api_type,omitempty"`
	APIVersion string `json:"api_version,omitempty"`
}

// Spec returns the trimmed config_list entry for the model.
func (m *Model) Spec() ModelSpec {
	return ModelSpec{
		Model:      m.Model,
		APIKey:     m.APIKey,
		BaseURL:    m.BaseURL,
		APIType:    m.APIType,
		APIVersion: m.APIVersion,
	}
}

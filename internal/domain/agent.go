package domain

import (
	"bytes"
	"encoding/json"
)

// AgentType identifies the conversational role of an agent.
type AgentType string

// Supported agent types.
const (
	AgentTypeAssistant AgentType = "assistant"
	AgentTypeUserProxy AgentType = "userproxy"
	AgentTypeGroupChat AgentType = "groupchat"
)

// CodeExecutionConfig controls where an agent may execute skill code.
type CodeExecutionConfig string

// Supported code execution modes.
const (
	CodeExecutionNone   CodeExecutionConfig = "none"
	CodeExecutionLocal  CodeExecutionConfig = "local"
	CodeExecutionDocker CodeExecutionConfig = "docker"
)

// Agent is a chat participant. Its behaviour lives in Config, which is stored
// as a JSON column.
type Agent struct {
	ID        int         `json:"id"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
	UserID    string      `json:"user_id"`
	Type      AgentType   `json:"type"`
	Config    AgentConfig `json:"config"`
}

// AgentConfig is the runtime configuration of an agent. The admin_name,
// messages, max_round, speaker_selection_method and allow_repeat_speaker
// fields only apply to group chat agents and are omitted from exports of
// other agent types.
type AgentConfig struct {
	Name                    string              `json:"name"`
	Description             string              `json:"description,omitempty"`
	HumanInputMode          string              `json:"human_input_mode"`
	MaxConsecutiveAutoReply int                 `json:"max_consecutive_auto_reply"`
	SystemMessage           string              `json:"system_message,omitempty"`
	CodeExecutionConfig     CodeExecutionConfig `json:"code_execution_config"`
	DefaultAutoReply        string              `json:"default_auto_reply,omitempty"`
	LLMConfig               *LLMConfig          `json:"llm_config,omitempty"`

	// Group chat only.
	AdminName              string           `json:"admin_name,omitempty"`
	Messages               []map[string]any `json:"messages,omitempty"`
	MaxRound               int              `json:"max_round,omitempty"`
	SpeakerSelectionMethod string           `json:"speaker_selection_method,omitempty"`
	AllowRepeatSpeaker     *bool            `json:"allow_repeat_speaker,omitempty"`
}

// StripGroupChat returns a copy of the config with the group-chat-only fields
// cleared, so they disappear from serialized output.
func (c AgentConfig) StripGroupChat() AgentConfig {
	c.AdminName = ""
	c.Messages = nil
	c.MaxRound = 0
	c.SpeakerSelectionMethod = ""
	c.AllowRepeatSpeaker = nil
	return c
}

// LLMConfig configures the models available to an agent. A disabled config
// serializes as the JSON literal false, which is how user proxy agents mark
// that they never call a model.
type LLMConfig struct {
	Disabled    bool        `json:"-"`
	ConfigList  []ModelSpec `json:"config_list,omitempty"`
	Temperature float64     `json:"temperature"`
	CacheSeed   *int        `json:"cache_seed,omitempty"`
	Timeout     *int        `json:"timeout,omitempty"`
	MaxTokens   *int        `json:"max_tokens,omitempty"`
}

// llmConfigAlias avoids recursing into the custom JSON methods.
type llmConfigAlias LLMConfig

// MarshalJSON writes the literal false for disabled configs.
func (c LLMConfig) MarshalJSON() ([]byte, error) {
	if c.Disabled {
		return []byte("false"), nil
	}
	return json.Marshal(llmConfigAlias(c))
}

// UnmarshalJSON accepts either an object or the literal false.
func (c *LLMConfig) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("false")) {
		*c = LLMConfig{Disabled: true}
		return nil
	}
	var alias llmConfigAlias
	if err := json.Unmarshal(trimmed, &alias); err != nil {
		return err
	}
	*c = LLMConfig(alias)
	return nil
}

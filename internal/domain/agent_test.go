package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"agentstudio/internal/domain"
)

func TestLLMConfigMarshalDisabled(t *testing.T) {
	cfg := domain.LLMConfig{Disabled: true}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.Equal(t, "false", string(data))
}

func TestLLMConfigMarshalEnabled(t *testing.T) {
	cfg := domain.LLMConfig{
		Temperature: 0.3,
		ConfigList: []domain.ModelSpec{
			{Model: "gpt-4", APIType: domain.APITypeOpenAI},
		},
	}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, 0.3, decoded["temperature"])
	require.Len(t, decoded["config_list"], 1)
}

func TestLLMConfigUnmarshalFalse(t *testing.T) {
	var cfg domain.LLMConfig
	require.NoError(t, json.Unmarshal([]byte("false"), &cfg))
	require.True(t, cfg.Disabled)
}

func TestLLMConfigRoundTripInsideAgentConfig(t *testing.T) {
	cfg := domain.AgentConfig{
		Name:                "user_proxy",
		HumanInputMode:      "NEVER",
		CodeExecutionConfig: domain.CodeExecutionLocal,
		LLMConfig:           &domain.LLMConfig{Disabled: true},
	}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.Contains(t, string(data), `"llm_config":false`)

	var decoded domain.AgentConfig
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.LLMConfig)
	require.True(t, decoded.LLMConfig.Disabled)
}

func TestStripGroupChat(t *testing.T) {
	allowRepeat := true
	cfg := domain.AgentConfig{
		Name:                   "assistant",
		SystemMessage:          "You are helpful.",
		AdminName:              "groupchat",
		Messages:               []map[string]any{{"content": "hi"}},
		MaxRound:               100,
		SpeakerSelectionMethod: "auto",
		AllowRepeatSpeaker:     &allowRepeat,
	}

	stripped := cfg.StripGroupChat()

	require.Empty(t, stripped.AdminName)
	require.Nil(t, stripped.Messages)
	require.Zero(t, stripped.MaxRound)
	require.Empty(t, stripped.SpeakerSelectionMethod)
	require.Nil(t, stripped.AllowRepeatSpeaker)

	// Non-group-chat fields survive.
	require.Equal(t, "assistant", stripped.Name)
	require.Equal(t, "You are helpful.", stripped.SystemMessage)

	// The original is untouched.
	require.Equal(t, "groupchat", cfg.AdminName)
}

func TestStrippedGroupChatFieldsOmittedFromJSON(t *testing.T) {
	cfg := domain.AgentConfig{
		Name:                   "assistant",
		AdminName:              "groupchat",
		MaxRound:               10,
		SpeakerSelectionMethod: "auto",
	}.StripGroupChat()

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NotContains(t, string(data), "admin_name")
	require.NotContains(t, string(data), "max_round")
	require.NotContains(t, string(data), "speaker_selection_method")
	require.NotContains(t, string(data), "allow_repeat_speaker")
}

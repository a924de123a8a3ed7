package seed

import (
	"context"
	"fmt"

	"agentstudio/internal/domain"
	"agentstudio/internal/store"
)

// SeededModels holds the default models by short handle for linking.
type SeededModels struct {
	Gemini *domain.Model
	Azure  *domain.Model
	Zephyr *domain.Model
	GPT4   *domain.Model
}

// Models inserts the default model endpoints.
func Models(ctx context.Context, s *store.Store) (*SeededModels, error) {
	defs := []*domain.Model{
		{
			Model:       "zephyr",
			Description: "Local Huggingface Zephyr model via vLLM, LMStudio or Ollama",
			BaseURL:     "http://localhost:1234/v1",
			UserID:      GuestUser,
			APIType:     domain.APITypeOpenAI,
		},
		{
			Model:       "gemini-1.5-pro-latest",
			Description: "Google's Gemini model",
			UserID:      GuestUser,
			APIType:     domain.APITypeGoogle,
		},
		{
			Model:       "gpt4-turbo",
			Description: "Azure OpenAI model",
			UserID:      GuestUser,
			APIType:     domain.APITypeAzure,
			BaseURL:     "https://api.yourazureendpoint.com/v1",
		},
		{
			Model:       "gpt-4-1106-preview",
			Description: "OpenAI GPT-4 model",
			UserID:      GuestUser,
			APIType:     domain.APITypeOpenAI,
		},
	}

	seeded := &SeededModels{}
	for _, def := range defs {
		created, err := s.Models.Create(ctx, def)
		if err != nil {
			return nil, fmt.Errorf("insert model %s: %w", def.Model, err)
		}
		switch created.Model {
		case "zephyr":
			seeded.Zephyr = created
		case "gemini-1.5-pro-latest":
			seeded.Gemini = created
		case "gpt4-turbo":
			seeded.Azure = created
		case "gpt-4-1106-preview":
			seeded.GPT4 = created
		}
	}
	return seeded, nil
}

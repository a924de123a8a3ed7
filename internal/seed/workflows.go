package seed

import (
	"context"
	"fmt"

	"agentstudio/internal/domain"
	"agentstudio/internal/store"
)

// Workflows inserts the two default workflows and wires up every seeded link:
// agent↔model, agent↔skill, group chat membership and the workflow
// sender/receiver pairs.
func Workflows(ctx context.Context, s *store.Store, models *SeededModels, skills *SeededSkills, agents *SeededAgents) error {
	travel, err := s.Workflows.Create(ctx, &domain.Workflow{
		Name:        TravelWorkflowName,
		Description: "Travel workflow",
		UserID:      GuestUser,
		SampleTasks: []string{
			"Plan a 3 day trip to Hawaii Islands.",
			"Plan an eventful and exciting trip to Uzbeksitan.",
		},
	})
	if err != nil {
		return fmt.Errorf("insert workflow %q: %w", TravelWorkflowName, err)
	}

	dflt, err := s.Workflows.Create(ctx, &domain.Workflow{
		Name:        DefaultWorkflowName,
		Description: "Default workflow",
		UserID:      GuestUser,
		SampleTasks: []string{
			"paint a picture of a glass of ethiopian coffee, freshly brewed in a tall glass cup, on a table right in front of a lush green forest scenery",
			"Plot the stock price of NVIDIA YTD.",
		},
	})
	if err != nil {
		return fmt.Errorf("insert workflow %q: %w", DefaultWorkflowName, err)
	}

	// Default workflow: user_proxy → default_assistant with GPT-4 and the
	// image skill.
	if err := s.Agents.LinkModel(ctx, agents.DefaultAssistant.ID, models.GPT4.ID); err != nil {
		return fmt.Errorf("link default assistant model: %w", err)
	}
	if err := s.Agents.LinkSkill(ctx, agents.DefaultAssistant.ID, skills.GenerateImages.ID); err != nil {
		return fmt.Errorf("link default assistant skill: %w", err)
	}
	if err := s.Workflows.LinkAgent(ctx, dflt.ID, agents.UserProxy.ID, domain.WorkflowAgentSender, 0); err != nil {
		return fmt.Errorf("link default workflow sender: %w", err)
	}
	if err := s.Workflows.LinkAgent(ctx, dflt.ID, agents.DefaultAssistant.ID, domain.WorkflowAgentReceiver, 0); err != nil {
		return fmt.Errorf("link default workflow receiver: %w", err)
	}

	// Travel workflow: user_proxy → group chat of planner, local and language
	// assistants, everyone on GPT-4.
	members := []*domain.Agent{
		agents.PlannerAssistant,
		agents.LocalAssistant,
		agents.LanguageAssistant,
		agents.UserProxy,
	}
	for _, member := range members {
		if err := s.Agents.LinkAgent(ctx, agents.TravelGroupChat.ID, member.ID); err != nil {
			return fmt.Errorf("link group chat member %s: %w", member.Config.Name, err)
		}
	}
	modelUsers := []*domain.Agent{
		agents.TravelGroupChat,
		agents.PlannerAssistant,
		agents.LocalAssistant,
		agents.LanguageAssistant,
	}
	for _, user := range modelUsers {
		if err := s.Agents.LinkModel(ctx, user.ID, models.GPT4.ID); err != nil {
			return fmt.Errorf("link model for %s: %w", user.Config.Name, err)
		}
	}
	if err := s.Workflows.LinkAgent(ctx, travel.ID, agents.UserProxy.ID, domain.WorkflowAgentSender, 0); err != nil {
		return fmt.Errorf("link travel workflow sender: %w", err)
	}
	if err := s.Workflows.LinkAgent(ctx, travel.ID, agents.TravelGroupChat.ID, domain.WorkflowAgentReceiver, 0); err != nil {
		return fmt.Errorf("link travel workflow receiver: %w", err)
	}

	return nil
}

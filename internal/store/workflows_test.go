package store_test

import (
	"context"
	"errors"
	"testing"

	"agentstudio/internal/domain"
	"agentstudio/internal/store"
)

var _ store.WorkflowStore = (*store.SQLiteWorkflowStore)(nil)

func TestWorkflowCreateDefaults(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	created, err := s.Workflows.Create(ctx, &domain.Workflow{
		UserID: "user@example.com",
		Name:   "My Workflow",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.Type != domain.WorkflowAutonomous {
		t.Errorf("expected type=autonomous, got %s", created.Type)
	}
	if created.SummaryMethod != domain.SummaryMethodLast {
		t.Errorf("expected summary_method=last, got %s", created.SummaryMethod)
	}
}

func TestWorkflowSampleTasksRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	created, err := s.Workflows.Create(ctx, &domain.Workflow{
		UserID:      "user@example.com",
		Name:        "Tasked",
		SampleTasks: []string{"first task", "second task"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Workflows.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.SampleTasks) != 2 || got.SampleTasks[0] != "first task" {
		t.Errorf("sample_tasks = %v", got.SampleTasks)
	}
}

func TestWorkflowLinkAgentRoles(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	wf, err := s.Workflows.Create(ctx, &domain.Workflow{UserID: "user@example.com", Name: "wf"})
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}
	agent := createAgent(t, s, "helper", domain.AgentTypeAssistant)

	// The same agent can hold both roles but not the same role twice.
	if err := s.Workflows.LinkAgent(ctx, wf.ID, agent.ID, domain.WorkflowAgentSender, 0); err != nil {
		t.Fatalf("link sender: %v", err)
	}
	if err := s.Workflows.LinkAgent(ctx, wf.ID, agent.ID, domain.WorkflowAgentReceiver, 0); err != nil {
		t.Fatalf("link receiver: %v", err)
	}
	if err := s.Workflows.LinkAgent(ctx, wf.ID, agent.ID, domain.WorkflowAgentSender, 0); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate role, got %v", err)
	}

	links, err := s.Workflows.Links(ctx, wf.ID)
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}

	if err := s.Workflows.UnlinkAgent(ctx, wf.ID, agent.ID, domain.WorkflowAgentSender); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	links, err = s.Workflows.Links(ctx, wf.ID)
	if err != nil {
		t.Fatalf("links after unlink: %v", err)
	}
	if len(links) != 1 || links[0].AgentType != domain.WorkflowAgentReceiver {
		t.Errorf("links = %+v", links)
	}
}

func TestWorkflowLinkAgentMissingEnds(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	wf, err := s.Workflows.Create(ctx, &domain.Workflow{UserID: "user@example.com", Name: "wf"})
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}

	if err := s.Workflows.LinkAgent(ctx, 999, 1, domain.WorkflowAgentSender, 0); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing workflow, got %v", err)
	}
	if err := s.Workflows.LinkAgent(ctx, wf.ID, 999, domain.WorkflowAgentSender, 0); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing agent, got %v", err)
	}
}

func TestWorkflowExportNotFound(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Workflows.Export(ctx, 999)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWorkflowExportInjectsModelSpecs(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	wf, err := s.Workflows.Create(ctx, &domain.Workflow{UserID: "user@example.com", Name: "wf"})
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}

	agent, err := s.Agents.Create(ctx, &domain.Agent{
		UserID: "user@example.com",
		Type:   domain.AgentTypeAssistant,
		Config: domain.AgentConfig{
			Name:                "assistant",
			HumanInputMode:      "NEVER",
			CodeExecutionConfig: domain.CodeExecutionNone,
			LLMConfig:           &domain.LLMConfig{Temperature: 0.1},
		},
	})
	if err != nil {
		t.Fatalf("create agent: %v", err)
	}

	model, err := s.Models.Create(ctx, &domain.Model{
		UserID:      "user@example.com",
		Model:       "gpt-4",
		APIKey:      "sk-test",
		APIType:     domain.APITypeOpenAI,
		Description: "must not leak into spec",
	})
	if err != nil {
		t.Fatalf("create model: %v", err)
	}

	if err := s.Agents.LinkModel(ctx, agent.ID, model.ID); err != nil {
		t.Fatalf("link model: %v", err)
	}
	if err := s.Workflows.LinkAgent(ctx, wf.ID, agent.ID, domain.WorkflowAgentReceiver, 0); err != nil {
		t.Fatalf("link agent: %v", err)
	}

	exported, err := s.Workflows.Export(ctx, wf.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(exported.Agents) != 1 {
		t.Fatalf("expected 1 agent, got %d", len(exported.Agents))
	}

	cfg := exported.Agents[0].Agent.Config.LLMConfig
	if cfg == nil {
		t.Fatal("expected llm_config to be present")
	}
	if len(cfg.ConfigList) != 1 {
		t.Fatalf("expected 1 config_list entry, got %d", len(cfg.ConfigList))
	}
	spec := cfg.ConfigList[0]
	if spec.Model != "gpt-4" || spec.APIKey != "sk-test" {
		t.Errorf("spec = %+v", spec)
	}
	if cfg.Temperature != 0.1 {
		t.Errorf("temperature = %v, want original value preserved", cfg.Temperature)
	}
}

func TestWorkflowExportDisabledLLMConfigUntouched(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	wf, err := s.Workflows.Create(ctx, &domain.Workflow{UserID: "user@example.com", Name: "wf"})
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}

	proxy, err := s.Agents.Create(ctx, &domain.Agent{
		UserID: "user@example.com",
		Type:   domain.AgentTypeUserProxy,
		Config: domain.AgentConfig{
			Name:                "user_proxy",
			HumanInputMode:      "NEVER",
			CodeExecutionConfig: domain.CodeExecutionLocal,
			LLMConfig:           &domain.LLMConfig{Disabled: true},
		},
	})
	if err != nil {
		t.Fatalf("create agent: %v", err)
	}

	model, err := s.Models.Create(ctx, &domain.Model{UserID: "user@example.com", Model: "gpt-4"})
	if err != nil {
		t.Fatalf("create model: %v", err)
	}
	if err := s.Agents.LinkModel(ctx, proxy.ID, model.ID); err != nil {
		t.Fatalf("link model: %v", err)
	}
	if err := s.Workflows.LinkAgent(ctx, wf.ID, proxy.ID, domain.WorkflowAgentSender, 0); err != nil {
		t.Fatalf("link agent: %v", err)
	}

	exported, err := s.Workflows.Export(ctx, wf.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	cfg := exported.Agents[0].Agent.Config.LLMConfig
	if cfg == nil || !cfg.Disabled {
		t.Fatalf("expected disabled llm_config, got %+v", cfg)
	}
	if len(cfg.ConfigList) != 0 {
		t.Errorf("disabled config should not receive specs, got %d", len(cfg.ConfigList))
	}
}

func TestWorkflowExportStripsGroupChatFields(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	wf, err := s.Workflows.Create(ctx, &domain.Workflow{UserID: "user@example.com", Name: "wf"})
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}

	// An assistant with stale group chat fields in its config.
	assistant, err := s.Agents.Create(ctx, &domain.Agent{
		UserID: "user@example.com",
		Type:   domain.AgentTypeAssistant,
		Config: domain.AgentConfig{
			Name:                   "assistant",
			HumanInputMode:         "NEVER",
			CodeExecutionConfig:    domain.CodeExecutionNone,
			AdminName:              "stale",
			MaxRound:               99,
			SpeakerSelectionMethod: "auto",
		},
	})
	if err != nil {
		t.Fatalf("create agent: %v", err)
	}
	if err := s.Workflows.LinkAgent(ctx, wf.ID, assistant.ID, domain.WorkflowAgentReceiver, 0); err != nil {
		t.Fatalf("link agent: %v", err)
	}

	exported, err := s.Workflows.Export(ctx, wf.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	cfg := exported.Agents[0].Agent.Config
	if cfg.AdminName != "" || cfg.MaxRound != 0 || cfg.SpeakerSelectionMethod != "" {
		t.Errorf("group chat fields survived stripping: %+v", cfg)
	}
}

func TestWorkflowExportExpandsGroupChat(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	wf, err := s.Workflows.Create(ctx, &domain.Workflow{UserID: "user@example.com", Name: "wf"})
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}

	groupchat := createAgent(t, s, "chatroom", domain.AgentTypeGroupChat)
	memberA := createAgent(t, s, "member_a", domain.AgentTypeAssistant)
	memberB := createAgent(t, s, "member_b", domain.AgentTypeAssistant)

	for _, m := range []*domain.Agent{memberA, memberB} {
		if err := s.Agents.LinkAgent(ctx, groupchat.ID, m.ID); err != nil {
			t.Fatalf("link member: %v", err)
		}
	}
	if err := s.Workflows.LinkAgent(ctx, wf.ID, groupchat.ID, domain.WorkflowAgentReceiver, 0); err != nil {
		t.Fatalf("link group chat: %v", err)
	}

	exported, err := s.Workflows.Export(ctx, wf.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	agents := exported.Agents[0].Agent.Agents
	if len(agents) != 2 {
		t.Fatalf("expected 2 members, got %d", len(agents))
	}
	names := map[string]bool{}
	for _, a := range agents {
		names[a.Config.Name] = true
	}
	if !names["member_a"] || !names["member_b"] {
		t.Errorf("members = %v", names)
	}
}

func TestWorkflowExportCycleTerminates(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	wf, err := s.Workflows.Create(ctx, &domain.Workflow{UserID: "user@example.com", Name: "wf"})
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}

	a := createAgent(t, s, "a", domain.AgentTypeGroupChat)
	b := createAgent(t, s, "b", domain.AgentTypeGroupChat)

	if err := s.Agents.LinkAgent(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("link a→b: %v", err)
	}
	if err := s.Agents.LinkAgent(ctx, b.ID, a.ID); err != nil {
		t.Fatalf("link b→a: %v", err)
	}
	if err := s.Workflows.LinkAgent(ctx, wf.ID, a.ID, domain.WorkflowAgentReceiver, 0); err != nil {
		t.Fatalf("link agent: %v", err)
	}

	exported, err := s.Workflows.Export(ctx, wf.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	root := exported.Agents[0].Agent
	if len(root.Agents) != 1 || root.Agents[0].Config.Name != "b" {
		t.Fatalf("root children = %+v", root.Agents)
	}
	// The cycle back to a must not be followed.
	if len(root.Agents[0].Agents) != 0 {
		t.Errorf("expected cycle to stop, got %d grandchildren", len(root.Agents[0].Agents))
	}
}

func TestWorkflowExportSequentialOrdering(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	wf, err := s.Workflows.Create(ctx, &domain.Workflow{
		UserID: "user@example.com",
		Name:   "pipeline",
		Type:   domain.WorkflowSequential,
	})
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}

	third := createAgent(t, s, "third", domain.AgentTypeAssistant)
	first := createAgent(t, s, "first", domain.AgentTypeAssistant)
	second := createAgent(t, s, "second", domain.AgentTypeAssistant)

	// Linked out of order; sequence_id should win.
	if err := s.Workflows.LinkAgent(ctx, wf.ID, third.ID, domain.WorkflowAgentSender, 3); err != nil {
		t.Fatalf("link third: %v", err)
	}
	if err := s.Workflows.LinkAgent(ctx, wf.ID, first.ID, domain.WorkflowAgentSender, 1); err != nil {
		t.Fatalf("link first: %v", err)
	}
	if err := s.Workflows.LinkAgent(ctx, wf.ID, second.ID, domain.WorkflowAgentSender, 2); err != nil {
		t.Fatalf("link second: %v", err)
	}

	exported, err := s.Workflows.Export(ctx, wf.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(exported.Agents) != len(want) {
		t.Fatalf("expected %d agents, got %d", len(want), len(exported.Agents))
	}
	for i, name := range want {
		if exported.Agents[i].Agent.Config.Name != name {
			t.Errorf("agents[%d] = %s, want %s", i, exported.Agents[i].Agent.Config.Name, name)
		}
	}
}

func TestWorkflowDeleteCleansLinks(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	wf, err := s.Workflows.Create(ctx, &domain.Workflow{UserID: "user@example.com", Name: "wf"})
	if err != nil {
		t.Fatalf("create workflow: %v", err)
	}
	agent := createAgent(t, s, "helper", domain.AgentTypeAssistant)
	if err := s.Workflows.LinkAgent(ctx, wf.ID, agent.ID, domain.WorkflowAgentSender, 0); err != nil {
		t.Fatalf("link agent: %v", err)
	}

	if err := s.Workflows.Delete(ctx, wf.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Workflows.Get(ctx, wf.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"agentstudio/internal/domain"
)

// WorkflowStore defines the interface for workflow persistence and the
// reconstruction of the full workflow object graph.
type WorkflowStore interface {
	List(ctx context.Context, userID string) ([]*domain.Workflow, error)
	Get(ctx context.Context, id int) (*domain.Workflow, error)
	Create(ctx context.Context, w *domain.Workflow) (*domain.Workflow, error)
	Update(ctx context.Context, w *domain.Workflow) (*domain.Workflow, error)
	Delete(ctx context.Context, id int) error

	LinkAgent(ctx context.Context, workflowID, agentID int, agentType domain.WorkflowAgentType, sequenceID int) error
	UnlinkAgent(ctx context.Context, workflowID, agentID int, agentType domain.WorkflowAgentType) error
	Links(ctx context.Context, workflowID int) ([]*domain.WorkflowAgentLink, error)

	Export(ctx context.Context, id int) (*domain.ExportedWorkflow, error)
}

// SQLiteWorkflowStore implements WorkflowStore backed by SQLite.
type SQLiteWorkflowStore struct {
	db     *sql.DB
	agents *SQLiteAgentStore
}

// NewSQLiteWorkflowStore creates a new SQLiteWorkflowStore.
func NewSQLiteWorkflowStore(db *sql.DB) *SQLiteWorkflowStore {
	return &SQLiteWorkflowStore{db: db, agents: NewSQLiteAgentStore(db)}
}

const workflowColumns = `id, created_at, updated_at, user_id, name,
	COALESCE(description, ''), type, summary_method, sample_tasks`

func scanWorkflow(row interface{ Scan(...any) error }) (*domain.Workflow, error) {
	var w domain.Workflow
	var sampleTasks sql.NullString
	err := row.Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt, &w.UserID, &w.Name,
		&w.Description, &w.Type, &w.SummaryMethod, &sampleTasks)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(sampleTasks, &w.SampleTasks); err != nil {
		return nil, err
	}
	return &w, nil
}

// Create inserts a new workflow.
func (s *SQLiteWorkflowStore) Create(ctx context.Context, w *domain.Workflow) (*domain.Workflow, error) {
	ts := now()
	if w.Type == "" {
		w.Type = domain.WorkflowAutonomous
	}
	if w.SummaryMethod == "" {
		w.SummaryMethod = domain.SummaryMethodLast
	}

	sampleTasks, err := encodeJSON(w.SampleTasks)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO workflows (created_at, updated_at, user_id, name, description, type, summary_method, sample_tasks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ts, ts, w.UserID, w.Name, w.Description, w.Type, w.SummaryMethod, sampleTasks,
	)
	if err != nil {
		return nil, fmt.Errorf("insert workflow: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	created := *w
	created.ID = int(id)
	created.CreatedAt = ts
	created.UpdatedAt = ts
	return &created, nil
}

// List returns all workflows for a user, newest first. An empty userID
// returns every workflow.
func (s *SQLiteWorkflowStore) List(ctx context.Context, userID string) ([]*domain.Workflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM workflows`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	workflows := []*domain.Workflow{}
	for rows.Next() {
		w, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workflow: %w", err)
		}
		workflows = append(workflows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return workflows, nil
}

// Get retrieves a single workflow by ID.
func (s *SQLiteWorkflowStore) Get(ctx context.Context, id int) (*domain.Workflow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+workflowColumns+` FROM workflows WHERE id = ?`, id)
	w, err := scanWorkflow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("workflow %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get workflow: %w", err)
	}
	return w, nil
}

// Update overwrites the mutable fields of an existing workflow.
func (s *SQLiteWorkflowStore) Update(ctx context.Context, w *domain.Workflow) (*domain.Workflow, error) {
	ts := now()

	sampleTasks, err := encodeJSON(w.SampleTasks)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE workflows SET updated_at = ?, name = ?, description = ?, type = ?, summary_method = ?, sample_tasks = ?
		 WHERE id = ?`,
		ts, w.Name, w.Description, w.Type, w.SummaryMethod, sampleTasks, w.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update workflow: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("workflow %d: %w", w.ID, ErrNotFound)
	}
	return s.Get(ctx, w.ID)
}

// Delete removes a workflow and its agent links.
func (s *SQLiteWorkflowStore) Delete(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM workflow_agents WHERE workflow_id = ?`, id); err != nil {
		return fmt.Errorf("delete workflow agent links: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM workflows WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workflow: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("workflow %d: %w", id, ErrNotFound)
	}
	return nil
}

// LinkAgent attaches an agent to a workflow in the given role. SequenceID
// orders agents within sequential workflows.
func (s *SQLiteWorkflowStore) LinkAgent(ctx context.Context, workflowID, agentID int, agentType domain.WorkflowAgentType, sequenceID int) error {
	if ok, err := rowExists(ctx, s.db, "workflows", workflowID); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("workflow %d: %w", workflowID, ErrNotFound)
	}
	if ok, err := rowExists(ctx, s.db, "agents", agentID); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("agent %d: %w", agentID, ErrNotFound)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO workflow_agents (workflow_id, agent_id, agent_type, sequence_id) VALUES (?, ?, ?, ?)`,
		workflowID, agentID, agentType, sequenceID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("agent %d already linked as %s: %w", agentID, agentType, ErrConflict)
		}
		return fmt.Errorf("insert workflow agent link: %w", err)
	}
	return nil
}

// UnlinkAgent detaches an agent in the given role from a workflow.
func (s *SQLiteWorkflowStore) UnlinkAgent(ctx context.Context, workflowID, agentID int, agentType domain.WorkflowAgentType) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM workflow_agents WHERE workflow_id = ? AND agent_id = ? AND agent_type = ?`,
		workflowID, agentID, agentType,
	)
	if err != nil {
		return fmt.Errorf("delete workflow agent link: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("workflow agent link %d→%d (%s): %w", workflowID, agentID, agentType, ErrNotFound)
	}
	return nil
}

// Links returns the agent links of a workflow in insertion order.
func (s *SQLiteWorkflowStore) Links(ctx context.Context, workflowID int) ([]*domain.WorkflowAgentLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT workflow_id, agent_id, agent_type, sequence_id
		 FROM workflow_agents WHERE workflow_id = ?
		 ORDER BY rowid ASC`, workflowID)
	if err != nil {
		return nil, fmt.Errorf("list workflow agent links: %w", err)
	}
	defer func() { _ = rows.Close() }()

	links := []*domain.WorkflowAgentLink{}
	for rows.Next() {
		var l domain.WorkflowAgentLink
		if err := rows.Scan(&l.WorkflowID, &l.AgentID, &l.AgentType, &l.SequenceID); err != nil {
			return nil, fmt.Errorf("scan workflow agent link: %w", err)
		}
		links = append(links, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return links, nil
}

// Export reconstructs the full workflow object graph: the workflow row, each
// linked agent expanded with its skills, models and child agents, and model
// specs injected into each agent's llm_config. Agents of sequential workflows
// are ordered by link sequence_id.
func (s *SQLiteWorkflowStore) Export(ctx context.Context, id int) (*domain.ExportedWorkflow, error) {
	workflow, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	links, err := s.Links(ctx, id)
	if err != nil {
		return nil, err
	}

	agents := make([]domain.WorkflowAgent, 0, len(links))
	for _, link := range links {
		agent, err := s.exportAgent(ctx, link.AgentID, map[int]bool{})
		if err != nil {
			return nil, err
		}
		agents = append(agents, domain.WorkflowAgent{Agent: agent, Link: *link})
	}

	if workflow.Type == domain.WorkflowSequential {
		sort.SliceStable(agents, func(i, j int) bool {
			return agents[i].Link.SequenceID < agents[j].Link.SequenceID
		})
	}

	return &domain.ExportedWorkflow{Workflow: *workflow, Agents: agents}, nil
}

// exportAgent expands a single agent: group-chat-only config fields are
// dropped for other agent types, linked skills and models are attached, model
// specs are injected into the llm_config config_list, and child agents are
// expanded recursively. The visited set stops membership cycles from
// recursing forever.
func (s *SQLiteWorkflowStore) exportAgent(ctx context.Context, agentID int, visited map[int]bool) (*domain.ExportedAgent, error) {
	agent, err := s.agents.Get(ctx, agentID)
	if err != nil {
		return nil, err
	}
	visited[agentID] = true

	if agent.Type != domain.AgentTypeGroupChat {
		agent.Config = agent.Config.StripGroupChat()
	}

	skills, err := s.agents.Skills(ctx, agentID)
	if err != nil {
		return nil, err
	}
	models, err := s.agents.Models(ctx, agentID)
	if err != nil {
		return nil, err
	}

	if len(models) > 0 && agent.Config.LLMConfig != nil && !agent.Config.LLMConfig.Disabled {
		specs := make([]domain.ModelSpec, len(models))
		for i, m := range models {
			specs[i] = m.Spec()
		}
		cfg := *agent.Config.LLMConfig
		cfg.ConfigList = specs
		agent.Config.LLMConfig = &cfg
	}

	children, err := s.agents.Agents(ctx, agentID)
	if err != nil {
		return nil, err
	}

	exported := &domain.ExportedAgent{
		Agent:  *agent,
		Skills: skills,
		Models: models,
		Agents: []*domain.ExportedAgent{},
	}
	for _, child := range children {
		if visited[child.ID] {
			continue
		}
		ec, err := s.exportAgent(ctx, child.ID, visited)
		if err != nil {
			return nil, err
		}
		exported.Agents = append(exported.Agents, ec)
	}

	return exported, nil
}

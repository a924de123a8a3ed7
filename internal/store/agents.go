package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agentstudio/internal/domain"
)

// AgentStore defines the interface for agent persistence, including the
// many-to-many links to models, skills and child agents.
type AgentStore interface {
	List(ctx context.Context, userID string) ([]*domain.Agent, error)
	Get(ctx context.Context, id int) (*domain.Agent, error)
	Create(ctx context.Context, a *domain.Agent) (*domain.Agent, error)
	Update(ctx context.Context, a *domain.Agent) (*domain.Agent, error)
	Delete(ctx context.Context, id int) error

	LinkModel(ctx context.Context, agentID, modelID int) error
	UnlinkModel(ctx context.Context, agentID, modelID int) error
	Models(ctx context.Context, agentID int) ([]*domain.Model, error)

	LinkSkill(ctx context.Context, agentID, skillID int) error
	UnlinkSkill(ctx context.Context, agentID, skillID int) error
	Skills(ctx context.Context, agentID int) ([]*domain.Skill, error)

	LinkAgent(ctx context.Context, parentID, childID int) error
	UnlinkAgent(ctx context.Context, parentID, childID int) error
	Agents(ctx context.Context, parentID int) ([]*domain.Agent, error)
}

// SQLiteAgentStore implements AgentStore backed by SQLite. The agent config is
// stored as a JSON TEXT column.
type SQLiteAgentStore struct {
	db *sql.DB
}

// NewSQLiteAgentStore creates a new SQLiteAgentStore.
func NewSQLiteAgentStore(db *sql.DB) *SQLiteAgentStore {
	return &SQLiteAgentStore{db: db}
}

const agentColumns = `id, created_at, updated_at, user_id, type, config`

func scanAgent(row interface{ Scan(...any) error }) (*domain.Agent, error) {
	var a domain.Agent
	var config sql.NullString
	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt, &a.UserID, &a.Type, &config); err != nil {
		return nil, err
	}
	if err := decodeJSON(config, &a.Config); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new agent.
func (s *SQLiteAgentStore) Create(ctx context.Context, a *domain.Agent) (*domain.Agent, error) {
	ts := now()

	config, err := encodeJSON(a.Config)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO agents (created_at, updated_at, user_id, type, config) VALUES (?, ?, ?, ?, ?)`,
		ts, ts, a.UserID, a.Type, config.String,
	)
	if err != nil {
		return nil, fmt.Errorf("insert agent: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	created := *a
	created.ID = int(id)
	created.CreatedAt = ts
	created.UpdatedAt = ts
	return &created, nil
}

// List returns all agents for a user, newest first. An empty userID returns
// every agent.
func (s *SQLiteAgentStore) List(ctx context.Context, userID string) ([]*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	agents := []*domain.Agent{}
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return agents, nil
}

// Get retrieves a single agent by ID.
func (s *SQLiteAgentStore) Get(ctx context.Context, id int) (*domain.Agent, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+agentColumns+` FROM agents WHERE id = ?`, id)
	a, err := scanAgent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("agent %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get agent: %w", err)
	}
	return a, nil
}

// Update overwrites the type and config of an existing agent.
func (s *SQLiteAgentStore) Update(ctx context.Context, a *domain.Agent) (*domain.Agent, error) {
	ts := now()

	config, err := encodeJSON(a.Config)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE agents SET updated_at = ?, type = ?, config = ? WHERE id = ?`,
		ts, a.Type, config.String, a.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update agent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("agent %d: %w", a.ID, ErrNotFound)
	}
	return s.Get(ctx, a.ID)
}

// Delete removes an agent and every link row that references it.
func (s *SQLiteAgentStore) Delete(ctx context.Context, id int) error {
	cleanups := []string{
		`DELETE FROM agent_models WHERE agent_id = ?`,
		`DELETE FROM agent_skills WHERE agent_id = ?`,
		`DELETE FROM agent_agents WHERE parent_id = ? OR agent_id = ?`,
		`DELETE FROM workflow_agents WHERE agent_id = ?`,
	}
	for _, q := range cleanups {
		args := []any{id}
		if q == `DELETE FROM agent_agents WHERE parent_id = ? OR agent_id = ?` {
			args = []any{id, id}
		}
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("delete agent links: %w", err)
		}
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM agents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("agent %d: %w", id, ErrNotFound)
	}
	return nil
}

// link inserts a row into a two-column link table after verifying both ends
// exist.
func (s *SQLiteAgentStore) link(ctx context.Context, table, fromCol, toCol, toTable string, fromID, toID int) error {
	if ok, err := rowExists(ctx, s.db, "agents", fromID); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("agent %d: %w", fromID, ErrNotFound)
	}
	if ok, err := rowExists(ctx, s.db, toTable, toID); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("%s %d: %w", toTable, toID, ErrNotFound)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?)", table, fromCol, toCol) //nolint:gosec // table and column names are hardcoded constants
	if _, err := s.db.ExecContext(ctx, query, fromID, toID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("link already exists: %w", ErrConflict)
		}
		return fmt.Errorf("insert %s link: %w", table, err)
	}
	return nil
}

// unlink removes a row from a two-column link table.
func (s *SQLiteAgentStore) unlink(ctx context.Context, table, fromCol, toCol string, fromID, toID int) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ? AND %s = ?", table, fromCol, toCol) //nolint:gosec // table and column names are hardcoded constants
	res, err := s.db.ExecContext(ctx, query, fromID, toID)
	if err != nil {
		return fmt.Errorf("delete %s link: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s link %d→%d: %w", table, fromID, toID, ErrNotFound)
	}
	return nil
}

// LinkModel attaches a model to an agent.
func (s *SQLiteAgentStore) LinkModel(ctx context.Context, agentID, modelID int) error {
	return s.link(ctx, "agent_models", "agent_id", "model_id", "models", agentID, modelID)
}

// UnlinkModel detaches a model from an agent.
func (s *SQLiteAgentStore) UnlinkModel(ctx context.Context, agentID, modelID int) error {
	return s.unlink(ctx, "agent_models", "agent_id", "model_id", agentID, modelID)
}

// Models returns the models linked to an agent in link insertion order.
func (s *SQLiteAgentStore) Models(ctx context.Context, agentID int) ([]*domain.Model, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.created_at, m.updated_at, m.user_id, m.model,
			COALESCE(m.api_key, ''), COALESCE(m.base_url, ''), m.api_type,
			COALESCE(m.api_version, ''), COALESCE(m.description, '')
		 FROM models m
		 JOIN agent_models am ON am.model_id = m.id
		 WHERE am.agent_id = ?
		 ORDER BY m.id ASC`, agentID)
	if err != nil {
		return nil, fmt.Errorf("list agent models: %w", err)
	}
	defer func() { _ = rows.Close() }()

	models := []*domain.Model{}
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return models, nil
}

// LinkSkill attaches a skill to an agent.
func (s *SQLiteAgentStore) LinkSkill(ctx context.Context, agentID, skillID int) error {
	return s.link(ctx, "agent_skills", "agent_id", "skill_id", "skills", agentID, skillID)
}

// UnlinkSkill detaches a skill from an agent.
func (s *SQLiteAgentStore) UnlinkSkill(ctx context.Context, agentID, skillID int) error {
	return s.unlink(ctx, "agent_skills", "agent_id", "skill_id", agentID, skillID)
}

// Skills returns the skills linked to an agent.
func (s *SQLiteAgentStore) Skills(ctx context.Context, agentID int) ([]*domain.Skill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sk.id, sk.created_at, sk.updated_at, sk.user_id, sk.name, sk.content,
			COALESCE(sk.description, ''), sk.secrets, sk.libraries
		 FROM skills sk
		 JOIN agent_skills ask ON ask.skill_id = sk.id
		 WHERE ask.agent_id = ?
		 ORDER BY sk.id ASC`, agentID)
	if err != nil {
		return nil, fmt.Errorf("list agent skills: %w", err)
	}
	defer func() { _ = rows.Close() }()

	skills := []*domain.Skill{}
	for rows.Next() {
		sk, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, sk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return skills, nil
}

// LinkAgent attaches a child agent to a parent, e.g. a group chat member.
// Self-links are rejected.
func (s *SQLiteAgentStore) LinkAgent(ctx context.Context, parentID, childID int) error {
	if parentID == childID {
		return fmt.Errorf("agent %d cannot be linked to itself: %w", parentID, ErrConflict)
	}
	return s.link(ctx, "agent_agents", "parent_id", "agent_id", "agents", parentID, childID)
}

// UnlinkAgent detaches a child agent from a parent.
func (s *SQLiteAgentStore) UnlinkAgent(ctx context.Context, parentID, childID int) error {
	return s.unlink(ctx, "agent_agents", "parent_id", "agent_id", parentID, childID)
}

// Agents returns the child agents linked to a parent.
func (s *SQLiteAgentStore) Agents(ctx context.Context, parentID int) ([]*domain.Agent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.id, a.created_at, a.updated_at, a.user_id, a.type, a.config
		 FROM agents a
		 JOIN agent_agents aa ON aa.agent_id = a.id
		 WHERE aa.parent_id = ?
		 ORDER BY a.id ASC`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list child agents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	agents := []*domain.Agent{}
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return agents, nil
}

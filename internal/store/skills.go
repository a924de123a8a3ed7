package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agentstudio/internal/domain"
)

// SkillStore defines the interface for skill persistence.
type SkillStore interface {
	List(ctx context.Context, userID string) ([]*domain.Skill, error)
	Get(ctx context.Context, id int) (*domain.Skill, error)
	Create(ctx context.Context, sk *domain.Skill) (*domain.Skill, error)
	Update(ctx context.Context, sk *domain.Skill) (*domain.Skill, error)
	Delete(ctx context.Context, id int) error
}

// SQLiteSkillStore implements SkillStore backed by SQLite. The secrets and
// libraries fields are stored as JSON TEXT columns.
type SQLiteSkillStore struct {
	db *sql.DB
}

// NewSQLiteSkillStore creates a new SQLiteSkillStore.
func NewSQLiteSkillStore(db *sql.DB) *SQLiteSkillStore {
	return &SQLiteSkillStore{db: db}
}

const skillColumns = `id, created_at, updated_at, user_id, name, content,
	COALESCE(description, ''), secrets, libraries`

func scanSkill(row interface{ Scan(...any) error }) (*domain.Skill, error) {
	var sk domain.Skill
	var secrets, libraries sql.NullString
	err := row.Scan(&sk.ID, &sk.CreatedAt, &sk.UpdatedAt, &sk.UserID, &sk.Name,
		&sk.Content, &sk.Description, &secrets, &libraries)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(secrets, &sk.Secrets); err != nil {
		return nil, err
	}
	if err := decodeJSON(libraries, &sk.Libraries); err != nil {
		return nil, err
	}
	return &sk, nil
}

// Create inserts a new skill.
func (s *SQLiteSkillStore) Create(ctx context.Context, sk *domain.Skill) (*domain.Skill, error) {
	ts := now()

	secrets, err := encodeJSON(sk.Secrets)
	if err != nil {
		return nil, err
	}
	libraries, err := encodeJSON(sk.Libraries)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO skills (created_at, updated_at, user_id, name, content, description, secrets, libraries)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ts, ts, sk.UserID, sk.Name, sk.Content, sk.Description, secrets, libraries,
	)
	if err != nil {
		return nil, fmt.Errorf("insert skill: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	created := *sk
	created.ID = int(id)
	created.CreatedAt = ts
	created.UpdatedAt = ts
	return &created, nil
}

// List returns all skills for a user, newest first. An empty userID returns
// every skill.
func (s *SQLiteSkillStore) List(ctx context.Context, userID string) ([]*domain.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
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

// Get retrieves a single skill by ID.
func (s *SQLiteSkillStore) Get(ctx context.Context, id int) (*domain.Skill, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = ?`, id)
	sk, err := scanSkill(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("skill %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get skill: %w", err)
	}
	return sk, nil
}

// Update overwrites the mutable fields of an existing skill.
func (s *SQLiteSkillStore) Update(ctx context.Context, sk *domain.Skill) (*domain.Skill, error) {
	ts := now()

	secrets, err := encodeJSON(sk.Secrets)
	if err != nil {
		return nil, err
	}
	libraries, err := encodeJSON(sk.Libraries)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE skills SET updated_at = ?, name = ?, content = ?, description = ?, secrets = ?, libraries = ?
		 WHERE id = ?`,
		ts, sk.Name, sk.Content, sk.Description, secrets, libraries, sk.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update skill: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("skill %d: %w", sk.ID, ErrNotFound)
	}
	return s.Get(ctx, sk.ID)
}

// Delete removes a skill and any agent links referencing it.
func (s *SQLiteSkillStore) Delete(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM agent_skills WHERE skill_id = ?`, id); err != nil {
		return fmt.Errorf("delete agent skill links: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM skills WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("skill %d: %w", id, ErrNotFound)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agentstudio/internal/domain"
)

// ModelStore defines the interface for model persistence.
type ModelStore interface {
	List(ctx context.Context, userID string) ([]*domain.Model, error)
	Get(ctx context.Context, id int) (*domain.Model, error)
	Create(ctx context.Context, m *domain.Model) (*domain.Model, error)
	Update(ctx context.Context, m *domain.Model) (*domain.Model, error)
	Delete(ctx context.Context, id int) error
}

// SQLiteModelStore implements ModelStore backed by SQLite.
type SQLiteModelStore struct {
	db *sql.DB
}

// NewSQLiteModelStore creates a new SQLiteModelStore.
func NewSQLiteModelStore(db *sql.DB) *SQLiteModelStore {
	return &SQLiteModelStore{db: db}
}

const modelColumns = `id, created_at, updated_at, user_id, model,
	COALESCE(api_key, ''), COALESCE(base_url, ''), api_type,
	COALESCE(api_version, ''), COALESCE(description, '')`

func scanModel(row interface{ Scan(...any) error }) (*domain.Model, error) {
	var m domain.Model
	err := row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt, &m.UserID, &m.Model,
		&m.APIKey, &m.BaseURL, &m.APIType, &m.APIVersion, &m.Description)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new model.
func (s *SQLiteModelStore) Create(ctx context.Context, m *domain.Model) (*domain.Model, error) {
	ts := now()
	if m.APIType == "" {
		m.APIType = domain.APITypeOpenAI
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO models (created_at, updated_at, user_id, model, api_key, base_url, api_type, api_version, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ts, ts, m.UserID, m.Model, m.APIKey, m.BaseURL, m.APIType, m.APIVersion, m.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("insert model: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	created := *m
	created.ID = int(id)
	created.CreatedAt = ts
	created.UpdatedAt = ts
	return &created, nil
}

// List returns all models for a user, newest first. An empty userID returns
// every model.
func (s *SQLiteModelStore) List(ctx context.Context, userID string) ([]*domain.Model, error) {
	query := `SELECT ` + modelColumns + ` FROM models`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
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

// Get retrieves a single model by ID.
func (s *SQLiteModelStore) Get(ctx context.Context, id int) (*domain.Model, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+modelColumns+` FROM models WHERE id = ?`, id)
	m, err := scanModel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("model %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get model: %w", err)
	}
	return m, nil
}

// Update overwrites the mutable fields of an existing model.
func (s *SQLiteModelStore) Update(ctx context.Context, m *domain.Model) (*domain.Model, error) {
	ts := now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE models SET updated_at = ?, model = ?, api_key = ?, base_url = ?, api_type = ?, api_version = ?, description = ?
		 WHERE id = ?`,
		ts, m.Model, m.APIKey, m.BaseURL, m.APIType, m.APIVersion, m.Description, m.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update model: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("model %d: %w", m.ID, ErrNotFound)
	}
	return s.Get(ctx, m.ID)
}

// Delete removes a model and any agent links referencing it.
func (s *SQLiteModelStore) Delete(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM agent_models WHERE model_id = ?`, id); err != nil {
		return fmt.Errorf("delete agent model links: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM models WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete model: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("model %d: %w", id, ErrNotFound)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agentstudio/internal/domain"
)

// SessionStore defines the interface for chat session and message
// persistence.
type SessionStore interface {
	List(ctx context.Context, userID string) ([]*domain.Session, error)
	Get(ctx context.Context, id int) (*domain.Session, error)
	Create(ctx context.Context, sess *domain.Session) (*domain.Session, error)
	Delete(ctx context.Context, id int) error

	Messages(ctx context.Context, sessionID int) ([]*domain.Message, error)
	AddMessage(ctx context.Context, m *domain.Message) (*domain.Message, error)
}

// SQLiteSessionStore implements SessionStore backed by SQLite.
type SQLiteSessionStore struct {
	db *sql.DB
}

// NewSQLiteSessionStore creates a new SQLiteSessionStore.
func NewSQLiteSessionStore(db *sql.DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db}
}

const sessionColumns = `id, created_at, updated_at, user_id, workflow_id,
	COALESCE(name, ''), COALESCE(description, '')`

func scanSession(row interface{ Scan(...any) error }) (*domain.Session, error) {
	var sess domain.Session
	err := row.Scan(&sess.ID, &sess.CreatedAt, &sess.UpdatedAt, &sess.UserID,
		&sess.WorkflowID, &sess.Name, &sess.Description)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Create inserts a new session. The referenced workflow must exist.
func (s *SQLiteSessionStore) Create(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
	if ok, err := rowExists(ctx, s.db, "workflows", sess.WorkflowID); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("workflow %d: %w", sess.WorkflowID, ErrNotFound)
	}

	ts := now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (created_at, updated_at, user_id, workflow_id, name, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ts, ts, sess.UserID, sess.WorkflowID, sess.Name, sess.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	created := *sess
	created.ID = int(id)
	created.CreatedAt = ts
	created.UpdatedAt = ts
	return &created, nil
}

// List returns all sessions for a user, newest first. An empty userID returns
// every session.
func (s *SQLiteSessionStore) List(ctx context.Context, userID string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := []*domain.Session{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return sessions, nil
}

// Get retrieves a single session by ID.
func (s *SQLiteSessionStore) Get(ctx context.Context, id int) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// Delete removes a session and its messages.
func (s *SQLiteSessionStore) Delete(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete session messages: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("session %d: %w", id, ErrNotFound)
	}
	return nil
}

// Messages returns the messages of a session in chronological order.
func (s *SQLiteSessionStore) Messages(ctx context.Context, sessionID int) ([]*domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, updated_at, user_id, session_id, role, content, meta
		 FROM messages WHERE session_id = ?
		 ORDER BY created_at ASC, id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	messages := []*domain.Message{}
	for rows.Next() {
		var m domain.Message
		var meta sql.NullString
		if err := rows.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt, &m.UserID, &m.SessionID, &m.Role, &m.Content, &meta); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if err := decodeJSON(meta, &m.Meta); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return messages, nil
}

// AddMessage appends a message to a session.
func (s *SQLiteSessionStore) AddMessage(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	if ok, err := rowExists(ctx, s.db, "sessions", m.SessionID); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("session %d: %w", m.SessionID, ErrNotFound)
	}

	ts := now()
	meta, err := encodeJSON(m.Meta)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (created_at, updated_at, user_id, session_id, role, content, meta)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ts, ts, m.UserID, m.SessionID, m.Role, m.Content, meta,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
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

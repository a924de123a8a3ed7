package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// now returns the current UTC time formatted as an ISO 8601 timestamp with
// millisecond precision, the format used throughout the schema.
func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// encodeJSON marshals v for storage in a JSON TEXT column. Nil slices and maps
// are stored as SQL NULL.
func encodeJSON(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode json column: %w", err)
	}
	s := string(b)
	if s == "null" {
		return sql.NullString{}, nil
	}
	return sql.NullString{String: s, Valid: true}, nil
}

// decodeJSON unmarshals a JSON TEXT column into v. NULL and empty columns
// leave v untouched.
func decodeJSON(col sql.NullString, v any) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(col.String), v); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// rowExists reports whether the given table contains a row with the given id.
func rowExists(ctx context.Context, db *sql.DB, table string, id int) (bool, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", table) //nolint:gosec // table names are hardcoded constants
	if err := db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return false, fmt.Errorf("check %s %d: %w", table, id, err)
	}
	return count > 0, nil
}

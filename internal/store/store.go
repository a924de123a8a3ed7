package store

import "database/sql"

// Store holds all sub-stores used by the application.
type Store struct {
	DB        *sql.DB
	Models    ModelStore
	Skills    SkillStore
	Agents    AgentStore
	Workflows WorkflowStore
	Sessions  SessionStore
}

// New creates a Store with all sub-stores initialized.
func New(db *sql.DB) *Store {
	return &Store{
		DB:        db,
		Models:    NewSQLiteModelStore(db),
		Skills:    NewSQLiteSkillStore(db),
		Agents:    NewSQLiteAgentStore(db),
		Workflows: NewSQLiteWorkflowStore(db),
		Sessions:  NewSQLiteSessionStore(db),
	}
}

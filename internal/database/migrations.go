package database

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: models, skills, agents, workflows and their link tables
	{
		`CREATE TABLE models (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			user_id TEXT NOT NULL,
			model TEXT NOT NULL,
			api_key TEXT,
			base_url TEXT,
			api_type TEXT NOT NULL DEFAULT 'open_ai',
			api_version TEXT,
			description TEXT DEFAULT ''
		)`,
		`CREATE INDEX idx_models_user ON models(user_id)`,

		`CREATE TABLE skills (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			content TEXT NOT NULL,
			description TEXT DEFAULT '',
			secrets TEXT,
			libraries TEXT
		)`,
		`CREATE INDEX idx_skills_user ON skills(user_id)`,

		`CREATE TABLE agents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			config TEXT NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX idx_agents_user ON agents(user_id)`,

		`CREATE TABLE workflows (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT DEFAULT '',
			type TEXT NOT NULL DEFAULT 'autonomous',
			summary_method TEXT NOT NULL DEFAULT 'last',
			sample_tasks TEXT
		)`,
		`CREATE INDEX idx_workflows_user ON workflows(user_id)`,

		`CREATE TABLE agent_models (
			agent_id INTEGER NOT NULL,
			model_id INTEGER NOT NULL,
			PRIMARY KEY (agent_id, model_id),
			FOREIGN KEY (agent_id) REFERENCES agents(id),
			FOREIGN KEY (model_id) REFERENCES models(id)
		)`,

		`CREATE TABLE agent_skills (
			agent_id INTEGER NOT NULL,
			skill_id INTEGER NOT NULL,
			PRIMARY KEY (agent_id, skill_id),
			FOREIGN KEY (agent_id) REFERENCES agents(id),
			FOREIGN KEY (skill_id) REFERENCES skills(id)
		)`,

		`CREATE TABLE agent_agents (
			parent_id INTEGER NOT NULL,
			agent_id INTEGER NOT NULL,
			PRIMARY KEY (parent_id, agent_id),
			FOREIGN KEY (parent_id) REFERENCES agents(id),
			FOREIGN KEY (agent_id) REFERENCES agents(id)
		)`,

		`CREATE TABLE workflow_agents (
			workflow_id INTEGER NOT NULL,
			agent_id INTEGER NOT NULL,
			agent_type TEXT NOT NULL DEFAULT 'sender',
			sequence_id INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (workflow_id, agent_id, agent_type),
			FOREIGN KEY (workflow_id) REFERENCES workflows(id),
			FOREIGN KEY (agent_id) REFERENCES agents(id)
		)`,
		`CREATE INDEX idx_workflow_agents_workflow ON workflow_agents(workflow_id)`,
	},

	// Migration 2: chat history
	{
		`CREATE TABLE sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			user_id TEXT NOT NULL,
			workflow_id INTEGER NOT NULL,
			name TEXT,
			description TEXT DEFAULT '',
			FOREIGN KEY (workflow_id) REFERENCES workflows(id)
		)`,
		`CREATE INDEX idx_sessions_user ON sessions(user_id)`,

		`CREATE TABLE messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			user_id TEXT NOT NULL,
			session_id INTEGER NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			meta TEXT DEFAULT '{}',
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		)`,
		`CREATE INDEX idx_messages_session ON messages(session_id, created_at)`,
	},
}

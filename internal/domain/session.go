package domain

// Session is a chat session running a workflow for a user.
type Session struct {
	ID          int    `json:"id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	UserID      string `json:"user_id"`
	WorkflowID  int    `json:"workflow_id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Message is a single chat message within a session.
type Message struct {
	ID        int            `json:"id"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	UserID    string         `json:"user_id"`
	SessionID int            `json:"session_id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Meta      map[string]any `json:"meta,omitempty"`
}

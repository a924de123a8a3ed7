package domain

// SecretRef names a secret a skill needs at execution time. Value is a pointer
// so a declared-but-unset secret serializes as null rather than "".
type SecretRef struct {
	Secret string  `json:"secret"`
	Value  *string `json:"value"`
}

// Skill is a reusable snippet of code an agent can execute.
type Skill struct {
	ID          int         `json:"id"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	UserID      string      `json:"user_id"`
	Name        string      `json:"name"`
	Content     string      `json:"content"`
	Description string      `json:"description,omitempty"`
	Secrets     []SecretRef `json:"secrets,omitempty"`
	Libraries   []string    `json:"libraries,omitempty"`
}

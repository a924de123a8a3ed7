package domain

// WorkflowType determines how the linked agents converse.
type WorkflowType string

// Supported workflow types.
const (
	WorkflowAutonomous WorkflowType = "autonomous"
	WorkflowSequential WorkflowType = "sequential"
)

// SummaryMethod determines how a finished chat is summarized.
type SummaryMethod string

// Supported summary methods.
const (
	SummaryMethodLast SummaryMethod = "last"
	SummaryMethodNone SummaryMethod = "none"
	SummaryMethodLLM  SummaryMethod = "llm"
)

// WorkflowAgentType is the role an agent plays inside a workflow.
type WorkflowAgentType string

// Supported workflow agent roles.
const (
	WorkflowAgentSender   WorkflowAgentType = "sender"
	WorkflowAgentReceiver WorkflowAgentType = "receiver"
)

// Workflow is a named arrangement of agents that can run a chat.
type Workflow struct {
	ID            int           `json:"id"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
	UserID        string        `json:"user_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Type          WorkflowType  `json:"type"`
	SummaryMethod SummaryMethod `json:"summary_method"`
	SampleTasks   []string      `json:"sample_tasks,omitempty"`
}

// WorkflowAgentLink attaches an agent to a workflow in a given role.
// SequenceID orders agents within sequential workflows.
type WorkflowAgentLink struct {
	WorkflowID int               `json:"workflow_id"`
	AgentID    int               `json:"agent_id"`
	AgentType  WorkflowAgentType `json:"agent_type"`
	SequenceID int               `json:"sequence_id"`
}

// ExportedAgent is an agent with its relations resolved: linked skills and
// models attached, and child agents (group chat members) expanded recursively.
type ExportedAgent struct {
	Agent
	Skills []*Skill         `json:"skills"`
	Models []*Model         `json:"models"`
	Agents []*ExportedAgent `json:"agents"`
}

// WorkflowAgent pairs an expanded agent with the link that attached it.
type WorkflowAgent struct {
	Agent *ExportedAgent    `json:"agent"`
	Link  WorkflowAgentLink `json:"link"`
}

// ExportedWorkflow is the fully reconstructed workflow graph served to
// clients: the workflow row plus every attached agent expanded in place.
type ExportedWorkflow struct {
	Workflow
	Agents []WorkflowAgent `json:"agents"`
}

// Package models defines the core domain models for the workflow composer.
package models

// NodeKind identifies the category of a workflow step. The set is closed:
// every kind has a configuration schema registered in pkg/nodeconfig.
type NodeKind string

const (
	NodeKindAskAI           NodeKind = "ask_ai"
	NodeKindSummarizer      NodeKind = "summarizer"
	NodeKindFileReader      NodeKind = "file_reader"
	NodeKindAPIIntegration  NodeKind = "api_integration"
	NodeKindCommunication   NodeKind = "communication"
	NodeKindSQLDatabase     NodeKind = "sql_database"
	NodeKindScheduleTrigger NodeKind = "schedule_trigger"
	NodeKindHumanFeedback   NodeKind = "human_feedback"
	NodeKindEmailSend       NodeKind = "email_send"
	NodeKindSpeechAgent     NodeKind = "speech_agent"
)

// AllNodeKinds lists every registered node kind in a stable order.
func AllNodeKinds() []NodeKind {
	return []NodeKind{
		NodeKindAskAI,
		NodeKindSummarizer,
		NodeKindFileReader,
		NodeKindAPIIntegration,
		NodeKindCommunication,
		NodeKindSQLDatabase,
		NodeKindScheduleTrigger,
		NodeKindHumanFeedback,
		NodeKindEmailSend,
		NodeKindSpeechAgent,
	}
}

// Position is the node's coordinate on the rendering surface. It carries no
// semantics but must round-trip exactly through serialization.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WorkflowNode is a single typed step in a workflow. Config is the raw
// kind-specific payload; its shape is owned by the nodeconfig registry and
// validated there.
type WorkflowNode struct {
	ID       string         `json:"id"       validate:"required"`
	Kind     NodeKind       `json:"kind"     validate:"required"`
	Position Position       `json:"position"`
	Config   map[string]any `json:"config"`
}

// WorkflowEdge is a directed connection between two nodes of the same
// workflow. Both endpoints must reference existing nodes.
type WorkflowEdge struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

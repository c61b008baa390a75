package models

import "github.com/trellishq/trellis/pkg/instant"

// Workflow is the persisted document for a composed node graph. ID is empty
// until the document store assigns one on first save; UpdatedAt is stamped by
// the store on every save and kept raw because stored records carry mixed
// timestamp encodings.
type Workflow struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"                 validate:"required,min=1"`
	Nodes     []*WorkflowNode `json:"nodes"`
	Edges     []*WorkflowEdge `json:"edges"`
	UpdatedAt instant.Raw     `json:"updated_at,omitempty"`
}

// NodeByID returns the node with the given ID, or nil.
func (w *Workflow) NodeByID(id string) *WorkflowNode {
	for _, node := range w.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}

// Package web provides HTTP request and response types for the workflow API.
package web

import "github.com/trellishq/trellis/pkg/models"

// SaveWorkflowRequest is the serialized workflow document as produced by the
// editing surface. On create the ID is absent; on update it comes from the
// URL.
type SaveWorkflowRequest struct {
	Name  string                 `json:"name"  validate:"required,min=1"`
	Nodes []*models.WorkflowNode `json:"nodes"`
	Edges []*models.WorkflowEdge `json:"edges"`
}

// Document converts the request to a persistable workflow document.
func (r *SaveWorkflowRequest) Document(id string) *models.Workflow {
	nodes := r.Nodes
	if nodes == nil {
		nodes = make([]*models.WorkflowNode, 0)
	}

	edges := r.Edges
	if edges == nil {
		edges = make([]*models.WorkflowEdge, 0)
	}

	return &models.Workflow{
		ID:    id,
		Name:  r.Name,
		Nodes: nodes,
		Edges: edges,
	}
}

package web_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trellishq/trellis/pkg/models"
	"github.com/trellishq/trellis/pkg/web"
)

func TestSaveWorkflowRequest_Document(t *testing.T) {
	t.Parallel()

	req := web.SaveWorkflowRequest{Name: "Daily Digest"}

	doc := req.Document("")
	assert.Empty(t, doc.ID)
	assert.Equal(t, "Daily Digest", doc.Name)

	// Absent collections come out as empty, never nil, so the persisted
	// document always carries arrays.
	assert.NotNil(t, doc.Nodes)
	assert.NotNil(t, doc.Edges)
	assert.Empty(t, doc.Nodes)
	assert.Empty(t, doc.Edges)

	withID := req.Document("w1")
	assert.Equal(t, "w1", withID.ID)
}

func TestSaveWorkflowRequest_DocumentKeepsCollections(t *testing.T) {
	t.Parallel()

	nodes := []*models.WorkflowNode{{ID: "n1", Kind: models.NodeKindAskAI, Config: map[string]any{}}}
	edges := []*models.WorkflowEdge{{Source: "n1", Target: "n2"}}

	req := web.SaveWorkflowRequest{Name: "Daily Digest", Nodes: nodes, Edges: edges}

	doc := req.Document("w1")
	assert.Equal(t, nodes, doc.Nodes)
	assert.Equal(t, edges, doc.Edges)
}

package graph

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/trellishq/trellis/pkg/instant"
	"github.com/trellishq/trellis/pkg/models"
	"github.com/trellishq/trellis/pkg/nodeconfig"
)

// node is a graph-internal node with its configuration decoded to the typed
// form. The raw map never leaves the serialization boundary.
type node struct {
	id       string
	kind     models.NodeKind
	position models.Position
	config   nodeconfig.Config
}

// Graph is a workflow under edit. The rendering surface emits mutation
// intents into these methods and re-renders from snapshots; nothing outside
// this package mutates the node or edge collections.
type Graph struct {
	registry  *nodeconfig.Registry
	id        string
	name      string
	nodes     []*node
	edges     []models.WorkflowEdge
	updatedAt instant.Raw
}

// New creates an empty graph for a workflow that has never been saved.
func New(registry *nodeconfig.Registry, name string) *Graph {
	return &Graph{
		registry: registry,
		name:     name,
		nodes:    make([]*node, 0),
		edges:    make([]models.WorkflowEdge, 0),
	}
}

// ID returns the store-assigned workflow ID, empty until first save.
func (g *Graph) ID() string {
	return g.id
}

// Name returns the workflow display name.
func (g *Graph) Name() string {
	return g.name
}

// Rename changes the display name. The name must not be empty.
func (g *Graph) Rename(name string) error {
	if name == "" {
		return &GraphError{Op: "Rename", Err: ErrEmptyName}
	}

	g.name = name

	return nil
}

// AddNode creates a node of the given kind with the kind's default
// configuration and returns its ID. Kinds come from the closed registry set,
// so this only fails on an unregistered kind.
func (g *Graph) AddNode(kind models.NodeKind, position models.Position) (string, error) {
	defaults, err := g.registry.DefaultsFor(kind)
	if err != nil {
		return "", &GraphError{Op: "AddNode", Err: err}
	}

	n := &node{
		id:       uuid.New().String(),
		kind:     kind,
		position: position,
		config:   defaults,
	}

	g.nodes = append(g.nodes, n)

	return n.id, nil
}

// RemoveNode removes the node and every edge referencing it. Removing an
// unknown node is a no-op.
func (g *Graph) RemoveNode(nodeID string) {
	index := g.indexOf(nodeID)
	if index < 0 {
		return
	}

	g.nodes = append(g.nodes[:index], g.nodes[index+1:]...)

	kept := g.edges[:0]

	for _, edge := range g.edges {
		if edge.Source != nodeID && edge.Target != nodeID {
			kept = append(kept, edge)
		}
	}

	g.edges = kept
}

// UpdateNodeConfig merges a partial payload into the node's configuration.
// The merged result must validate against the kind's schema; on failure the
// node keeps its previous configuration.
func (g *Graph) UpdateNodeConfig(nodeID string, patch map[string]any) error {
	n := g.node(nodeID)
	if n == nil {
		return &GraphError{Op: "UpdateNodeConfig", NodeID: nodeID, Err: ErrNodeNotFound}
	}

	merged, err := g.registry.Merge(n.config, patch)
	if err != nil {
		return err
	}

	n.config = merged

	return nil
}

// Config returns the typed configuration of a node.
func (g *Graph) Config(nodeID string) (nodeconfig.Config, error) {
	n := g.node(nodeID)
	if n == nil {
		return nil, &GraphError{Op: "Config", NodeID: nodeID, Err: ErrNodeNotFound}
	}

	return n.config, nil
}

// MoveNode updates a node's presentation coordinate.
func (g *Graph) MoveNode(nodeID string, position models.Position) error {
	n := g.node(nodeID)
	if n == nil {
		return &GraphError{Op: "MoveNode", NodeID: nodeID, Err: ErrNodeNotFound}
	}

	n.position = position

	return nil
}

// AddEdge connects source to target. Both endpoints must exist, self-loops
// are rejected, and an edge with the same ordered endpoints may exist only
// once.
func (g *Graph) AddEdge(source, target string) error {
	if g.node(source) == nil {
		return &GraphError{Op: "AddEdge", NodeID: source, Err: ErrNodeNotFound}
	}

	if g.node(target) == nil {
		return &GraphError{Op: "AddEdge", NodeID: target, Err: ErrNodeNotFound}
	}

	if source == target {
		return &GraphError{Op: "AddEdge", NodeID: source, Err: ErrSelfLoop}
	}

	for _, edge := range g.edges {
		if edge.Source == source && edge.Target == target {
			return &GraphError{Op: "AddEdge", Err: ErrDuplicateEdge}
		}
	}

	g.edges = append(g.edges, models.WorkflowEdge{Source: source, Target: target})

	return nil
}

// RemoveEdge deletes the edge with the given ordered endpoints.
func (g *Graph) RemoveEdge(source, target string) error {
	for i, edge := range g.edges {
		if edge.Source == source && edge.Target == target {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)

			return nil
		}
	}

	return &GraphError{Op: "RemoveEdge", Err: ErrEdgeNotFound}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Edges returns a copy of the edge set.
func (g *Graph) Edges() []models.WorkflowEdge {
	return append([]models.WorkflowEdge(nil), g.edges...)
}

// Serialize produces the persistence-ready document. It is the exact inverse
// of Deserialize for any graph that passes validation.
func (g *Graph) Serialize() *models.Workflow {
	nodes := make([]*models.WorkflowNode, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, &models.WorkflowNode{
			ID:       n.id,
			Kind:     n.kind,
			Position: n.position,
			Config:   nodeconfig.ToMap(n.config),
		})
	}

	edges := make([]*models.WorkflowEdge, 0, len(g.edges))
	for _, edge := range g.edges {
		e := edge
		edges = append(edges, &e)
	}

	return &models.Workflow{
		ID:        g.id,
		Name:      g.name,
		Nodes:     nodes,
		Edges:     edges,
		UpdatedAt: g.updatedAt,
	}
}

// Deserialize restores a graph from a persisted document. Any unknown node
// kind, invalid config, duplicate node ID, or edge referencing a missing
// node rejects the whole document with a SchemaError.
func Deserialize(registry *nodeconfig.Registry, doc *models.Workflow) (*Graph, error) {
	g := &Graph{
		registry:  registry,
		id:        doc.ID,
		name:      doc.Name,
		nodes:     make([]*node, 0, len(doc.Nodes)),
		edges:     make([]models.WorkflowEdge, 0, len(doc.Edges)),
		updatedAt: doc.UpdatedAt,
	}

	seen := make(map[string]bool, len(doc.Nodes))

	for _, record := range doc.Nodes {
		if record.ID == "" {
			return nil, &SchemaError{Problems: []string{"node with empty id"}}
		}

		if seen[record.ID] {
			return nil, &SchemaError{Problems: []string{fmt.Sprintf("duplicate node id %q", record.ID)}}
		}

		seen[record.ID] = true

		if !registry.Known(record.Kind) {
			return nil, &SchemaError{Problems: []string{fmt.Sprintf("node %s: unknown kind %q", record.ID, record.Kind)}}
		}

		config, err := registry.Decode(record.Kind, record.Config)
		if err != nil {
			return nil, &SchemaError{Problems: []string{fmt.Sprintf("node %s: %v", record.ID, err)}}
		}

		g.nodes = append(g.nodes, &node{
			id:       record.ID,
			kind:     record.Kind,
			position: record.Position,
			config:   config,
		})
	}

	for _, edge := range doc.Edges {
		if !seen[edge.Source] || !seen[edge.Target] {
			return nil, &SchemaError{Problems: []string{
				fmt.Sprintf("edge %s -> %s references a missing node", edge.Source, edge.Target),
			}}
		}

		g.edges = append(g.edges, *edge)
	}

	return g, nil
}

func (g *Graph) node(id string) *node {
	index := g.indexOf(id)
	if index < 0 {
		return nil
	}

	return g.nodes[index]
}

func (g *Graph) indexOf(id string) int {
	for i, n := range g.nodes {
		if n.id == id {
			return i
		}
	}

	return -1
}

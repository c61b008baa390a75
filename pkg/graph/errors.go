// Package graph holds the in-memory workflow graph model: the only path by
// which a workflow's nodes and edges are mutated or serialized.
package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel graph errors. Every rejected mutation leaves the graph unchanged.
var (
	// ErrNodeNotFound indicates an operation referenced a node ID not present
	// in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrSelfLoop indicates an edge whose source and target are the same node.
	ErrSelfLoop = errors.New("edge source and target are the same node")

	// ErrDuplicateEdge indicates an edge with the same ordered endpoints
	// already exists.
	ErrDuplicateEdge = errors.New("edge already exists")

	// ErrEdgeNotFound indicates a removal referenced a nonexistent edge.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrEmptyName indicates a rename to an empty display name.
	ErrEmptyName = errors.New("workflow name cannot be empty")
)

// GraphError wraps an illegal graph mutation with the operation and node
// context it failed on.
type GraphError struct {
	Op     string
	NodeID string
	Err    error
}

func (e *GraphError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("%s failed for node %s: %v", e.Op, e.NodeID, e.Err)
	}

	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *GraphError) Unwrap() error {
	return e.Err
}

func (e *GraphError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// SchemaError indicates a persisted document could not be restored: unknown
// node kind, invalid per-kind config, duplicate node ID, or an edge
// referencing a missing node. The whole load fails rather than silently
// dropping parts of the document.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "invalid workflow document: " + strings.Join(e.Problems, "; ")
}

// IsSchemaError reports whether err is (or wraps) a document restore failure.
func IsSchemaError(err error) bool {
	var target *SchemaError

	return errors.As(err, &target)
}

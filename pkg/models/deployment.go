package models

import "github.com/trellishq/trellis/pkg/instant"

// DeploymentStatus represents the lifecycle state of a deployment.
type DeploymentStatus string

const (
	DeploymentStatusRequested DeploymentStatus = "requested" // Accepted, waiting for the backend to pick it up
	DeploymentStatusRunning   DeploymentStatus = "running"   // Executing
	DeploymentStatusSuccess   DeploymentStatus = "success"   // Terminal
	DeploymentStatusFailed    DeploymentStatus = "failed"    // Terminal, includes cancelled
)

// IsActive reports whether the deployment still occupies its workflow's
// single active slot.
func (s DeploymentStatus) IsActive() bool {
	return s == DeploymentStatusRequested || s == DeploymentStatusRunning
}

// IsTerminal reports whether the status can never change again.
func (s DeploymentStatus) IsTerminal() bool {
	return s == DeploymentStatusSuccess || s == DeploymentStatusFailed
}

// CanTransitionTo reports whether the state machine permits moving from s to
// next. Valid moves: requested -> running, requested -> failed,
// running -> success, running -> failed.
func (s DeploymentStatus) CanTransitionTo(next DeploymentStatus) bool {
	switch s {
	case DeploymentStatusRequested:
		return next == DeploymentStatusRunning || next == DeploymentStatusFailed
	case DeploymentStatusRunning:
		return next == DeploymentStatusSuccess || next == DeploymentStatusFailed
	case DeploymentStatusSuccess, DeploymentStatusFailed:
		return false
	default:
		return false
	}
}

// Deployment is a request to run a saved workflow. At most one deployment per
// workflow may be active at a time; that invariant is derived at read time,
// not enforced at creation.
type Deployment struct {
	ID           string           `json:"id"`
	WorkflowID   string           `json:"workflow_id"   validate:"required"`
	WorkflowName string           `json:"workflow_name"`
	Status       DeploymentStatus `json:"status"        validate:"required"`
	RequestedAt  instant.Raw      `json:"requested_at,omitempty"`
}

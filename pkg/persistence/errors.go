// Package persistence provides standardized error types for store operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrWorkflowNotFound indicates a workflow was not found by the given identifier.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrDeploymentNotFound indicates a deployment was not found by the given identifier.
	ErrDeploymentNotFound = errors.New("deployment not found")

	// ErrInvalidStatusTransition indicates a deployment status change the
	// state machine does not permit.
	ErrInvalidStatusTransition = errors.New("invalid deployment status transition")
)

// WorkflowError wraps workflow store errors with operation context.
type WorkflowError struct {
	Op         string
	WorkflowID string
	Err        error
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s operation failed for workflow %s: %v", e.Op, e.WorkflowID, e.Err)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

func (e *WorkflowError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// DeploymentError wraps deployment store errors with operation context.
type DeploymentError struct {
	Op           string
	DeploymentID string
	Err          error
}

func (e *DeploymentError) Error() string {
	return fmt.Sprintf("%s operation failed for deployment %s: %v", e.Op, e.DeploymentID, e.Err)
}

func (e *DeploymentError) Unwrap() error {
	return e.Err
}

func (e *DeploymentError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsWorkflowNotFound checks if an error indicates a workflow was not found.
func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

// IsDeploymentNotFound checks if an error indicates a deployment was not found.
func IsDeploymentNotFound(err error) bool {
	return errors.Is(err, ErrDeploymentNotFound)
}

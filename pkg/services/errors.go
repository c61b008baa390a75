// Package services provides standardized error types for service layer operations.
package services

import (
	"errors"
	"fmt"
)

// Domain errors. These reject an operation before any store call is made.
var (
	// ErrEmptyWorkflowID indicates a deployment was requested for a workflow
	// that has never been saved.
	ErrEmptyWorkflowID = errors.New("workflow ID is required")

	// ErrEmptyDeploymentID indicates a cancel with no deployment identifier.
	ErrEmptyDeploymentID = errors.New("deployment ID is required")

	// ErrWorkflowNameRequired indicates a save with an empty display name.
	ErrWorkflowNameRequired = errors.New("workflow name is required")

	// ErrInvalidTransition indicates a deployment status change the state
	// machine does not permit.
	ErrInvalidTransition = errors.New("invalid deployment status transition")
)

// DomainError wraps a rejected operation with its name.
type DomainError struct {
	Op  string
	Err error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsDomainError checks if an error is a pre-flight rejection that should
// return HTTP 400.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrEmptyWorkflowID) ||
		errors.Is(err, ErrEmptyDeploymentID) ||
		errors.Is(err, ErrWorkflowNameRequired)
}

// IsConflictError checks if an error is a state machine conflict that should
// return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

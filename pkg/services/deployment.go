package services

import (
	"context"

	"github.com/trellishq/trellis/pkg/models"
	"github.com/trellishq/trellis/pkg/persistence"
)

// Deployment manages the deployment lifecycle: requesting, cancelling,
// status transitions, and active-deployment derivation.
type Deployment struct {
	persistence persistence.Persistence
}

// NewDeployment creates a new deployment lifecycle service.
func NewDeployment(persistence persistence.Persistence) *Deployment {
	return &Deployment{persistence: persistence}
}

// Request creates a deployment record for a saved workflow. The workflow
// must exist; a workflow that was never saved has no ID and is rejected
// before any store call. Request deliberately does not check for an existing
// active deployment: uniqueness is derived at read time, and the write-time
// race window is an accepted limitation.
func (d *Deployment) Request(ctx context.Context, workflowID, workflowName string) (*models.Deployment, error) {
	if workflowID == "" {
		return nil, &DomainError{Op: "Request", Err: ErrEmptyWorkflowID}
	}

	if _, err := d.persistence.WorkflowRepository().GetByID(ctx, workflowID); err != nil {
		return nil, err
	}

	deployment := &models.Deployment{
		WorkflowID:   workflowID,
		WorkflowName: workflowName,
		Status:       models.DeploymentStatusRequested,
	}

	id, err := d.persistence.DeploymentRepository().Create(ctx, deployment)
	if err != nil {
		return nil, err
	}

	deployment.ID = id

	return deployment, nil
}

// Cancel stops an active deployment. Cancelling a deployment that already
// reached a terminal status is acknowledged as success without touching the
// record: there is nothing left to stop.
func (d *Deployment) Cancel(ctx context.Context, deploymentID string) error {
	if deploymentID == "" {
		return &DomainError{Op: "Cancel", Err: ErrEmptyDeploymentID}
	}

	repo := d.persistence.DeploymentRepository()

	deployment, err := repo.GetByID(ctx, deploymentID)
	if err != nil {
		return err
	}

	if deployment.Status.IsTerminal() {
		return nil
	}

	// The status set has no dedicated cancelled member; a cancelled run is a
	// failed run.
	return repo.UpdateStatus(ctx, deploymentID, models.DeploymentStatusFailed)
}

// List returns the caller's deployments with no ordering guarantee beyond
// what the store provides.
func (d *Deployment) List(ctx context.Context) ([]*models.Deployment, error) {
	return d.persistence.DeploymentRepository().ListForUser(ctx)
}

// MarkRunning transitions a requested deployment to running.
func (d *Deployment) MarkRunning(ctx context.Context, deploymentID string) error {
	return d.transition(ctx, deploymentID, models.DeploymentStatusRunning)
}

// MarkSucceeded transitions a running deployment to success.
func (d *Deployment) MarkSucceeded(ctx context.Context, deploymentID string) error {
	return d.transition(ctx, deploymentID, models.DeploymentStatusSuccess)
}

// MarkFailed transitions an active deployment to failed.
func (d *Deployment) MarkFailed(ctx context.Context, deploymentID string) error {
	return d.transition(ctx, deploymentID, models.DeploymentStatusFailed)
}

func (d *Deployment) transition(ctx context.Context, deploymentID string, next models.DeploymentStatus) error {
	if deploymentID == "" {
		return &DomainError{Op: "transition", Err: ErrEmptyDeploymentID}
	}

	repo := d.persistence.DeploymentRepository()

	deployment, err := repo.GetByID(ctx, deploymentID)
	if err != nil {
		return err
	}

	if !deployment.Status.CanTransitionTo(next) {
		return &DomainError{Op: "transition", Err: ErrInvalidTransition}
	}

	return repo.UpdateStatus(ctx, deploymentID, next)
}

// ActiveDeploymentFor returns the first deployment in the given sequence
// that belongs to the workflow and is still active, or nil. If the
// at-most-one-active invariant was violated upstream, first match wins.
func ActiveDeploymentFor(workflowID string, deployments []*models.Deployment) *models.Deployment {
	for _, deployment := range deployments {
		if deployment.WorkflowID == workflowID && deployment.Status.IsActive() {
			return deployment
		}
	}

	return nil
}

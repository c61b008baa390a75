// Package persistence defines the document store abstraction holding
// workflow and deployment records.
package persistence

import (
	"context"

	"github.com/trellishq/trellis/pkg/models"
)

// WorkflowRepository is the document store contract for workflow records.
// Create assigns and returns the document ID; Update stamps updated_at on
// every save (last writer wins, no concurrency token).
type WorkflowRepository interface {
	Create(ctx context.Context, workflow *models.Workflow) (string, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	ListForUser(ctx context.Context) ([]*models.Workflow, error)
	Update(ctx context.Context, id string, workflow *models.Workflow) error
	Delete(ctx context.Context, id string) error
}

// DeploymentRepository is the deployment backend contract. Listing carries no
// ordering guarantee beyond what the store returns.
type DeploymentRepository interface {
	Create(ctx context.Context, deployment *models.Deployment) (string, error)
	GetByID(ctx context.Context, id string) (*models.Deployment, error)
	ListForUser(ctx context.Context) ([]*models.Deployment, error)
	UpdateStatus(ctx context.Context, id string, status models.DeploymentStatus) error
}

// Persistence aggregates the store's repositories.
type Persistence interface {
	WorkflowRepository() WorkflowRepository
	DeploymentRepository() DeploymentRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

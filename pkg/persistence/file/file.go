// Package file provides the file-based document store implementation holding
// workflow and deployment records as JSON documents.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/trellishq/trellis/pkg/persistence"
)

// Persistence implements persistence.Persistence on the file system.
type Persistence struct {
	root           string
	workflowRepo   *WorkflowRepository
	deploymentRepo *DeploymentRepository
}

// NewPersistence creates a file-backed store rooted at the given directory.
// A "file://" prefix is accepted and stripped.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:           cleanRoot,
		workflowRepo:   NewWorkflowRepository(cleanRoot),
		deploymentRepo: NewDeploymentRepository(cleanRoot),
	}
}

// WorkflowRepository returns the workflow document repository.
func (fp *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return fp.workflowRepo
}

// DeploymentRepository returns the deployment document repository.
func (fp *Persistence) DeploymentRepository() persistence.DeploymentRepository {
	return fp.deploymentRepo
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close performs any necessary cleanup. For file persistence there is none.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

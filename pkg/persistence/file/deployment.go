package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/trellishq/trellis/pkg/instant"
	"github.com/trellishq/trellis/pkg/models"
	"github.com/trellishq/trellis/pkg/persistence"
)

// DeploymentRepository stores one JSON document per deployment under
// {root}/deployments.
type DeploymentRepository struct {
	root string
}

// NewDeploymentRepository creates a new deployment repository.
func NewDeploymentRepository(root string) *DeploymentRepository {
	return &DeploymentRepository{root: root}
}

// Create assigns an ID and stamps requested_at as a structured
// second/nanosecond pair, the store-native encoding.
func (dr *DeploymentRepository) Create(_ context.Context, deployment *models.Deployment) (string, error) {
	if deployment.ID == "" {
		deployment.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	deployment.RequestedAt = instant.Timestamp{
		Seconds:     now.Unix(),
		Nanoseconds: int64(now.Nanosecond()),
	}

	if err := dr.write(deployment); err != nil {
		return "", &persistence.DeploymentError{Op: "Create", DeploymentID: deployment.ID, Err: err}
	}

	return deployment.ID, nil
}

// GetByID loads a deployment document.
func (dr *DeploymentRepository) GetByID(_ context.Context, id string) (*models.Deployment, error) {
	data, err := os.ReadFile(dr.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &persistence.DeploymentError{Op: "GetByID", DeploymentID: id, Err: persistence.ErrDeploymentNotFound}
		}

		return nil, &persistence.DeploymentError{Op: "GetByID", DeploymentID: id, Err: err}
	}

	var deployment models.Deployment
	if err := json.Unmarshal(data, &deployment); err != nil {
		return nil, &persistence.DeploymentError{Op: "GetByID", DeploymentID: id, Err: err}
	}

	return &deployment, nil
}

// ListForUser loads every deployment document in directory listing order.
func (dr *DeploymentRepository) ListForUser(ctx context.Context) ([]*models.Deployment, error) {
	root := os.DirFS(dr.dir())

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, &persistence.DeploymentError{Op: "ListForUser", Err: err}
	}

	deployments := make([]*models.Deployment, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		id := file[:len(file)-len(".json")]

		deployment, err := dr.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load deployment %s: %w", id, err)
		}

		deployments = append(deployments, deployment)
	}

	return deployments, nil
}

// UpdateStatus rewrites the document with the new status. Transition rules
// are enforced by the lifecycle service, not the store.
func (dr *DeploymentRepository) UpdateStatus(ctx context.Context, id string, status models.DeploymentStatus) error {
	deployment, err := dr.GetByID(ctx, id)
	if err != nil {
		return err
	}

	deployment.Status = status

	if err := dr.write(deployment); err != nil {
		return &persistence.DeploymentError{Op: "UpdateStatus", DeploymentID: id, Err: err}
	}

	return nil
}

func (dr *DeploymentRepository) write(deployment *models.Deployment) error {
	if err := os.MkdirAll(dr.dir(), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(deployment, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(dr.filePath(deployment.ID), data, 0o644)
}

func (dr *DeploymentRepository) dir() string {
	return path.Join(dr.root, "deployments")
}

func (dr *DeploymentRepository) filePath(id string) string {
	return path.Join(dr.dir(), id+".json")
}

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
	"github.com/trellishq/trellis/pkg/models"
	"github.com/trellishq/trellis/pkg/persistence"
)

// WorkflowRepository stores one JSON document per workflow under
// {root}/workflows.
type WorkflowRepository struct {
	root string
}

// NewWorkflowRepository creates a new workflow repository.
func NewWorkflowRepository(root string) *WorkflowRepository {
	return &WorkflowRepository{root: root}
}

// Create assigns an ID, stamps updated_at, and writes the document.
func (wr *WorkflowRepository) Create(_ context.Context, workflow *models.Workflow) (string, error) {
	if workflow.ID == "" {
		workflow.ID = uuid.New().String()
	}

	workflow.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if err := wr.write(workflow); err != nil {
		return "", &persistence.WorkflowError{Op: "Create", WorkflowID: workflow.ID, Err: err}
	}

	return workflow.ID, nil
}

// GetByID loads a workflow document.
func (wr *WorkflowRepository) GetByID(_ context.Context, id string) (*models.Workflow, error) {
	data, err := os.ReadFile(wr.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &persistence.WorkflowError{Op: "GetByID", WorkflowID: id, Err: persistence.ErrWorkflowNotFound}
		}

		return nil, &persistence.WorkflowError{Op: "GetByID", WorkflowID: id, Err: err}
	}

	var workflow models.Workflow
	if err := json.Unmarshal(data, &workflow); err != nil {
		return nil, &persistence.WorkflowError{Op: "GetByID", WorkflowID: id, Err: err}
	}

	return &workflow, nil
}

// ListForUser loads every workflow document. Order follows directory listing
// order; callers needing recency ordering sort at the presentation layer.
func (wr *WorkflowRepository) ListForUser(ctx context.Context) ([]*models.Workflow, error) {
	root := os.DirFS(wr.dir())

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, &persistence.WorkflowError{Op: "ListForUser", Err: err}
	}

	workflows := make([]*models.Workflow, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		id := file[:len(file)-len(".json")]

		workflow, err := wr.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load workflow %s: %w", id, err)
		}

		workflows = append(workflows, workflow)
	}

	return workflows, nil
}

// Update overwrites an existing document, stamping a fresh updated_at. Last
// writer wins: no concurrency token is checked.
func (wr *WorkflowRepository) Update(ctx context.Context, id string, workflow *models.Workflow) error {
	if _, err := wr.GetByID(ctx, id); err != nil {
		return err
	}

	workflow.ID = id
	workflow.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if err := wr.write(workflow); err != nil {
		return &persistence.WorkflowError{Op: "Update", WorkflowID: id, Err: err}
	}

	return nil
}

// Delete removes the document. Deletion is terminal.
func (wr *WorkflowRepository) Delete(_ context.Context, id string) error {
	err := os.Remove(wr.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return &persistence.WorkflowError{Op: "Delete", WorkflowID: id, Err: persistence.ErrWorkflowNotFound}
		}

		return &persistence.WorkflowError{Op: "Delete", WorkflowID: id, Err: err}
	}

	return nil
}

func (wr *WorkflowRepository) write(workflow *models.Workflow) error {
	if err := os.MkdirAll(wr.dir(), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(wr.filePath(workflow.ID), data, 0o644)
}

func (wr *WorkflowRepository) dir() string {
	return path.Join(wr.root, "workflows")
}

func (wr *WorkflowRepository) filePath(id string) string {
	return path.Join(wr.dir(), id+".json")
}

package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/trellishq/trellis/pkg/graph"
	"github.com/trellishq/trellis/pkg/instant"
	"github.com/trellishq/trellis/pkg/models"
	"github.com/trellishq/trellis/pkg/nodeconfig"
	"github.com/trellishq/trellis/pkg/notify"
	"github.com/trellishq/trellis/pkg/persistence"
)

// Workflow provides workflow document operations plus the dashboard view
// joining workflows with their active deployments.
type Workflow struct {
	persistence persistence.Persistence
	registry    *nodeconfig.Registry
	validate    *validator.Validate
	notifier    notify.Notifier
}

// NewWorkflow creates a new workflow service.
func NewWorkflow(persistence persistence.Persistence, registry *nodeconfig.Registry, validate *validator.Validate, notifier notify.Notifier) *Workflow {
	return &Workflow{
		persistence: persistence,
		registry:    registry,
		validate:    validate,
		notifier:    notifier,
	}
}

// HealthCheck checks the health of the persistence layer.
func (w *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if w.persistence == nil {
		return "Persistence layer not initialized", false
	}

	if err := w.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// Save validates and persists a workflow document. Documents with no ID are
// created and receive one from the store; documents with an ID overwrite the
// stored record (last writer wins).
func (w *Workflow) Save(ctx context.Context, doc *models.Workflow) (*models.Workflow, error) {
	if doc.Name == "" {
		return nil, &DomainError{Op: "Save", Err: ErrWorkflowNameRequired}
	}

	if err := w.validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid workflow document: %w", err)
	}

	// A document that cannot be restored must never be persisted.
	if _, err := graph.Deserialize(w.registry, doc); err != nil {
		return nil, err
	}

	repo := w.persistence.WorkflowRepository()

	if doc.ID == "" {
		id, err := repo.Create(ctx, doc)
		if err != nil {
			return nil, err
		}

		doc.ID = id

		return doc, nil
	}

	if err := repo.Update(ctx, doc.ID, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Get loads a workflow document by ID.
func (w *Workflow) Get(ctx context.Context, id string) (*models.Workflow, error) {
	return w.persistence.WorkflowRepository().GetByID(ctx, id)
}

// Load restores the editable graph for a stored workflow.
func (w *Workflow) Load(ctx context.Context, id string) (*graph.Graph, error) {
	doc, err := w.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return graph.Deserialize(w.registry, doc)
}

// Delete removes a workflow document. Deletion is terminal.
func (w *Workflow) Delete(ctx context.Context, id string) error {
	return w.persistence.WorkflowRepository().Delete(ctx, id)
}

// List returns the caller's workflows in store order.
func (w *Workflow) List(ctx context.Context) ([]*models.Workflow, error) {
	return w.persistence.WorkflowRepository().ListForUser(ctx)
}

// Summary pairs a workflow with its active deployment, if any, for the list
// view.
type Summary struct {
	Workflow         *models.Workflow   `json:"workflow"`
	ActiveDeployment *models.Deployment `json:"active_deployment,omitempty"`
	UpdatedAtDisplay string             `json:"updated_at_display"`
}

// Dashboard returns the caller's workflows sorted by recency, each joined
// with its active deployment. A failure listing deployments does not discard
// the already-loaded workflows: it is reported through the notifier and the
// summaries simply carry no deployment badges.
func (w *Workflow) Dashboard(ctx context.Context) ([]*Summary, error) {
	workflows, err := w.List(ctx)
	if err != nil {
		w.notifier.Notify(ctx, "Error loading workflows", notify.SeverityError, notify.DefaultDuration)

		return nil, err
	}

	sorted := SortByRecency(workflows)

	deployments, err := w.persistence.DeploymentRepository().ListForUser(ctx)
	if err != nil {
		w.notifier.Notify(ctx, "Error loading deployment information", notify.SeverityError, notify.DefaultDuration)

		deployments = nil
	}

	summaries := make([]*Summary, 0, len(sorted))

	for _, workflow := range sorted {
		summaries = append(summaries, &Summary{
			Workflow:         workflow,
			ActiveDeployment: ActiveDeploymentFor(workflow.ID, deployments),
			UpdatedAtDisplay: instant.Display(workflow.UpdatedAt),
		})
	}

	return summaries, nil
}

// SortByRecency orders workflows newest first by updated_at as resolved
// through the temporal normalizer. The sort is stable: workflows with equal
// keys keep their store order.
func SortByRecency(workflows []*models.Workflow) []*models.Workflow {
	sorted := append([]*models.Workflow(nil), workflows...)

	sort.SliceStable(sorted, func(i, j int) bool {
		return instant.UnixMilli(sorted[i].UpdatedAt) > instant.UnixMilli(sorted[j].UpdatedAt)
	})

	return sorted
}

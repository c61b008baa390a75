package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trellishq/trellis/pkg/graph"
	"github.com/trellishq/trellis/pkg/instant"
	"github.com/trellishq/trellis/pkg/models"
	"github.com/trellishq/trellis/pkg/nodeconfig"
	"github.com/trellishq/trellis/pkg/notify"
	"github.com/trellishq/trellis/pkg/persistence"
	"github.com/trellishq/trellis/pkg/persistence/file"
	"github.com/trellishq/trellis/pkg/services"
)

func newWorkflowService(t *testing.T, store persistence.Persistence, notifier notify.Notifier) *services.Workflow {
	t.Helper()

	if notifier == nil {
		notifier = notify.Noop{}
	}

	return services.NewWorkflow(store, nodeconfig.NewRegistry(), validator.New(validator.WithRequiredStructEnabled()), notifier)
}

func validDocument(name string) *models.Workflow {
	return &models.Workflow{
		Name: name,
		Nodes: []*models.WorkflowNode{
			{
				ID:       "n1",
				Kind:     models.NodeKindAskAI,
				Position: models.Position{X: 10, Y: 20},
				Config:   nodeconfig.ToMap(nodeconfig.DefaultAskAIConfig()),
			},
		},
		Edges: []*models.WorkflowEdge{},
	}
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, message string, _ notify.Severity, _ time.Duration) {
	n.messages = append(n.messages, message)
}

type failingDeploymentRepo struct {
	persistence.DeploymentRepository
}

func (failingDeploymentRepo) ListForUser(context.Context) ([]*models.Deployment, error) {
	return nil, errors.New("deployment store offline")
}

// deploymentsOffline serves workflows normally but fails every deployment
// listing.
type deploymentsOffline struct {
	*file.Persistence
}

func (p deploymentsOffline) DeploymentRepository() persistence.DeploymentRepository {
	return failingDeploymentRepo{}
}

func TestWorkflow_SaveCreatesAndUpdates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	service := newWorkflowService(t, store, nil)

	saved, err := service.Save(ctx, validDocument("Daily Digest"))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	saved.Name = "Weekly Digest"
	updated, err := service.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)

	loaded, err := service.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weekly Digest", loaded.Name)
}

func TestWorkflow_SaveRejectsEmptyName(t *testing.T) {
	t.Parallel()

	service := newWorkflowService(t, newTestStore(t), nil)

	_, err := service.Save(context.Background(), validDocument(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrWorkflowNameRequired)
	assert.True(t, services.IsDomainError(err))
}

func TestWorkflow_SaveRejectsUnrestorableDocument(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	service := newWorkflowService(t, store, nil)

	doc := validDocument("Broken")
	doc.Nodes[0].Config = map[string]any{"prompt": "x", "llm_model": "gpt-9", "temperature": 0.1}

	_, err := service.Save(ctx, doc)
	require.Error(t, err)
	assert.True(t, graph.IsSchemaError(err))

	// Nothing reached the store.
	workflows, err := service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, workflows)
}

func TestWorkflow_LoadRestoresGraph(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newWorkflowService(t, newTestStore(t), nil)

	saved, err := service.Save(ctx, validDocument("Daily Digest"))
	require.NoError(t, err)

	g, err := service.Load(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Daily Digest", g.Name())
	assert.Equal(t, 1, g.NodeCount())

	_, err = service.Load(ctx, "missing")
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestSortByRecency(t *testing.T) {
	t.Parallel()

	january := &models.Workflow{ID: "jan", Name: "January", UpdatedAt: "2024-01-01T00:00:00Z"}
	february := &models.Workflow{ID: "feb", Name: "February", UpdatedAt: "2024-02-01T00:00:00Z"}
	march := &models.Workflow{ID: "mar", Name: "March", UpdatedAt: "2024-03-01T00:00:00Z"}

	input := []*models.Workflow{january, march, february}
	sorted := services.SortByRecency(input)

	assert.Equal(t, []*models.Workflow{march, february, january}, sorted)

	// The input slice keeps its order.
	assert.Equal(t, []*models.Workflow{january, march, february}, input)
}

func TestSortByRecency_MixedEncodingsAndStability(t *testing.T) {
	t.Parallel()

	pair := &models.Workflow{ID: "pair", UpdatedAt: map[string]any{"seconds": float64(1_710_000_000)}}
	millis := &models.Workflow{ID: "millis", UpdatedAt: float64(1_700_000_000_000)}
	absentA := &models.Workflow{ID: "absent-a"}
	absentB := &models.Workflow{ID: "absent-b"}

	sorted := services.SortByRecency([]*models.Workflow{absentA, millis, pair, absentB})

	require.Len(t, sorted, 4)
	assert.Equal(t, "pair", sorted[0].ID)
	assert.Equal(t, "millis", sorted[1].ID)

	// Workflows with no timestamp sink to the end, keeping relative order.
	assert.Equal(t, "absent-a", sorted[2].ID)
	assert.Equal(t, "absent-b", sorted[3].ID)
}

func TestWorkflow_Dashboard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	service := newWorkflowService(t, store, nil)
	deployments := services.NewDeployment(store)

	first, err := service.Save(ctx, validDocument("First"))
	require.NoError(t, err)
	_, err = service.Save(ctx, validDocument("Second"))
	require.NoError(t, err)

	deployment, err := deployments.Request(ctx, first.ID, "First")
	require.NoError(t, err)

	summaries, err := service.Dashboard(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := make(map[string]*services.Summary, len(summaries))
	for _, summary := range summaries {
		byID[summary.Workflow.ID] = summary

		assert.NotEqual(t, instant.UnknownDate, summary.UpdatedAtDisplay)
		assert.NotEqual(t, instant.InvalidDate, summary.UpdatedAtDisplay)
	}

	require.NotNil(t, byID[first.ID].ActiveDeployment)
	assert.Equal(t, deployment.ID, byID[first.ID].ActiveDeployment.ID)

	for id, summary := range byID {
		if id != first.ID {
			assert.Nil(t, summary.ActiveDeployment)
		}
	}
}

func TestWorkflow_DashboardSurvivesDeploymentFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	notifier := &recordingNotifier{}
	service := newWorkflowService(t, deploymentsOffline{store}, notifier)

	_, err := service.Save(ctx, validDocument("Resilient"))
	require.NoError(t, err)

	summaries, err := service.Dashboard(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Nil(t, summaries[0].ActiveDeployment)

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Error loading deployment information", notifier.messages[0])
}

func TestWorkflow_HealthCheck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	service := newWorkflowService(t, newTestStore(t), nil)
	message, healthy := service.HealthCheck(ctx)
	assert.True(t, healthy)
	assert.NotEmpty(t, message)

	broken := newWorkflowService(t, file.NewPersistence("/nonexistent/trellis-store"), nil)
	message, healthy = broken.HealthCheck(ctx)
	assert.False(t, healthy)
	assert.Contains(t, message, "unhealthy")
}

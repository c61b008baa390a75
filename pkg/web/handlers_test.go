package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trellishq/trellis/pkg/models"
	"github.com/trellishq/trellis/pkg/nodeconfig"
	"github.com/trellishq/trellis/pkg/notify"
	"github.com/trellishq/trellis/pkg/persistence/file"
	"github.com/trellishq/trellis/pkg/services"
	"github.com/trellishq/trellis/pkg/web"
)

func setupTestApp(t *testing.T) (*fiber.App, *services.Workflow, *services.Deployment) {
	t.Helper()

	store := file.NewPersistence(t.TempDir())
	registry := nodeconfig.NewRegistry()
	validate := validator.New(validator.WithRequiredStructEnabled())
	workflowService := services.NewWorkflow(store, registry, validate, notify.Noop{})
	deploymentService := services.NewDeployment(store)

	handlers := web.NewAPIHandlers(workflowService, deploymentService, validate, registry)

	app := fiber.New()

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Get("/:id", handlers.GetWorkflow)
	w.Put("/:id", handlers.UpdateWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)
	w.Post("/:id/deployments", handlers.RequestDeployment)

	d := app.Group("/deployments")
	d.Get("/", handlers.GetDeployments)
	d.Delete("/:id", handlers.CancelDeployment)

	app.Get("/node-kinds", handlers.GetNodeKinds)
	app.Get("/health", handlers.HealthCheck)

	return app, workflowService, deploymentService
}

func saveRequestBody(name string) *web.SaveWorkflowRequest {
	return &web.SaveWorkflowRequest{
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

func TestAPIHandlers_CreateWorkflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		validateResult func(t *testing.T, body []byte)
	}{
		{
			name:           "successful creation",
			requestBody:    saveRequestBody("Daily Digest"),
			expectedStatus: http.StatusCreated,
			validateResult: func(t *testing.T, body []byte) {
				t.Helper()

				var workflow models.Workflow
				require.NoError(t, json.Unmarshal(body, &workflow))
				assert.NotEmpty(t, workflow.ID)
				assert.Equal(t, "Daily Digest", workflow.Name)
				require.Len(t, workflow.Nodes, 1)
				assert.Equal(t, models.NodeKindAskAI, workflow.Nodes[0].Kind)
			},
		},
		{
			name:           "validation error - missing name",
			requestBody:    saveRequestBody(""),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "schema error - unknown node kind",
			requestBody: web.SaveWorkflowRequest{
				Name: "Broken",
				Nodes: []*models.WorkflowNode{
					{ID: "n1", Kind: "teleporter", Config: map[string]any{}},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "schema error - dangling edge",
			requestBody: web.SaveWorkflowRequest{
				Name: "Broken",
				Nodes: []*models.WorkflowNode{
					{ID: "n1", Kind: models.NodeKindAskAI, Config: nodeconfig.ToMap(nodeconfig.DefaultAskAIConfig())},
				},
				Edges: []*models.WorkflowEdge{{Source: "n1", Target: "ghost"}},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not-json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app, _, _ := setupTestApp(t)

			var (
				body []byte
				err  error
			)

			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/workflows", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)

			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateResult != nil && resp.StatusCode == tt.expectedStatus {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				tt.validateResult(t, body)
			}
		})
	}
}

func TestAPIHandlers_GetWorkflow(t *testing.T) {
	t.Parallel()

	app, workflowService, _ := setupTestApp(t)

	saved, err := workflowService.Save(context.Background(), saveRequestBody("Daily Digest").Document(""))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/workflows/"+saved.ID, nil))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var workflow models.Workflow
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&workflow))
	assert.Equal(t, saved.ID, workflow.ID)
	assert.Equal(t, "Daily Digest", workflow.Name)

	missing, err := app.Test(httptest.NewRequest(http.MethodGet, "/workflows/missing", nil))
	require.NoError(t, err)

	defer func() { _ = missing.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestAPIHandlers_UpdateWorkflow(t *testing.T) {
	t.Parallel()

	app, workflowService, _ := setupTestApp(t)

	saved, err := workflowService.Save(context.Background(), saveRequestBody("Before").Document(""))
	require.NoError(t, err)

	body, err := json.Marshal(saveRequestBody("After"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/workflows/"+saved.ID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var workflow models.Workflow
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&workflow))
	assert.Equal(t, saved.ID, workflow.ID)
	assert.Equal(t, "After", workflow.Name)

	missingReq := httptest.NewRequest(http.MethodPut, "/workflows/missing", bytes.NewBuffer(body))
	missingReq.Header.Set("Content-Type", "application/json")

	missing, err := app.Test(missingReq)
	require.NoError(t, err)

	defer func() { _ = missing.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestAPIHandlers_DeleteWorkflow(t *testing.T) {
	t.Parallel()

	app, workflowService, _ := setupTestApp(t)

	ctx := context.Background()
	saved, err := workflowService.Save(ctx, saveRequestBody("Doomed").Document(""))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/workflows/"+saved.ID, nil))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = workflowService.Get(ctx, saved.ID)
	require.Error(t, err)

	again, err := app.Test(httptest.NewRequest(http.MethodDelete, "/workflows/"+saved.ID, nil))
	require.NoError(t, err)

	defer func() { _ = again.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}

func TestAPIHandlers_GetWorkflowsDashboard(t *testing.T) {
	t.Parallel()

	app, workflowService, deploymentService := setupTestApp(t)

	ctx := context.Background()
	saved, err := workflowService.Save(ctx, saveRequestBody("Daily Digest").Document(""))
	require.NoError(t, err)

	deployment, err := deploymentService.Request(ctx, saved.ID, saved.Name)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/workflows/", nil))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Workflows []*services.Summary `json:"workflows"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Workflows, 1)

	summary := payload.Workflows[0]
	assert.Equal(t, saved.ID, summary.Workflow.ID)
	assert.NotEmpty(t, summary.UpdatedAtDisplay)
	require.NotNil(t, summary.ActiveDeployment)
	assert.Equal(t, deployment.ID, summary.ActiveDeployment.ID)
	assert.Equal(t, models.DeploymentStatusRequested, summary.ActiveDeployment.Status)
}

func TestAPIHandlers_RequestDeployment(t *testing.T) {
	t.Parallel()

	app, workflowService, _ := setupTestApp(t)

	saved, err := workflowService.Save(context.Background(), saveRequestBody("Daily Digest").Document(""))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/workflows/"+saved.ID+"/deployments", nil))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var deployment models.Deployment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&deployment))
	assert.NotEmpty(t, deployment.ID)
	assert.Equal(t, saved.ID, deployment.WorkflowID)
	assert.Equal(t, "Daily Digest", deployment.WorkflowName)
	assert.Equal(t, models.DeploymentStatusRequested, deployment.Status)

	missing, err := app.Test(httptest.NewRequest(http.MethodPost, "/workflows/missing/deployments", nil))
	require.NoError(t, err)

	defer func() { _ = missing.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestAPIHandlers_CancelDeployment(t *testing.T) {
	t.Parallel()

	app, workflowService, deploymentService := setupTestApp(t)

	ctx := context.Background()
	saved, err := workflowService.Save(ctx, saveRequestBody("Daily Digest").Document(""))
	require.NoError(t, err)

	deployment, err := deploymentService.Request(ctx, saved.ID, saved.Name)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/deployments/"+deployment.ID, nil))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The cancelled run shows up as failed in the listing.
	list, err := app.Test(httptest.NewRequest(http.MethodGet, "/deployments/", nil))
	require.NoError(t, err)

	defer func() { _ = list.Body.Close() }()

	require.Equal(t, http.StatusOK, list.StatusCode)

	var payload struct {
		Deployments []*models.Deployment `json:"deployments"`
	}
	require.NoError(t, json.NewDecoder(list.Body).Decode(&payload))
	require.Len(t, payload.Deployments, 1)
	assert.Equal(t, models.DeploymentStatusFailed, payload.Deployments[0].Status)

	missing, err := app.Test(httptest.NewRequest(http.MethodDelete, "/deployments/missing", nil))
	require.NoError(t, err)

	defer func() { _ = missing.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestAPIHandlers_GetNodeKinds(t *testing.T) {
	t.Parallel()

	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/node-kinds", nil))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Kinds []struct {
			Kind     string         `json:"kind"`
			Name     string         `json:"name"`
			Defaults map[string]any `json:"defaults"`
			Schema   map[string]any `json:"schema"`
		} `json:"kinds"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Kinds, len(models.AllNodeKinds()))

	for _, descriptor := range payload.Kinds {
		assert.NotEmpty(t, descriptor.Kind)
		assert.NotEmpty(t, descriptor.Name)
		assert.NotEmpty(t, descriptor.Defaults)
		assert.NotEmpty(t, descriptor.Schema)
	}
}

func TestAPIHandlers_HealthCheck(t *testing.T) {
	t.Parallel()

	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "healthy", payload["status"])
}

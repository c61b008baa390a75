// Package web provides the REST endpoints for workflow and deployment
// management.
package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/trellishq/trellis/pkg/nodeconfig"
	"github.com/trellishq/trellis/pkg/services"
)

type APIHandlers struct {
	workflowService   *services.Workflow
	deploymentService *services.Deployment
	validator         *validator.Validate
	registry          *nodeconfig.Registry
}

func NewAPIHandlers(
	workflowService *services.Workflow,
	deploymentService *services.Deployment,
	validator *validator.Validate,
	registry *nodeconfig.Registry,
) *APIHandlers {
	return &APIHandlers{
		workflowService:   workflowService,
		deploymentService: deploymentService,
		validator:         validator,
		registry:          registry,
	}
}

// GetWorkflows returns the dashboard view: workflows sorted by recency, each
// joined with its active deployment.
func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	summaries, err := h.workflowService.Dashboard(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"workflows": summaries})
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	workflow, err := h.workflowService.Get(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	req, err := h.parseSaveRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	workflow, err := h.workflowService.Save(c.Context(), req.Document(""))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(workflow)
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	req, err := h.parseSaveRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	workflow, err := h.workflowService.Save(c.Context(), req.Document(id))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(workflow)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	if err := h.workflowService.Delete(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RequestDeployment creates a deployment for a saved workflow, carrying the
// workflow's current name into the deployment record.
func (h *APIHandlers) RequestDeployment(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	workflow, err := h.workflowService.Get(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	deployment, err := h.deploymentService.Request(c.Context(), workflow.ID, workflow.Name)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(deployment)
}

func (h *APIHandlers) GetDeployments(c fiber.Ctx) error {
	deployments, err := h.deploymentService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"deployments": deployments})
}

// CancelDeployment cancels an active deployment. Cancelling a terminal
// deployment succeeds without changing anything.
func (h *APIHandlers) CancelDeployment(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Deployment ID is required")
	}

	if err := h.deploymentService.Cancel(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetNodeKinds lists every registered node kind with its defaults and
// configuration schema, for the editing surface's palette.
func (h *APIHandlers) GetNodeKinds(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"kinds": h.registry.Kinds()})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, ok := h.workflowService.HealthCheck(c.Context())

	status := "healthy"
	httpStatus := http.StatusOK

	if !ok {
		status = "unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":      status,
		"persistence": repositoryCheck,
	})
}

func (h *APIHandlers) parseSaveRequest(c fiber.Ctx) (*SaveWorkflowRequest, error) {
	var req SaveWorkflowRequest

	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return nil, err
	}

	if err := h.validator.Struct(&req); err != nil {
		return nil, err
	}

	return &req, nil
}

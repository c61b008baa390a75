// Package main provides the Trellis API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/trellishq/trellis/pkg/nodeconfig"
	"github.com/trellishq/trellis/pkg/notify"
	"github.com/trellishq/trellis/pkg/persistence"
	"github.com/trellishq/trellis/pkg/services"
	"github.com/trellishq/trellis/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *nodeconfig.Registry
	validate    *validator.Validate
}

func NewAPI(logger *slog.Logger, persistence persistence.Persistence, registry *nodeconfig.Registry) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		registry:    registry,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	notifier := notify.NewLogNotifier(a.logger)
	workflowService := services.NewWorkflow(a.persistence, a.registry, a.validate, notifier)
	deploymentService := services.NewDeployment(a.persistence)

	handlers := web.NewAPIHandlers(workflowService, deploymentService, a.validate, a.registry)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Trellis API")
	})

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

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}

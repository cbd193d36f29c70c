package gamedata

import (
	"gamedata-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the sync pipeline.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the gamedata routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/gamedata")
	group.Post("/sync", h.HandleSync)
	group.Post("/diff", h.HandleDiff)
	group.Post("/load", h.HandleLoad)
	group.Get("/report", h.HandleGetReport)
	group.Get("/manifest", h.HandleGetManifest)
}

// HandleSync runs a full sync: diff, manifest persistence and both loader
// passes. Returns the run report.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.RunSync(c.Context())
	if err != nil {
		l.Error("Sync run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleDiff fingerprints the staging tree and rewrites the manifest and
// work lists without loading any rows.
func (h *Handler) HandleDiff(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.RunDiff(c.Context())
	if err != nil {
		l.Error("Diff run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleLoad replays the persisted work lists through the loaders.
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.RunLoad(c.Context())
	if err != nil {
		l.Error("Load run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleGetReport returns the report of the most recent run in this process.
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	report := h.service.LastReport()
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no run has completed yet",
		})
	}
	return c.JSON(report)
}

// HandleGetManifest returns the persisted fingerprint manifest.
func (h *Handler) HandleGetManifest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	m, err := h.service.Manifest()
	if err != nil {
		l.Error("Manifest read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(m)
}

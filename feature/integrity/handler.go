package integrity

import (
	"gamedata-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/references", h.HandleReferenceCheck)
	group.Get("/counts", h.HandleCountsCheck)
	group.Get("/reconcile/:kind", h.HandleReconcile)
	group.Get("/reconcile/:kind/:key", h.HandleReconcileEntity)
}

// HandleIntegrityCheck runs the schema and reference checks plus both
// reconcile plans, and returns a combined report. This can take a while on
// a large store.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if schema, err := h.service.CheckSchema(ctx); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if refs, err := h.service.CheckReferences(ctx); err != nil {
		report["references"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["references"] = refs
	}

	if counts, err := h.service.CheckCounts(ctx); err != nil {
		report["counts"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["counts"] = counts
	}

	for _, kind := range []string{"items", "statuseffects"} {
		if plan, err := h.service.ReconcilePlan(ctx, kind); err != nil {
			report[kind] = map[string]interface{}{"status": "error", "error": err.Error()}
		} else {
			report[kind] = plan.Summary
		}
	}

	return c.JSON(report)
}

// HandleSchemaCheck verifies the provisioned tables against the expected
// models.
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema(c.Context())
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Matched {
		l.Warn("Schema mismatch detected")
	}
	return c.JSON(report)
}

// HandleReferenceCheck scans the association tables for dangling keys.
func (h *Handler) HandleReferenceCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckReferences(c.Context())
	if err != nil {
		l.Error("Reference check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Clean {
		l.Warn("Dangling association rows detected",
			zap.Int("count", len(report.Dangling)))
	}
	return c.JSON(report)
}

// HandleCountsCheck summarizes table populations and icon coverage.
func (h *Handler) HandleCountsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckCounts(c.Context())
	if err != nil {
		l.Error("Counts check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleReconcile returns the advisory reconcile plan for one entity kind.
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	kind := c.Params("kind")

	plan, err := h.service.ReconcilePlan(c.Context(), kind)
	if err != nil {
		l.Error("Reconcile failed", zap.String("kind", kind), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Reconcile completed",
		zap.String("kind", kind),
		zap.Int("total", plan.Summary.TotalItems),
		zap.Int("mismatches", plan.Summary.Mismatches))
	return c.JSON(plan)
}

// HandleReconcileEntity reconciles a single entity by key.
func (h *Handler) HandleReconcileEntity(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	kind := c.Params("kind")
	key := c.Params("key")

	result, err := h.service.ReconcileEntity(c.Context(), kind, key)
	if err != nil {
		l.Error("Entity reconcile failed",
			zap.String("kind", kind),
			zap.String("key", key),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

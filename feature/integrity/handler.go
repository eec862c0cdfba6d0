package integrity

import (
	"mod-sync/core/logger"

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
	group.Get("/", h.HandleArchiveCheck)
	group.Get("/mirror", h.HandleMirrorCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleArchiveCheck verifies installed archives against the catalog.
// @Summary Verify Installed Archives
// @Description Hashes every installed archive and compares it with the catalog hash of the same version. This operation may take a long time.
// @Tags integrity
// @Produce json
// @Success 200 {object} Report "Archive Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleArchiveCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Verifying installed archives")

	report, err := h.service.VerifyArchives(c.UserContext())
	if err != nil {
		l.Error("Archive verification failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Archive verification completed",
		zap.Int("total", report.Summary.Total),
		zap.Int("mismatched", report.Summary.Mismatched))

	return c.JSON(report)
}

// HandleMirrorCheck checks and optionally fixes mirror coverage.
// @Summary Check Mirror
// @Description Lists installed archives missing from the mirror bucket. Optionally uploads them.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Upload missing archives"
// @Success 200 {object} map[string]interface{} "Mirror Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/mirror [get]
func (h *Handler) HandleMirrorCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckMirror(c.UserContext())
	if err != nil {
		l.Error("Mirror check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Archives missing from mirror", zap.Int("count", len(missing)))

		if fix {
			l.Info("Attempting to upload missing archives")
			if err := h.service.FixMirror(c.UserContext(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix mirror",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleSchemaCheck checks the history table schema.
// @Summary Check History Schema
// @Description Checks if the download history table has every expected column.
// @Tags integrity
// @Produce json
// @Success 200 {object} SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

package updates

import (
	"errors"

	"mod-sync/core/errdefs"
	"mod-sync/core/logger"
	"mod-sync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for update checks and syncs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the updates routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/updates")
	group.Get("/", h.HandleCheck)
	group.Post("/sync", h.HandleSync)
	group.Get("/history", h.HandleHistory)
	group.Get("/history/:name", h.HandleHistory)
	group.Get("/changelog/:name", h.HandleChangelog)
	group.Get("/mirror/:name", h.HandleMirror)
}

// HandleCheck reports available updates without downloading anything.
// @Summary Check For Updates
// @Description Scans the installed mods and reconciles each against the mod portal.
// @Tags updates
// @Produce json
// @Success 200 {object} Report "Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /updates [get]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Checking installed mods for updates")

	report, err := h.service.CheckUpdates(c.UserContext())
	if err != nil {
		l.Error("Update check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleSync checks for updates and downloads them.
// @Summary Sync Mods
// @Description Downloads, verifies and mirrors every available update.
// @Tags updates
// @Produce json
// @Param dry_run query boolean false "Only report updates"
// @Success 200 {object} Report "Sync Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /updates/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	dryRun := c.QueryBool("dry_run", false)
	l.Info("Starting sync", zap.Bool("dry_run", dryRun))

	report, err := h.service.Run(c.UserContext(), dryRun)
	if err != nil {
		l.Error("Sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleHistory lists recent downloads.
// @Summary Download History
// @Description Lists recorded download attempts, newest first.
// @Tags updates
// @Produce json
// @Param name path string false "Mod name"
// @Param limit query int false "Maximum records"
// @Success 200 {array} DownloadRecord "History"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /updates/history/{name} [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := h.service.History(c.UserContext(), c.Params("name"), c.QueryInt("limit", 50))
	if err != nil {
		l.Error("History lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if records == nil {
		records = []DownloadRecord{}
	}

	return c.JSON(records)
}

// HandleChangelog returns the changes between the installed and latest release.
// @Summary Mod Changelog
// @Description Lists changelog entries newer than the installed release.
// @Tags updates
// @Produce json
// @Param name path string true "Mod name"
// @Success 200 {object} ChangelogView "Changelog"
// @Failure 404 {object} map[string]string "Unknown Mod"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /updates/changelog/{name} [get]
func (h *Handler) HandleChangelog(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	view, err := h.service.Changelog(c.UserContext(), name)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Changelog lookup failed", zap.String("mod", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(view)
}

// HandleMirror lists the mirrored archives of a mod.
// @Summary Mirrored Archives
// @Description Lists archives of a mod held in object storage.
// @Tags updates
// @Produce json
// @Param name path string true "Mod name"
// @Success 200 {object} MirrorListing "Mirror Listing"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /updates/mirror/{name} [get]
func (h *Handler) HandleMirror(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	objects, enabled, err := h.service.Mirrored(c.UserContext(), name)
	if err != nil {
		l.Error("Mirror listing failed", zap.String("mod", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !enabled {
		objects = []storage.Object{}
	}

	return c.JSON(MirrorListing{Enabled: enabled, Objects: objects})
}

package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"prepview/interview-engine/internal/engine"
	"prepview/interview-engine/internal/models"
	"prepview/interview-engine/internal/repositories"
	"prepview/interview-engine/internal/services"
)

type DashboardHandler struct {
	sessionRepo repositories.SessionRepository
	reportRepo  repositories.ReportRepository
	reportCache services.ReportCache
}

func NewDashboardHandler(
	sessionRepo repositories.SessionRepository,
	reportRepo repositories.ReportRepository,
	reportCache services.ReportCache,
) *DashboardHandler {
	return &DashboardHandler{
		sessionRepo: sessionRepo,
		reportRepo:  reportRepo,
		reportCache: reportCache,
	}
}

// HandleListSessions handles GET /sessions
func (h *DashboardHandler) HandleListSessions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	sessions, err := h.sessionRepo.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list sessions",
		})
	}

	return c.JSON(fiber.Map{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// HandleGetStats handles GET /dashboard/stats
func (h *DashboardHandler) HandleGetStats(c *fiber.Ctx) error {
	if h.reportCache != nil {
		if cached, err := h.reportCache.GetStats(c.Context()); err == nil && cached != nil {
			return c.JSON(cached)
		}
	}

	total, err := h.sessionRepo.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load session counts",
		})
	}

	completed, err := h.sessionRepo.CountByStatus(string(engine.StatusCompleted))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load session counts",
		})
	}

	reportStats, err := h.reportRepo.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to aggregate report stats",
		})
	}

	stats := &models.DashboardStats{
		TotalInterviews: int(total),
		CompletedCount:  int(completed),
		AverageScore:    int(reportStats.AverageScore + 0.5),
		TotalHours:      float64(reportStats.TotalDurationSeconds) / 3600,
	}

	if h.reportCache != nil {
		if err := h.reportCache.SetStats(c.Context(), stats); err != nil {
			log.Printf("⚠️  Failed to cache dashboard stats: %v\n", err)
		}
	}

	return c.JSON(stats)
}

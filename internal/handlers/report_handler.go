package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"prepview/interview-engine/internal/engine"
	"prepview/interview-engine/internal/models"
	"prepview/interview-engine/internal/repositories"
	"prepview/interview-engine/internal/services"
)

type ReportHandler struct {
	reportRepo   repositories.ReportRepository
	sessionRepo  repositories.SessionRepository
	questionRepo repositories.QuestionRepository
	reportCache  services.ReportCache
}

func NewReportHandler(
	reportRepo repositories.ReportRepository,
	sessionRepo repositories.SessionRepository,
	questionRepo repositories.QuestionRepository,
	reportCache services.ReportCache,
) *ReportHandler {
	return &ReportHandler{
		reportRepo:   reportRepo,
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		reportCache:  reportCache,
	}
}

// HandleGetReport handles GET /sessions/:id/report
func (h *ReportHandler) HandleGetReport(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	// Cache first; only completed reports are cached.
	if h.reportCache != nil {
		if cached, err := h.reportCache.GetReport(c.Context(), sessionID.String()); err == nil && cached != nil {
			return c.JSON(models.ReportResponse{
				SessionID: sessionID.String(),
				Status:    string(models.ReportCompleted),
				Report:    cached,
			})
		}
	}

	session, err := h.sessionRepo.FindByID(sessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	// A report only exists for completed sessions.
	if session.Status != string(engine.StatusCompleted) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Session is not completed",
		})
	}

	record, err := h.reportRepo.FindBySessionID(sessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Report not found",
		})
	}

	response := models.ReportResponse{
		SessionID: sessionID.String(),
		Status:    string(record.Status),
	}

	if record.Status == models.ReportFailed && record.ErrorMessage != nil {
		response.ErrorMessage = record.ErrorMessage
	}

	if record.Status == models.ReportCompleted {
		report, err := h.buildReportData(sessionID, record)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to assemble report",
			})
		}
		response.Report = report

		if h.reportCache != nil {
			if err := h.reportCache.SetReport(c.Context(), sessionID.String(), report); err != nil {
				log.Printf("⚠️  Failed to cache report: %v\n", err)
			}
		}
	}

	return c.JSON(response)
}

func (h *ReportHandler) buildReportData(sessionID uuid.UUID, record *models.FeedbackReportRecord) (*models.ReportData, error) {
	results, err := h.sessionRepo.FindResults(sessionID)
	if err != nil {
		return nil, err
	}

	detailed := make([]models.QuestionFeedback, 0, len(results))
	for _, r := range results {
		question, err := h.questionRepo.FindByID(r.QuestionID)
		if err != nil {
			return nil, err
		}

		feedback := models.QuestionFeedback{
			QuestionID: r.QuestionID.String(),
			Question:   question.Prompt,
			Response:   r.Response,
			Skipped:    r.Response == "",
			Score:      r.Score,
		}
		if r.Score != nil {
			feedback.ScoreTier = string(engine.ScoreTier(*r.Score))
		}
		if r.Feedback != nil {
			feedback.Feedback = *r.Feedback
		}
		detailed = append(detailed, feedback)
	}

	overall := 0
	if record.OverallScore != nil {
		overall = *record.OverallScore
	}

	data := &models.ReportData{
		SessionID:        sessionID.String(),
		OverallScore:     overall,
		OverallTier:      string(engine.ScoreTier(overall)),
		NoData:           record.NoData,
		CategoryScores:   record.CategoryScores,
		Strengths:        record.Strengths,
		Improvements:     record.Improvements,
		DurationSeconds:  record.DurationSeconds,
		DurationDisplay:  engine.FormatElapsed(record.DurationSeconds),
		DetailedFeedback: detailed,
	}
	if record.CompletedAt != nil {
		data.CompletedAt = *record.CompletedAt
	}
	if data.CategoryScores == nil {
		data.CategoryScores = map[string]int{}
	}
	return data, nil
}

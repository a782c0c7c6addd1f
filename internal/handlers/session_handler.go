package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"prepview/interview-engine/internal/engine"
	"prepview/interview-engine/internal/models"
	"prepview/interview-engine/internal/repositories"
	"prepview/interview-engine/internal/services"
)

type SessionHandler struct {
	sessionManager       services.SessionManager
	questionProvider     services.QuestionProvider
	docRepo              repositories.DocumentRepository
	resumeParser         services.ResumeParserService
	defaultQuestionCount int
}

func NewSessionHandler(
	sessionManager services.SessionManager,
	questionProvider services.QuestionProvider,
	docRepo repositories.DocumentRepository,
	resumeParser services.ResumeParserService,
	defaultQuestionCount int,
) *SessionHandler {
	return &SessionHandler{
		sessionManager:       sessionManager,
		questionProvider:     questionProvider,
		docRepo:              docRepo,
		resumeParser:         resumeParser,
		defaultQuestionCount: defaultQuestionCount,
	}
}

// HandleCreateSession handles POST /sessions
func (h *SessionHandler) HandleCreateSession(c *fiber.Ctx) error {
	var req models.CreateSessionRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "role is required",
		})
	}

	count := req.QuestionCount
	if count <= 0 {
		count = h.defaultQuestionCount
	}

	var resumeDocID *uuid.UUID
	var resumeText string
	if req.ResumeDocumentID != "" {
		docID, err := uuid.Parse(req.ResumeDocumentID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid resume_document_id format",
			})
		}
		doc, err := h.docRepo.FindByID(docID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume document not found",
			})
		}
		resumeDocID = &docID

		// A broken resume PDF should not block the session; selection
		// falls back to role-only retrieval.
		if text, err := h.resumeParser.ExtractText(doc.FilePath); err == nil {
			resumeText = text
		}
	}

	questions, err := h.questionProvider.SelectQuestions(c.Context(), req.Role, resumeText, count)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to select interview questions",
		})
	}

	snap, err := h.sessionManager.CreateSession(req.Role, resumeDocID, questions)
	if err != nil {
		return sessionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(snap)
}

// HandleStartSession handles POST /sessions/:id/start
func (h *SessionHandler) HandleStartSession(c *fiber.Ctx) error {
	id, ok := parseSessionID(c)
	if !ok {
		return nil
	}

	snap, err := h.sessionManager.StartSession(id)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(snap)
}

// HandleSubmitResponse handles POST /sessions/:id/responses
func (h *SessionHandler) HandleSubmitResponse(c *fiber.Ctx) error {
	id, ok := parseSessionID(c)
	if !ok {
		return nil
	}

	var req models.SubmitResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	snap, err := h.sessionManager.SubmitResponse(id, req.Text)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(snap)
}

// HandleSkipQuestion handles POST /sessions/:id/skip
func (h *SessionHandler) HandleSkipQuestion(c *fiber.Ctx) error {
	id, ok := parseSessionID(c)
	if !ok {
		return nil
	}

	snap, err := h.sessionManager.SkipQuestion(id)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(snap)
}

// HandleToggleRecording handles POST /sessions/:id/recording
func (h *SessionHandler) HandleToggleRecording(c *fiber.Ctx) error {
	id, ok := parseSessionID(c)
	if !ok {
		return nil
	}

	snap, err := h.sessionManager.ToggleRecording(id)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(snap)
}

// HandleGetSession handles GET /sessions/:id
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	id, ok := parseSessionID(c)
	if !ok {
		return nil
	}

	snap, err := h.sessionManager.Snapshot(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}
	return c.JSON(snap)
}

func parseSessionID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// sessionError maps engine failures onto HTTP codes. Every engine error
// is a rejected operation, so nothing here is a 500 except unknown
// failures.
func sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, engine.ErrEmptyResponse):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Response text must not be empty",
		})
	case errors.Is(err, engine.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Operation not valid in the session's current state",
		})
	case errors.Is(err, engine.ErrRecordingActive):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Stop recording before editing the response",
		})
	case errors.Is(err, engine.ErrEmptyQuestionList):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question list must not be empty",
		})
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"prepview/interview-engine/internal/engine"
	"prepview/interview-engine/internal/models"
	"prepview/interview-engine/internal/repositories"
)

// FeedbackService is the scoring collaborator. Given a completed
// session it scores every answered result with the LLM, aggregates the
// scores through the engine and persists the finished report.
type FeedbackService interface {
	ScoreSession(ctx context.Context, sessionID uuid.UUID) error
}

type feedbackService struct {
	sessionRepo   repositories.SessionRepository
	questionRepo  repositories.QuestionRepository
	reportRepo    repositories.ReportRepository
	geminiService GeminiService
	reportCache   ReportCache
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewFeedbackService(
	sessionRepo repositories.SessionRepository,
	questionRepo repositories.QuestionRepository,
	reportRepo repositories.ReportRepository,
	geminiService GeminiService,
	reportCache ReportCache,
	maxRetries int,
) FeedbackService {
	return &feedbackService{
		sessionRepo:   sessionRepo,
		questionRepo:  questionRepo,
		reportRepo:    reportRepo,
		geminiService: geminiService,
		reportCache:   reportCache,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

type answerScore struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type sessionSummary struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

func (f *feedbackService) ScoreSession(ctx context.Context, sessionID uuid.UUID) error {
	// Update status to processing
	if err := f.reportRepo.UpdateStatus(sessionID, models.ReportProcessing); err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}

	log.Printf("🔄 Scoring session %s\n", sessionID)

	record, err := f.sessionRepo.FindByID(sessionID)
	if err != nil {
		f.reportRepo.UpdateError(sessionID, err.Error())
		return fmt.Errorf("failed to load session: %w", err)
	}

	session, questions, err := f.restoreSession(record)
	if err != nil {
		f.reportRepo.UpdateError(sessionID, err.Error())
		return fmt.Errorf("failed to restore session: %w", err)
	}

	// Step 1: score every answered result
	var scoredAnswers []ScoredAnswer
	for i, result := range session.Results() {
		if result.Skipped() {
			continue
		}

		question := questions[i]
		verdict, err := f.scoreAnswer(ctx, record.Role, question, result.Response)
		if err != nil {
			f.reportRepo.UpdateError(sessionID, fmt.Sprintf("failed to score answer %d: %v", i+1, err))
			return fmt.Errorf("failed to score answer %d: %w", i+1, err)
		}

		if err := session.ApplyScore(i, verdict.Score, verdict.Feedback); err != nil {
			f.reportRepo.UpdateError(sessionID, err.Error())
			return fmt.Errorf("failed to apply score: %w", err)
		}
		if err := f.sessionRepo.UpdateResultScore(sessionID, i, verdict.Score, verdict.Feedback); err != nil {
			log.Printf("⚠️  Failed to persist score for result %d: %v\n", i, err)
		}

		scoredAnswers = append(scoredAnswers, ScoredAnswer{
			Question: question.Prompt,
			Category: string(question.Category),
			Score:    verdict.Score,
			Feedback: verdict.Feedback,
		})
	}

	// Step 2: strengths/improvements summary; skipped-only sessions have
	// nothing to summarize
	var summary sessionSummary
	if len(scoredAnswers) > 0 {
		summary, err = f.summarize(ctx, record.Role, scoredAnswers)
		if err != nil {
			f.reportRepo.UpdateError(sessionID, fmt.Sprintf("failed to summarize session: %v", err))
			return fmt.Errorf("failed to summarize session: %w", err)
		}
	}

	// Step 3: aggregate through the engine
	completedAt := time.Now()
	if record.CompletedAt != nil {
		completedAt = *record.CompletedAt
	}
	report, err := engine.BuildFeedbackReport(session, summary.Strengths, summary.Improvements, completedAt)
	if err != nil {
		f.reportRepo.UpdateError(sessionID, err.Error())
		return fmt.Errorf("failed to build feedback report: %w", err)
	}

	// Step 4: persist
	categoryScores := make(map[string]int, len(report.CategoryScores))
	for category, score := range report.CategoryScores {
		categoryScores[string(category)] = score
	}

	updateData := &repositories.ReportUpdateData{
		OverallScore:    report.OverallScore,
		NoData:          report.NoData,
		CategoryScores:  categoryScores,
		Strengths:       report.Strengths,
		Improvements:    report.Improvements,
		DurationSeconds: report.DurationSeconds,
		CompletedAt:     report.CompletedAt,
	}
	if err := f.reportRepo.UpdateResult(sessionID, updateData); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	// Stats changed, so the cached dashboard aggregate is stale.
	if f.reportCache != nil {
		f.reportCache.InvalidateStats(ctx)
	}

	log.Printf("✅ Session %s scored: overall %d\n", sessionID, report.OverallScore)
	return nil
}

// restoreSession rebuilds the completed engine session from its
// persisted rows.
func (f *feedbackService) restoreSession(record *models.InterviewSession) (*engine.Session, []engine.Question, error) {
	ids := make([]uuid.UUID, 0, len(record.QuestionIDs))
	for _, raw := range record.QuestionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid question id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}

	questionRows, err := f.questionRepo.FindByIDs(ids)
	if err != nil {
		return nil, nil, err
	}
	questions := make([]engine.Question, len(questionRows))
	for i, row := range questionRows {
		questions[i] = row.ToEngine()
	}

	resultRows, err := f.sessionRepo.FindResults(record.ID)
	if err != nil {
		return nil, nil, err
	}
	results := make([]engine.QuestionResult, len(resultRows))
	for i, row := range resultRows {
		results[i] = engine.QuestionResult{
			QuestionID: row.QuestionID.String(),
			Response:   row.Response,
		}
	}

	session, err := engine.Restore(record.ID.String(), questions, results, record.DurationSeconds)
	if err != nil {
		return nil, nil, err
	}
	return session, questions, nil
}

func (f *feedbackService) scoreAnswer(ctx context.Context, role string, question engine.Question, response string) (*answerScore, error) {
	prompt := f.promptBuilder.BuildAnswerScoringPrompt(role, question, response)

	raw, err := f.geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, f.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer score: %w", err)
	}

	var verdict answerScore
	if err := parseJSONResponse(raw, &verdict); err != nil {
		return nil, fmt.Errorf("failed to parse answer score: %w", err)
	}

	if verdict.Score < 0 {
		verdict.Score = 0
	}
	if verdict.Score > 100 {
		verdict.Score = 100
	}
	return &verdict, nil
}

func (f *feedbackService) summarize(ctx context.Context, role string, scored []ScoredAnswer) (sessionSummary, error) {
	prompt := f.promptBuilder.BuildSessionSummaryPrompt(role, scored)

	raw, err := f.geminiService.GenerateTextWithRetry(ctx, prompt, 0.5, f.maxRetries)
	if err != nil {
		return sessionSummary{}, fmt.Errorf("failed to generate summary: %w", err)
	}

	var summary sessionSummary
	if err := parseJSONResponse(raw, &summary); err != nil {
		return sessionSummary{}, fmt.Errorf("failed to parse summary: %w", err)
	}
	return summary, nil
}

func parseJSONResponse(response string, target interface{}) error {
	// Try to extract JSON from response (LLM might wrap it in markdown)
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w\nResponse: %s", err, response)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}

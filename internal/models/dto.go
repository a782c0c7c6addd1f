package models

import "time"

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}

type CreateSessionRequest struct {
	Role             string `json:"role" validate:"required"`
	QuestionCount    int    `json:"question_count"`
	ResumeDocumentID string `json:"resume_document_id,omitempty"`
}

type SubmitResponseRequest struct {
	Text string `json:"text"`
}

// QuestionView is the presentation shape of a question, with the
// category and difficulty labels the UI renders as badges.
type QuestionView struct {
	ID         string `json:"id"`
	Prompt     string `json:"prompt"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// SessionSnapshot is what the interview page renders after every
// operation: status, position, progress, elapsed time and the question
// awaiting a response.
type SessionSnapshot struct {
	ID              string        `json:"id"`
	Status          string        `json:"status"`
	QuestionIndex   int           `json:"question_index"`
	TotalQuestions  int           `json:"total_questions"`
	Progress        float64       `json:"progress"`
	ElapsedSeconds  int           `json:"elapsed_seconds"`
	ElapsedDisplay  string        `json:"elapsed_display"`
	Recording       bool          `json:"recording"`
	CurrentQuestion *QuestionView `json:"current_question,omitempty"`
}

type QuestionFeedback struct {
	QuestionID string `json:"question_id"`
	Question   string `json:"question"`
	Response   string `json:"response"`
	Skipped    bool   `json:"skipped"`
	Score      *int   `json:"score,omitempty"`
	ScoreTier  string `json:"score_tier,omitempty"`
	Feedback   string `json:"feedback,omitempty"`
}

type ReportData struct {
	SessionID        string             `json:"session_id"`
	OverallScore     int                `json:"overall_score"`
	OverallTier      string             `json:"overall_tier"`
	NoData           bool               `json:"no_data"`
	CategoryScores   map[string]int     `json:"category_scores"`
	Strengths        []string           `json:"strengths"`
	Improvements     []string           `json:"improvements"`
	DurationSeconds  int                `json:"duration_seconds"`
	DurationDisplay  string             `json:"duration_display"`
	CompletedAt      time.Time          `json:"completed_at"`
	DetailedFeedback []QuestionFeedback `json:"detailed_feedback"`
}

type ReportResponse struct {
	SessionID    string      `json:"session_id"`
	Status       string      `json:"status"`
	Report       *ReportData `json:"report,omitempty"`
	ErrorMessage *string     `json:"error_message,omitempty"`
}

// DashboardStats summarizes stored sessions for the dashboard header
// cards.
type DashboardStats struct {
	TotalInterviews int     `json:"total_interviews"`
	CompletedCount  int     `json:"completed_count"`
	AverageScore    int     `json:"average_score"`
	TotalHours      float64 `json:"total_hours"`
}

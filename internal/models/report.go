package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ReportStatus string

const (
	ReportQueued     ReportStatus = "queued"
	ReportProcessing ReportStatus = "processing"
	ReportCompleted  ReportStatus = "completed"
	ReportFailed     ReportStatus = "failed"
)

// FeedbackReportRecord is the persisted form of an aggregated feedback
// report. One row per completed session; created in queued state when
// the session completes and filled in by the scoring worker.
type FeedbackReportRecord struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"session_id"`
	Status          ReportStatus   `gorm:"type:text;not null;default:'queued'" json:"status"`
	OverallScore    *int           `json:"overall_score,omitempty"`
	NoData          bool           `gorm:"not null;default:false" json:"no_data"`
	CategoryScores  map[string]int `gorm:"serializer:json" json:"category_scores,omitempty"`
	Strengths       pq.StringArray `gorm:"type:text[]" json:"strengths,omitempty"`
	Improvements    pq.StringArray `gorm:"type:text[]" json:"improvements,omitempty"`
	DurationSeconds int            `gorm:"not null;default:0" json:"duration_seconds"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	ErrorMessage    *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Session InterviewSession `gorm:"foreignKey:SessionID" json:"-"`
}

func (FeedbackReportRecord) TableName() string {
	return "feedback_reports"
}

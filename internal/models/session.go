package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type InterviewSession struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Role             string         `gorm:"type:text" json:"role"`
	ResumeDocumentID *uuid.UUID     `gorm:"type:uuid" json:"resume_document_id,omitempty"`
	Status           string         `gorm:"type:text;not null;default:'scheduled'" json:"status"`
	QuestionIDs      pq.StringArray `gorm:"type:text[]" json:"question_ids"`
	CurrentIndex     int            `gorm:"not null;default:0" json:"current_index"`
	DurationSeconds  int            `gorm:"not null;default:0" json:"duration_seconds"`
	StartedAt        *time.Time     `json:"started_at,omitempty"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
	CreatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}

// SessionResult is one recorded answer (or skip) within a session,
// ordered by Position. Score and Feedback are filled in by the scoring
// worker after completion.
type SessionResult struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null" json:"question_id"`
	Position   int       `gorm:"not null" json:"position"`
	Response   string    `gorm:"type:text" json:"response"`
	Score      *int      `json:"score,omitempty"`
	Feedback   *string   `gorm:"type:text" json:"feedback,omitempty"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Session  InterviewSession `gorm:"foreignKey:SessionID" json:"-"`
	Question Question         `gorm:"foreignKey:QuestionID" json:"-"`
}

func (SessionResult) TableName() string {
	return "session_results"
}

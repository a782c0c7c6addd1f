package models

import (
	"time"

	"github.com/google/uuid"

	"prepview/interview-engine/internal/engine"
)

type Question struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Prompt     string    `gorm:"type:text;not null" json:"prompt"`
	Category   string    `gorm:"type:text;not null" json:"category"`
	Difficulty string    `gorm:"type:text;not null" json:"difficulty"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

// ToEngine converts the stored row into the engine's immutable form.
func (q *Question) ToEngine() engine.Question {
	return engine.Question{
		ID:         q.ID.String(),
		Prompt:     q.Prompt,
		Category:   engine.Category(q.Category),
		Difficulty: engine.Difficulty(q.Difficulty),
	}
}

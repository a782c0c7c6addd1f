package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepview/interview-engine/internal/models"
)

type SessionRepository interface {
	Create(session *models.InterviewSession) error
	FindByID(id uuid.UUID) (*models.InterviewSession, error)
	MarkStarted(id uuid.UUID, startedAt time.Time) error
	UpdateProgress(id uuid.UUID, currentIndex, durationSeconds int) error
	Complete(id uuid.UUID, durationSeconds int, completedAt time.Time, results []models.SessionResult) error
	FindRecent(limit int) ([]models.InterviewSession, error)
	FindResults(sessionID uuid.UUID) ([]models.SessionResult, error)
	UpdateResultScore(sessionID uuid.UUID, position int, score int, feedback string) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *models.InterviewSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindByID(id uuid.UUID) (*models.InterviewSession, error) {
	var session models.InterviewSession
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) MarkStarted(id uuid.UUID, startedAt time.Time) error {
	result := r.db.Model(&models.InterviewSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     "in-progress",
			"started_at": startedAt,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark session started: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

func (r *sessionRepository) UpdateProgress(id uuid.UUID, currentIndex, durationSeconds int) error {
	result := r.db.Model(&models.InterviewSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_index":    currentIndex,
			"duration_seconds": durationSeconds,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update session progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

// Complete persists the final state of a session and its recorded
// results in one transaction.
func (r *sessionRepository) Complete(id uuid.UUID, durationSeconds int, completedAt time.Time, results []models.SessionResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.InterviewSession{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":           "completed",
				"current_index":    len(results),
				"duration_seconds": durationSeconds,
				"completed_at":     completedAt,
				"updated_at":       time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to complete session: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("session not found")
		}

		for i := range results {
			results[i].ID = uuid.New()
			results[i].SessionID = id
			results[i].Position = i
		}
		if len(results) > 0 {
			if err := tx.Create(&results).Error; err != nil {
				return fmt.Errorf("failed to save session results: %w", err)
			}
		}
		return nil
	})
}

// FindRecent lists the most recently created sessions, newest first.
func (r *sessionRepository) FindRecent(limit int) ([]models.InterviewSession, error) {
	var sessions []models.InterviewSession
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepository) FindResults(sessionID uuid.UUID) ([]models.SessionResult, error) {
	var results []models.SessionResult
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("position ASC").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find session results: %w", err)
	}
	return results, nil
}

func (r *sessionRepository) UpdateResultScore(sessionID uuid.UUID, position int, score int, feedback string) error {
	result := r.db.Model(&models.SessionResult{}).
		Where("session_id = ? AND position = ?", sessionID, position).
		Updates(map[string]interface{}{
			"score":      score,
			"feedback":   feedback,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update result score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session result not found")
	}
	return nil
}

func (r *sessionRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.InterviewSession{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

func (r *sessionRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.InterviewSession{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

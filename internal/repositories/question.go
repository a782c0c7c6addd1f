package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepview/interview-engine/internal/models"
)

type QuestionRepository interface {
	Create(question *models.Question) error
	Count() (int64, error)
	FindByID(id uuid.UUID) (*models.Question, error)
	FindByIDs(ids []uuid.UUID) ([]models.Question, error)
	FindRandom(limit int) ([]models.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *models.Question) error {
	if err := r.db.Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *questionRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Question{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

func (r *questionRepository) FindByID(id uuid.UUID) (*models.Question, error) {
	var q models.Question
	if err := r.db.Where("id = ?", id).First(&q).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("question not found")
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}
	return &q, nil
}

// FindByIDs returns the questions in the same order as ids.
func (r *questionRepository) FindByIDs(ids []uuid.UUID) ([]models.Question, error) {
	var qs []models.Question
	if err := r.db.Where("id IN ?", ids).Find(&qs).Error; err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}

	byID := make(map[uuid.UUID]models.Question, len(qs))
	for _, q := range qs {
		byID[q.ID] = q
	}

	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("question %s not found", id)
		}
		ordered = append(ordered, q)
	}
	return ordered, nil
}

func (r *questionRepository) FindRandom(limit int) ([]models.Question, error) {
	var qs []models.Question
	err := r.db.
		Order("RANDOM()").
		Limit(limit).
		Find(&qs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to pick random questions: %w", err)
	}
	return qs, nil
}

package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"prepview/interview-engine/internal/models"
)

type ReportRepository interface {
	Create(report *models.FeedbackReportRecord) error
	FindBySessionID(sessionID uuid.UUID) (*models.FeedbackReportRecord, error)
	UpdateStatus(sessionID uuid.UUID, status models.ReportStatus) error
	UpdateResult(sessionID uuid.UUID, data *ReportUpdateData) error
	UpdateError(sessionID uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.FeedbackReportRecord, error)
	Stats() (*ReportStats, error)
}

type ReportUpdateData struct {
	OverallScore    int
	NoData          bool
	CategoryScores  map[string]int
	Strengths       []string
	Improvements    []string
	DurationSeconds int
	CompletedAt     time.Time
}

// ReportStats aggregates completed reports for the dashboard.
type ReportStats struct {
	CompletedCount       int64
	AverageScore         float64
	TotalDurationSeconds int64
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.FeedbackReportRecord) error {
	if err := r.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *reportRepository) FindBySessionID(sessionID uuid.UUID) (*models.FeedbackReportRecord, error) {
	var report models.FeedbackReportRecord
	if err := r.db.Where("session_id = ?", sessionID).First(&report).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("report not found")
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) UpdateStatus(sessionID uuid.UUID, status models.ReportStatus) error {
	result := r.db.Model(&models.FeedbackReportRecord{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update report status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("report not found")
	}
	return nil
}

func (r *reportRepository) UpdateResult(sessionID uuid.UUID, data *ReportUpdateData) error {
	result := r.db.Model(&models.FeedbackReportRecord{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":           models.ReportCompleted,
			"overall_score":    data.OverallScore,
			"no_data":          data.NoData,
			"category_scores":  data.CategoryScores,
			"strengths":        pq.StringArray(data.Strengths),
			"improvements":     pq.StringArray(data.Improvements),
			"duration_seconds": data.DurationSeconds,
			"completed_at":     data.CompletedAt,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update report result: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("report not found")
	}
	return nil
}

func (r *reportRepository) UpdateError(sessionID uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.FeedbackReportRecord{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":        models.ReportFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update report error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("report not found")
	}
	return nil
}

func (r *reportRepository) FindPendingJobs(limit int) ([]models.FeedbackReportRecord, error) {
	var reports []models.FeedbackReportRecord
	err := r.db.
		Where("status = ?", models.ReportQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending reports: %w", err)
	}
	return reports, nil
}

func (r *reportRepository) Stats() (*ReportStats, error) {
	var stats ReportStats
	err := r.db.Model(&models.FeedbackReportRecord{}).
		Select("COUNT(*) AS completed_count, COALESCE(AVG(overall_score), 0) AS average_score, COALESCE(SUM(duration_seconds), 0) AS total_duration_seconds").
		Where("status = ? AND no_data = false", models.ReportCompleted).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate report stats: %w", err)
	}
	return &stats, nil
}

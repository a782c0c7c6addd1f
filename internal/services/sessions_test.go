package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepview/interview-engine/internal/engine"
	"prepview/interview-engine/internal/models"
	"prepview/interview-engine/internal/repositories"
)

type fakeSessionRepo struct {
	created   *models.InterviewSession
	started   bool
	progress  []int
	completed bool
	results   []models.SessionResult
}

func (f *fakeSessionRepo) Create(session *models.InterviewSession) error {
	f.created = session
	return nil
}

func (f *fakeSessionRepo) FindByID(id uuid.UUID) (*models.InterviewSession, error) {
	if f.created == nil || f.created.ID != id {
		return nil, ErrSessionNotFound
	}
	return f.created, nil
}

func (f *fakeSessionRepo) MarkStarted(id uuid.UUID, startedAt time.Time) error {
	f.started = true
	return nil
}

func (f *fakeSessionRepo) UpdateProgress(id uuid.UUID, currentIndex, durationSeconds int) error {
	f.progress = append(f.progress, currentIndex)
	return nil
}

func (f *fakeSessionRepo) Complete(id uuid.UUID, durationSeconds int, completedAt time.Time, results []models.SessionResult) error {
	f.completed = true
	f.results = results
	if f.created != nil {
		f.created.Status = string(engine.StatusCompleted)
		f.created.DurationSeconds = durationSeconds
	}
	return nil
}

func (f *fakeSessionRepo) FindRecent(limit int) ([]models.InterviewSession, error) {
	if f.created == nil {
		return nil, nil
	}
	return []models.InterviewSession{*f.created}, nil
}

func (f *fakeSessionRepo) FindResults(sessionID uuid.UUID) ([]models.SessionResult, error) {
	return f.results, nil
}

func (f *fakeSessionRepo) UpdateResultScore(sessionID uuid.UUID, position, score int, feedback string) error {
	return nil
}

func (f *fakeSessionRepo) Count() (int64, error) { return 0, nil }

func (f *fakeSessionRepo) CountByStatus(status string) (int64, error) { return 0, nil }

type fakeReportRepo struct {
	created *models.FeedbackReportRecord
}

func (f *fakeReportRepo) Create(report *models.FeedbackReportRecord) error {
	f.created = report
	return nil
}

func (f *fakeReportRepo) FindBySessionID(sessionID uuid.UUID) (*models.FeedbackReportRecord, error) {
	return f.created, nil
}

func (f *fakeReportRepo) UpdateStatus(sessionID uuid.UUID, status models.ReportStatus) error {
	return nil
}

func (f *fakeReportRepo) UpdateResult(sessionID uuid.UUID, data *repositories.ReportUpdateData) error {
	return nil
}

func (f *fakeReportRepo) UpdateError(sessionID uuid.UUID, errorMsg string) error { return nil }

func (f *fakeReportRepo) FindPendingJobs(limit int) ([]models.FeedbackReportRecord, error) {
	return nil, nil
}

func (f *fakeReportRepo) Stats() (*repositories.ReportStats, error) {
	return &repositories.ReportStats{}, nil
}

type fakeWorker struct {
	enqueued []uuid.UUID
}

func (f *fakeWorker) Start(ctx context.Context) {}

func (f *fakeWorker) Stop() {}

func (f *fakeWorker) EnqueueSession(sessionID uuid.UUID) {
	f.enqueued = append(f.enqueued, sessionID)
}

func bankQuestions(n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			ID:         uuid.New(),
			Prompt:     "Question",
			Category:   string(engine.CategoryBehavioral),
			Difficulty: string(engine.DifficultyEasy),
		}
	}
	return questions
}

func newTestManager(t *testing.T) (SessionManager, *fakeSessionRepo, *fakeReportRepo, *fakeWorker) {
	t.Helper()
	sessionRepo := &fakeSessionRepo{}
	reportRepo := &fakeReportRepo{}
	worker := &fakeWorker{}
	return NewSessionManager(sessionRepo, reportRepo, worker, time.Second), sessionRepo, reportRepo, worker
}

func TestSessionManagerFullRun(t *testing.T) {
	manager, sessionRepo, reportRepo, worker := newTestManager(t)

	snap, err := manager.CreateSession("backend engineer", nil, bankQuestions(3))
	require.NoError(t, err)
	assert.Equal(t, string(engine.StatusScheduled), snap.Status)
	require.NotNil(t, sessionRepo.created)
	assert.Len(t, sessionRepo.created.QuestionIDs, 3)

	id, err := uuid.Parse(snap.ID)
	require.NoError(t, err)

	snap, err = manager.StartSession(id)
	require.NoError(t, err)
	assert.Equal(t, string(engine.StatusInProgress), snap.Status)
	assert.True(t, sessionRepo.started)

	snap, err = manager.SubmitResponse(id, "first answer")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.QuestionIndex)

	snap, err = manager.SkipQuestion(id)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.QuestionIndex)

	snap, err = manager.SubmitResponse(id, "last answer")
	require.NoError(t, err)
	assert.Equal(t, string(engine.StatusCompleted), snap.Status)

	assert.True(t, sessionRepo.completed)
	require.Len(t, sessionRepo.results, 3)
	assert.Equal(t, "first answer", sessionRepo.results[0].Response)
	assert.Empty(t, sessionRepo.results[1].Response)

	require.NotNil(t, reportRepo.created)
	assert.Equal(t, models.ReportQueued, reportRepo.created.Status)
	assert.Equal(t, []uuid.UUID{id}, worker.enqueued)

	// Evicted from the live map but still served from the store.
	snap, err = manager.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, string(engine.StatusCompleted), snap.Status)
}

func TestSessionManagerRejectsEmptyResponse(t *testing.T) {
	manager, sessionRepo, _, _ := newTestManager(t)

	snap, err := manager.CreateSession("backend engineer", nil, bankQuestions(2))
	require.NoError(t, err)
	id, err := uuid.Parse(snap.ID)
	require.NoError(t, err)

	_, err = manager.StartSession(id)
	require.NoError(t, err)

	_, err = manager.SubmitResponse(id, "   ")
	assert.ErrorIs(t, err, engine.ErrEmptyResponse)
	assert.Empty(t, sessionRepo.progress)
}

func TestSessionManagerRecordingBlocksSubmission(t *testing.T) {
	manager, _, _, _ := newTestManager(t)

	snap, err := manager.CreateSession("backend engineer", nil, bankQuestions(2))
	require.NoError(t, err)
	id, err := uuid.Parse(snap.ID)
	require.NoError(t, err)

	_, err = manager.StartSession(id)
	require.NoError(t, err)

	snap, err = manager.ToggleRecording(id)
	require.NoError(t, err)
	assert.True(t, snap.Recording)

	_, err = manager.SubmitResponse(id, "typed while recording")
	assert.ErrorIs(t, err, engine.ErrRecordingActive)
}

func TestSessionManagerUnknownSession(t *testing.T) {
	manager, _, _, _ := newTestManager(t)

	_, err := manager.StartSession(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"prepview/interview-engine/internal/engine"
	"prepview/interview-engine/internal/models"
	"prepview/interview-engine/internal/repositories"
)

// ErrSessionNotFound means no live or stored session has the given ID.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager owns every live session. Each session is driven by
// exactly one goroutine at a time: all operations on one session run
// under its lock, and a single ticker goroutine feeds one tick per
// second to every in-progress session. Completed sessions are handed to
// the scoring worker and evicted.
type SessionManager interface {
	Start(ctx context.Context)
	Stop()
	CreateSession(role string, resumeDocumentID *uuid.UUID, questions []models.Question) (*models.SessionSnapshot, error)
	StartSession(id uuid.UUID) (*models.SessionSnapshot, error)
	SubmitResponse(id uuid.UUID, text string) (*models.SessionSnapshot, error)
	SkipQuestion(id uuid.UUID) (*models.SessionSnapshot, error)
	ToggleRecording(id uuid.UUID) (*models.SessionSnapshot, error)
	Snapshot(id uuid.UUID) (*models.SessionSnapshot, error)
}

type activeSession struct {
	mu       sync.Mutex
	session  *engine.Session
	modelIDs []uuid.UUID // question row IDs in sequence order
}

type sessionManager struct {
	mu           sync.Mutex
	active       map[uuid.UUID]*activeSession
	sessionRepo  repositories.SessionRepository
	reportRepo   repositories.ReportRepository
	worker       Worker
	tickInterval time.Duration
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

func NewSessionManager(
	sessionRepo repositories.SessionRepository,
	reportRepo repositories.ReportRepository,
	worker Worker,
	tickInterval time.Duration,
) SessionManager {
	return &sessionManager{
		active:       make(map[uuid.UUID]*activeSession),
		sessionRepo:  sessionRepo,
		reportRepo:   reportRepo,
		worker:       worker,
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start launches the ticker goroutine driving session clocks.
func (m *sessionManager) Start(ctx context.Context) {
	m.wg.Add(1)
	go m.runTicker(ctx)
}

func (m *sessionManager) Stop() {
	close(m.stopChan)
	m.wg.Wait()
}

func (m *sessionManager) runTicker(ctx context.Context) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tickAll()
		}
	}
}

func (m *sessionManager) tickAll() {
	m.mu.Lock()
	sessions := make([]*activeSession, 0, len(m.active))
	for _, as := range m.active {
		sessions = append(sessions, as)
	}
	m.mu.Unlock()

	for _, as := range sessions {
		as.mu.Lock()
		as.session.Tick()
		as.mu.Unlock()
	}
}

// CreateSession builds the engine session and persists its scheduled
// record.
func (m *sessionManager) CreateSession(role string, resumeDocumentID *uuid.UUID, questions []models.Question) (*models.SessionSnapshot, error) {
	engineQuestions := make([]engine.Question, len(questions))
	questionIDs := make([]uuid.UUID, len(questions))
	rawIDs := make([]string, len(questions))
	for i, q := range questions {
		engineQuestions[i] = q.ToEngine()
		questionIDs[i] = q.ID
		rawIDs[i] = q.ID.String()
	}

	id := uuid.New()
	session, err := engine.NewSession(id.String(), engineQuestions)
	if err != nil {
		return nil, err
	}

	record := &models.InterviewSession{
		ID:               id,
		Role:             role,
		ResumeDocumentID: resumeDocumentID,
		Status:           string(engine.StatusScheduled),
		QuestionIDs:      rawIDs,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := m.sessionRepo.Create(record); err != nil {
		return nil, err
	}

	as := &activeSession{session: session, modelIDs: questionIDs}
	m.mu.Lock()
	m.active[id] = as
	m.mu.Unlock()

	return snapshot(session), nil
}

// StartSession moves a scheduled session to in-progress.
func (m *sessionManager) StartSession(id uuid.UUID) (*models.SessionSnapshot, error) {
	as, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	if err := as.session.Start(); err != nil {
		return nil, err
	}
	if err := m.sessionRepo.MarkStarted(id, time.Now()); err != nil {
		log.Printf("⚠️  Failed to persist session start: %v\n", err)
	}
	return snapshot(as.session), nil
}

// SubmitResponse routes the text through the collector (so recording
// mode rejects it) and submits it to the state machine. A completed
// session is persisted, queued for scoring and evicted.
func (m *sessionManager) SubmitResponse(id uuid.UUID, text string) (*models.SessionSnapshot, error) {
	as, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	if err := as.session.SetResponseText(text); err != nil {
		return nil, err
	}
	if err := as.session.Submit(as.session.ResponseText()); err != nil {
		return nil, err
	}

	m.afterAdvance(id, as)
	return snapshot(as.session), nil
}

// SkipQuestion records an unscored result for the current question.
func (m *sessionManager) SkipQuestion(id uuid.UUID) (*models.SessionSnapshot, error) {
	as, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	if err := as.session.Skip(); err != nil {
		return nil, err
	}

	m.afterAdvance(id, as)
	return snapshot(as.session), nil
}

func (m *sessionManager) ToggleRecording(id uuid.UUID) (*models.SessionSnapshot, error) {
	as, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	if _, err := as.session.ToggleRecording(); err != nil {
		return nil, err
	}
	return snapshot(as.session), nil
}

func (m *sessionManager) Snapshot(id uuid.UUID) (*models.SessionSnapshot, error) {
	as, err := m.lookup(id)
	if err == nil {
		as.mu.Lock()
		defer as.mu.Unlock()
		return snapshot(as.session), nil
	}

	// Not live anymore: serve the persisted record.
	record, repoErr := m.sessionRepo.FindByID(id)
	if repoErr != nil {
		return nil, repoErr
	}
	return &models.SessionSnapshot{
		ID:             record.ID.String(),
		Status:         record.Status,
		QuestionIndex:  record.CurrentIndex,
		TotalQuestions: len(record.QuestionIDs),
		Progress:       float64(record.CurrentIndex) / float64(len(record.QuestionIDs)),
		ElapsedSeconds: record.DurationSeconds,
		ElapsedDisplay: engine.FormatElapsed(record.DurationSeconds),
	}, nil
}

func (m *sessionManager) lookup(id uuid.UUID) (*activeSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	as, ok := m.active[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return as, nil
}

// afterAdvance persists progress, and on completion stores the results,
// queues scoring and evicts the session. Called with the session lock
// held.
func (m *sessionManager) afterAdvance(id uuid.UUID, as *activeSession) {
	s := as.session
	if s.Status() != engine.StatusCompleted {
		if err := m.sessionRepo.UpdateProgress(id, s.Index(), s.Elapsed()); err != nil {
			log.Printf("⚠️  Failed to persist session progress: %v\n", err)
		}
		return
	}

	completedAt := time.Now()
	results := s.Results()
	rows := make([]models.SessionResult, len(results))
	for i, r := range results {
		rows[i] = models.SessionResult{
			QuestionID: as.modelIDs[i],
			Response:   r.Response,
		}
	}

	if err := m.sessionRepo.Complete(id, s.Elapsed(), completedAt, rows); err != nil {
		log.Printf("❌ Failed to persist completed session %s: %v\n", id, err)
		return
	}

	report := &models.FeedbackReportRecord{
		ID:        uuid.New(),
		SessionID: id,
		Status:    models.ReportQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := m.reportRepo.Create(report); err != nil {
		log.Printf("❌ Failed to create report record for session %s: %v\n", id, err)
		return
	}

	m.mu.Lock()
	delete(m.active, id)
	m.mu.Unlock()

	if m.worker != nil {
		m.worker.EnqueueSession(id)
	}
}

func snapshot(s *engine.Session) *models.SessionSnapshot {
	snap := &models.SessionSnapshot{
		ID:             s.ID(),
		Status:         string(s.Status()),
		QuestionIndex:  s.Index(),
		TotalQuestions: s.Total(),
		Progress:       s.Progress(),
		ElapsedSeconds: s.Elapsed(),
		ElapsedDisplay: engine.FormatElapsed(s.Elapsed()),
		Recording:      s.Recording(),
	}
	if q, ok := s.CurrentQuestion(); ok {
		snap.CurrentQuestion = &models.QuestionView{
			ID:         q.ID,
			Prompt:     q.Prompt,
			Category:   string(q.Category),
			Difficulty: string(q.Difficulty),
		}
	}
	return snap
}

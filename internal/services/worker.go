package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"prepview/interview-engine/internal/repositories"
)

// Worker drains the queue of completed sessions awaiting scoring. A
// poller re-enqueues queued reports so sessions completed before a
// restart still get scored.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueSession(sessionID uuid.UUID)
}

type worker struct {
	reportRepo      repositories.ReportRepository
	feedbackService FeedbackService
	jobQueue        chan uuid.UUID
	concurrency     int
	pollInterval    time.Duration
	wg              sync.WaitGroup
	stopChan        chan struct{}
}

func NewWorker(
	reportRepo repositories.ReportRepository,
	feedbackService FeedbackService,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	return &worker{
		reportRepo:      reportRepo,
		feedbackService: feedbackService,
		jobQueue:        make(chan uuid.UUID, 100),
		concurrency:     concurrency,
		pollInterval:    pollInterval,
		stopChan:        make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting scoring worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Start polling for queued reports
	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping scoring worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Scoring worker stopped")
}

// EnqueueSession implements Worker.
func (w *worker) EnqueueSession(sessionID uuid.UUID) {
	select {
	case w.jobQueue <- sessionID:
		log.Printf("📥 Session %s enqueued for scoring\n", sessionID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue session %s\n", sessionID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case sessionID := <-w.jobQueue:
			log.Printf("👷 Worker #%d scoring session %s\n", workerID, sessionID)
			if err := w.feedbackService.ScoreSession(ctx, sessionID); err != nil {
				log.Printf("❌ Worker #%d failed to score session %s: %v\n", workerID, sessionID, err)
			} else {
				log.Printf("✅ Worker #%d finished session %s\n", workerID, sessionID)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.reportRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending reports: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d sessions awaiting scoring\n", len(pending))
			}

			for _, report := range pending {
				w.EnqueueSession(report.SessionID)
			}
		}
	}
}

package engine

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// QuestionResult is the recorded outcome for one question. Response is
// empty and Score is nil when the question was skipped. Score is filled
// in later by the scoring collaborator.
type QuestionResult struct {
	QuestionID string
	Response   string
	Score      *int
	Feedback   string
}

// Skipped reports whether the result was recorded without a response.
func (r QuestionResult) Skipped() bool {
	return r.Response == ""
}

// Session is one end-to-end interview attempt. It composes the clock,
// the sequencer and the collector into a single lifecycle:
//
//	scheduled -> in-progress -> completed
//
// Transitions are one-directional and fail-atomic: a rejected operation
// leaves every field untouched. The session does no I/O and no locking;
// it is owned by exactly one caller at a time.
type Session struct {
	id        string
	status    Status
	clock     Clock
	sequencer Sequencer
	collector Collector
	results   []QuestionResult
}

// NewSession creates a session in scheduled state seeded with a fixed,
// non-empty question list.
func NewSession(id string, questions []Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionList
	}
	return &Session{
		id:        id,
		status:    StatusScheduled,
		sequencer: newSequencer(questions),
	}, nil
}

// Restore rebuilds a completed session from persisted data, one result
// per question in order. It is the entry point for the persistence
// collaborator; a live session can never go back to an earlier state.
func Restore(id string, questions []Question, results []QuestionResult, elapsedSeconds int) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionList
	}
	if len(results) != len(questions) {
		return nil, fmt.Errorf("expected %d results, got %d", len(questions), len(results))
	}
	if elapsedSeconds < 0 {
		return nil, fmt.Errorf("negative elapsed time: %d", elapsedSeconds)
	}
	s := &Session{
		id:        id,
		status:    StatusCompleted,
		sequencer: newSequencer(questions),
	}
	for range questions {
		s.sequencer.Advance()
	}
	s.results = make([]QuestionResult, len(results))
	copy(s.results, results)
	s.clock.elapsed = elapsedSeconds
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Status() Status {
	return s.status
}

// Start moves the session from scheduled to in-progress and starts the
// clock.
func (s *Session) Start() error {
	if s.status != StatusScheduled {
		return ErrInvalidTransition
	}
	s.status = StatusInProgress
	s.clock.Start()
	return nil
}

// Submit records the current question's response and advances. The
// trimmed text must be non-empty. When the last question is answered the
// session transitions to completed and the clock freezes.
func (s *Session) Submit(text string) error {
	if s.status != StatusInProgress {
		return ErrInvalidTransition
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyResponse
	}
	question, ok := s.sequencer.Current()
	if !ok {
		return ErrInvalidTransition
	}
	s.results = append(s.results, QuestionResult{
		QuestionID: question.ID,
		Response:   trimmed,
	})
	s.collector.Reset()
	if s.sequencer.Advance() {
		s.complete()
	}
	return nil
}

// Skip records an unscored result for the current question and advances,
// with the same completion handling as Submit.
func (s *Session) Skip() error {
	if s.status != StatusInProgress {
		return ErrInvalidTransition
	}
	question, ok := s.sequencer.Current()
	if !ok {
		return ErrInvalidTransition
	}
	s.results = append(s.results, QuestionResult{QuestionID: question.ID})
	s.collector.Reset()
	if s.sequencer.Skip() {
		s.complete()
	}
	return nil
}

func (s *Session) complete() {
	s.status = StatusCompleted
	s.clock.Freeze()
}

// Tick advances the clock by one second. Ticks outside in-progress are
// no-ops.
func (s *Session) Tick() {
	if s.status == StatusInProgress {
		s.clock.Tick()
	}
}

func (s *Session) Elapsed() int {
	return s.clock.Elapsed()
}

// Progress returns index/total in [0,1]. It is recomputed from the
// sequencer on every call; the sequence length is the single source of
// truth.
func (s *Session) Progress() float64 {
	return float64(s.sequencer.Index()) / float64(s.sequencer.Len())
}

func (s *Session) Index() int {
	return s.sequencer.Index()
}

func (s *Session) Total() int {
	return s.sequencer.Len()
}

// CurrentQuestion returns the question awaiting a response. ok is false
// once the session is completed.
func (s *Session) CurrentQuestion() (Question, bool) {
	return s.sequencer.Current()
}

func (s *Session) Questions() []Question {
	return s.sequencer.Questions()
}

// Results returns a copy of the recorded results in question order.
func (s *Session) Results() []QuestionResult {
	rs := make([]QuestionResult, len(s.results))
	copy(rs, s.results)
	return rs
}

// SetResponseText updates the pending response draft. Rejected while
// recording is active.
func (s *Session) SetResponseText(text string) error {
	if s.status != StatusInProgress {
		return ErrInvalidTransition
	}
	return s.collector.SetText(text)
}

func (s *Session) ResponseText() string {
	return s.collector.Text()
}

// ToggleRecording flips voice-capture mode and returns the new state.
func (s *Session) ToggleRecording() (bool, error) {
	if s.status != StatusInProgress {
		return false, ErrInvalidTransition
	}
	return s.collector.ToggleRecording(), nil
}

func (s *Session) Recording() bool {
	return s.collector.Recording()
}

// ApplyScore attaches the scoring collaborator's verdict to the result
// at position i. Only completed sessions can be scored, and a skipped
// result stays unscored.
func (s *Session) ApplyScore(i int, score int, feedback string) error {
	if s.status != StatusCompleted {
		return ErrSessionNotCompleted
	}
	if i < 0 || i >= len(s.results) {
		return fmt.Errorf("result index %d out of range [0,%d)", i, len(s.results))
	}
	if s.results[i].Skipped() {
		return fmt.Errorf("result %d was skipped and cannot be scored", i)
	}
	if score < 0 || score > 100 {
		return fmt.Errorf("score %d out of range [0,100]", score)
	}
	s.results[i].Score = &score
	s.results[i].Feedback = feedback
	return nil
}

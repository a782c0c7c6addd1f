package engine

// Sequencer walks an ordered, immutable question list. The index starts
// at 0, only moves forward and saturates at len(questions).
type Sequencer struct {
	questions []Question
	index     int
}

func newSequencer(questions []Question) Sequencer {
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return Sequencer{questions: qs}
}

// Current returns the question at the current index. ok is false once
// the sequencer is exhausted.
func (s *Sequencer) Current() (Question, bool) {
	if s.index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Advance moves to the next question and reports whether the sequencer
// is now exhausted. Advancing past the end is a no-op, not an error: it
// signals the caller to finalize the session.
func (s *Sequencer) Advance() bool {
	if s.index < len(s.questions) {
		s.index++
	}
	return s.index == len(s.questions)
}

// Skip is identical to Advance for indexing purposes. The caller records
// an unscored result for the skipped question.
func (s *Sequencer) Skip() bool {
	return s.Advance()
}

func (s *Sequencer) Index() int {
	return s.index
}

func (s *Sequencer) Len() int {
	return len(s.questions)
}

// Questions returns a copy of the ordered question list.
func (s *Sequencer) Questions() []Question {
	qs := make([]Question, len(s.questions))
	copy(qs, s.questions)
	return qs
}

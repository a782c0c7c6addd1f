package engine

import (
	"math"
	"time"
)

// FeedbackReport is the immutable summary assembled once a session
// completes and its results are scored. Categories with no scored
// results are omitted from CategoryScores rather than reported as 0.
type FeedbackReport struct {
	SessionID       string
	OverallScore    int
	NoData          bool
	CategoryScores  map[Category]int
	Strengths       []string
	Improvements    []string
	DurationSeconds int
	CompletedAt     time.Time
	Results         []QuestionResult
}

// BuildFeedbackReport aggregates a completed session's scored results
// into category averages and an overall score. Strengths and
// improvements come from the scoring collaborator and are carried
// through unchanged. NoData is set when not a single result was scored,
// so the caller can say "no data" instead of implying a failing 0.
func BuildFeedbackReport(s *Session, strengths, improvements []string, completedAt time.Time) (*FeedbackReport, error) {
	if s.Status() != StatusCompleted {
		return nil, ErrSessionNotCompleted
	}

	categoryOf := make(map[string]Category)
	for _, q := range s.Questions() {
		categoryOf[q.ID] = q.Category
	}

	sums := make(map[Category]int)
	counts := make(map[Category]int)
	total, scored := 0, 0
	results := s.Results()
	for _, r := range results {
		if r.Score == nil {
			continue
		}
		c := categoryOf[r.QuestionID]
		sums[c] += *r.Score
		counts[c]++
		total += *r.Score
		scored++
	}

	categoryScores := make(map[Category]int, len(sums))
	for c, sum := range sums {
		categoryScores[c] = roundHalfUp(float64(sum) / float64(counts[c]))
	}

	overall := 0
	if scored > 0 {
		overall = roundHalfUp(float64(total) / float64(scored))
	}

	return &FeedbackReport{
		SessionID:       s.ID(),
		OverallScore:    overall,
		NoData:          scored == 0,
		CategoryScores:  categoryScores,
		Strengths:       strengths,
		Improvements:    improvements,
		DurationSeconds: s.Elapsed(),
		CompletedAt:     completedAt,
		Results:         results,
	}, nil
}

// roundHalfUp rounds to the nearest integer with ties going up, so the
// same inputs always produce the same displayed value.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

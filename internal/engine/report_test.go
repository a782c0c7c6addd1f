package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedSession(t *testing.T, questions []Question, answers []string) *Session {
	t.Helper()
	s, err := NewSession("sess-r", questions)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	for _, a := range answers {
		if a == "" {
			require.NoError(t, s.Skip())
		} else {
			require.NoError(t, s.Submit(a))
		}
	}
	require.Equal(t, StatusCompleted, s.Status())
	return s
}

func TestBuildFeedbackReportRequiresCompletion(t *testing.T) {
	s := startedSession(t, 2)
	_, err := BuildFeedbackReport(s, nil, nil, time.Now())
	assert.ErrorIs(t, err, ErrSessionNotCompleted)
}

func TestBuildFeedbackReportAveragesByCategory(t *testing.T) {
	questions := []Question{
		{ID: "q1", Prompt: "p1", Category: CategoryBehavioral, Difficulty: DifficultyEasy},
		{ID: "q2", Prompt: "p2", Category: CategoryTechnical, Difficulty: DifficultyHard},
		{ID: "q3", Prompt: "p3", Category: CategoryBehavioral, Difficulty: DifficultyMedium},
	}
	// The technical question is skipped: its category must be omitted,
	// not reported as 0.
	s := completedSession(t, questions, []string{"first", "", "third"})
	require.NoError(t, s.ApplyScore(0, 85, "solid"))
	require.NoError(t, s.ApplyScore(2, 75, "thin"))

	completedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	report, err := BuildFeedbackReport(s, []string{"clear answers"}, []string{"more detail"}, completedAt)
	require.NoError(t, err)

	assert.Equal(t, "sess-r", report.SessionID)
	assert.Equal(t, 80, report.OverallScore)
	assert.False(t, report.NoData)
	assert.Equal(t, map[Category]int{CategoryBehavioral: 80}, report.CategoryScores)
	assert.NotContains(t, report.CategoryScores, CategoryTechnical)
	assert.Equal(t, []string{"clear answers"}, report.Strengths)
	assert.Equal(t, []string{"more detail"}, report.Improvements)
	assert.Equal(t, completedAt, report.CompletedAt)
	assert.Len(t, report.Results, 3)
}

func TestBuildFeedbackReportAllSkipped(t *testing.T) {
	s := completedSession(t, testQuestions(3), []string{"", "", ""})

	report, err := BuildFeedbackReport(s, nil, nil, time.Now())
	require.NoError(t, err)

	assert.True(t, report.NoData)
	assert.Equal(t, 0, report.OverallScore)
	assert.Empty(t, report.CategoryScores)
}

func TestBuildFeedbackReportRoundsHalfUp(t *testing.T) {
	questions := []Question{
		{ID: "q1", Prompt: "p1", Category: CategoryMixed, Difficulty: DifficultyEasy},
		{ID: "q2", Prompt: "p2", Category: CategoryMixed, Difficulty: DifficultyEasy},
	}
	s := completedSession(t, questions, []string{"one", "two"})
	require.NoError(t, s.ApplyScore(0, 84, ""))
	require.NoError(t, s.ApplyScore(1, 85, ""))

	report, err := BuildFeedbackReport(s, nil, nil, time.Now())
	require.NoError(t, err)

	// mean 84.5 rounds up, never banker's rounding
	assert.Equal(t, 85, report.OverallScore)
	assert.Equal(t, 85, report.CategoryScores[CategoryMixed])
}

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]int{
		79.4: 79,
		79.5: 80,
		80.0: 80,
		0.0:  0,
		0.5:  1,
	}
	for in, want := range cases {
		assert.Equal(t, want, roundHalfUp(in), "roundHalfUp(%v)", in)
	}
}

func TestScoreTierThresholds(t *testing.T) {
	assert.Equal(t, TierHigh, ScoreTier(100))
	assert.Equal(t, TierHigh, ScoreTier(80))
	assert.Equal(t, TierMedium, ScoreTier(79))
	assert.Equal(t, TierMedium, ScoreTier(60))
	assert.Equal(t, TierLow, ScoreTier(59))
	assert.Equal(t, TierLow, ScoreTier(0))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00", FormatElapsed(0))
	assert.Equal(t, "00:59", FormatElapsed(59))
	assert.Equal(t, "02:05", FormatElapsed(125))
	assert.Equal(t, "45:00", FormatElapsed(2700))
}

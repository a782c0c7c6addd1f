package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, n int) *Session {
	t.Helper()
	s, err := NewSession("sess-1", testQuestions(n))
	require.NoError(t, err)
	return s
}

func startedSession(t *testing.T, n int) *Session {
	t.Helper()
	s := newTestSession(t, n)
	require.NoError(t, s.Start())
	return s
}

func TestNewSessionRejectsEmptyQuestionList(t *testing.T) {
	_, err := NewSession("sess-1", nil)
	assert.ErrorIs(t, err, ErrEmptyQuestionList)
}

func TestStartMovesToInProgress(t *testing.T) {
	s := newTestSession(t, 3)
	assert.Equal(t, StatusScheduled, s.Status())

	require.NoError(t, s.Start())
	assert.Equal(t, StatusInProgress, s.Status())
	assert.Equal(t, 0, s.Index())

	// A session cannot be started twice.
	assert.ErrorIs(t, s.Start(), ErrInvalidTransition)
}

func TestSubmitRequiresInProgress(t *testing.T) {
	s := newTestSession(t, 2)
	assert.ErrorIs(t, s.Submit("answer"), ErrInvalidTransition)
	assert.ErrorIs(t, s.Skip(), ErrInvalidTransition)
	assert.Empty(t, s.Results())
}

func TestSubmitRejectsBlankText(t *testing.T) {
	s := startedSession(t, 2)

	for _, text := range []string{"", "   ", "\n\t "} {
		err := s.Submit(text)
		assert.ErrorIs(t, err, ErrEmptyResponse)
	}

	// Nothing moved: index, status and results are untouched.
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, StatusInProgress, s.Status())
	assert.Empty(t, s.Results())
}

func TestSubmitRecordsTrimmedResponseAndAdvances(t *testing.T) {
	s := startedSession(t, 2)

	require.NoError(t, s.Submit("  my answer  "))
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, StatusInProgress, s.Status())

	results := s.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].QuestionID)
	assert.Equal(t, "my answer", results[0].Response)
	assert.Nil(t, results[0].Score)
}

func TestExactlyNSubmitsCompleteTheSession(t *testing.T) {
	const n = 4
	s := startedSession(t, n)

	for i := 0; i < n; i++ {
		s.Tick()
		require.NoError(t, s.Submit("answer"))
	}

	assert.Equal(t, StatusCompleted, s.Status())
	assert.Equal(t, n, s.Index())
	assert.Len(t, s.Results(), n)

	// The clock froze on completion.
	elapsed := s.Elapsed()
	s.Tick()
	assert.Equal(t, elapsed, s.Elapsed())

	// completed is terminal.
	assert.ErrorIs(t, s.Submit("late"), ErrInvalidTransition)
	assert.ErrorIs(t, s.Skip(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Start(), ErrInvalidTransition)
}

func TestSkipRecordsUnscoredResult(t *testing.T) {
	s := startedSession(t, 1)

	require.NoError(t, s.Skip())
	assert.Equal(t, StatusCompleted, s.Status())

	results := s.Results()
	require.Len(t, results, 1)
	assert.True(t, results[0].Skipped())
	assert.Empty(t, results[0].Response)
	assert.Nil(t, results[0].Score)
}

func TestProgressTracksSequenceLength(t *testing.T) {
	s := startedSession(t, 5)
	assert.InDelta(t, 0.0, s.Progress(), 1e-9)

	require.NoError(t, s.Submit("one"))
	require.NoError(t, s.Submit("two"))
	require.NoError(t, s.Skip())
	assert.InDelta(t, 0.6, s.Progress(), 1e-9)

	require.NoError(t, s.Submit("four"))
	require.NoError(t, s.Submit("five"))
	assert.InDelta(t, 1.0, s.Progress(), 1e-9)
}

func TestTickOnlyCountsWhileInProgress(t *testing.T) {
	s := newTestSession(t, 1)

	s.Tick()
	assert.Equal(t, 0, s.Elapsed())

	require.NoError(t, s.Start())
	s.Tick()
	s.Tick()
	assert.Equal(t, 2, s.Elapsed())

	require.NoError(t, s.Submit("done"))
	s.Tick()
	assert.Equal(t, 2, s.Elapsed())
}

func TestSubmitClearsDraftAndRecording(t *testing.T) {
	s := startedSession(t, 2)

	require.NoError(t, s.SetResponseText("draft"))
	assert.Equal(t, "draft", s.ResponseText())

	require.NoError(t, s.Submit("final"))
	assert.Equal(t, "", s.ResponseText())
	assert.False(t, s.Recording())
}

func TestRecordingBlocksTextEdits(t *testing.T) {
	s := startedSession(t, 2)

	on, err := s.ToggleRecording()
	require.NoError(t, err)
	assert.True(t, on)

	assert.ErrorIs(t, s.SetResponseText("typed"), ErrRecordingActive)

	off, err := s.ToggleRecording()
	require.NoError(t, err)
	assert.False(t, off)
	assert.NoError(t, s.SetResponseText("typed"))
}

func TestApplyScore(t *testing.T) {
	s := startedSession(t, 2)
	require.NoError(t, s.Submit("answered"))

	// Scoring is only valid once the session completed.
	assert.ErrorIs(t, s.ApplyScore(0, 90, "good"), ErrSessionNotCompleted)

	require.NoError(t, s.Skip())
	require.NoError(t, s.ApplyScore(0, 90, "good"))

	results := s.Results()
	require.NotNil(t, results[0].Score)
	assert.Equal(t, 90, *results[0].Score)
	assert.Equal(t, "good", results[0].Feedback)

	// Skipped results stay unscored; bounds are enforced.
	assert.Error(t, s.ApplyScore(1, 50, ""))
	assert.Error(t, s.ApplyScore(0, 101, ""))
	assert.Error(t, s.ApplyScore(5, 50, ""))
}

func TestRestoreRebuildsCompletedSession(t *testing.T) {
	questions := testQuestions(2)
	results := []QuestionResult{
		{QuestionID: "a", Response: "answered"},
		{QuestionID: "b"},
	}

	s, err := Restore("sess-9", questions, results, 120)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s.Status())
	assert.Equal(t, 2, s.Index())
	assert.Equal(t, 120, s.Elapsed())
	assert.InDelta(t, 1.0, s.Progress(), 1e-9)

	_, err = Restore("sess-9", questions, results[:1], 120)
	assert.Error(t, err)
	_, err = Restore("sess-9", nil, nil, 0)
	assert.ErrorIs(t, err, ErrEmptyQuestionList)
}

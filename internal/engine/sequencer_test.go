package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			ID:         string(rune('a' + i)),
			Prompt:     "question",
			Category:   CategoryBehavioral,
			Difficulty: DifficultyMedium,
		}
	}
	return qs
}

func TestSequencerWalksInOrder(t *testing.T) {
	seq := newSequencer(testQuestions(3))

	q, ok := seq.Current()
	require.True(t, ok)
	assert.Equal(t, "a", q.ID)

	assert.False(t, seq.Advance())
	q, ok = seq.Current()
	require.True(t, ok)
	assert.Equal(t, "b", q.ID)

	assert.False(t, seq.Advance())
	assert.True(t, seq.Advance())
	assert.Equal(t, 3, seq.Index())
}

func TestSequencerExhaustedIsTerminal(t *testing.T) {
	seq := newSequencer(testQuestions(1))

	assert.True(t, seq.Advance())
	_, ok := seq.Current()
	assert.False(t, ok)

	// Advancing or skipping past the end saturates, never errors.
	assert.True(t, seq.Advance())
	assert.True(t, seq.Skip())
	assert.Equal(t, 1, seq.Index())
}

func TestSequencerCopiesInput(t *testing.T) {
	qs := testQuestions(2)
	seq := newSequencer(qs)

	qs[0].Prompt = "mutated"
	q, _ := seq.Current()
	assert.Equal(t, "question", q.Prompt)
}

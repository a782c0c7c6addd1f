package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorSetTextRejectedWhileRecording(t *testing.T) {
	var c Collector
	require.NoError(t, c.SetText("draft"))
	assert.Equal(t, "draft", c.Text())

	recording := c.ToggleRecording()
	assert.True(t, recording)
	// Entering recording mode discards the pending text.
	assert.Equal(t, "", c.Text())

	err := c.SetText("typed while recording")
	assert.ErrorIs(t, err, ErrRecordingActive)
	assert.Equal(t, "", c.Text())

	assert.False(t, c.ToggleRecording())
	require.NoError(t, c.SetText("typed after recording"))
}

func TestCollectorReset(t *testing.T) {
	var c Collector
	c.ToggleRecording()

	c.Reset()
	assert.False(t, c.Recording())
	assert.Equal(t, "", c.Text())
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockStartsFromZero(t *testing.T) {
	var c Clock
	assert.Equal(t, 0, c.Elapsed())

	c.Start()
	assert.Equal(t, 0, c.Elapsed())
}

func TestClockTicksOnlyWhileRunning(t *testing.T) {
	var c Clock

	// Ticks before Start are ignored.
	c.Tick()
	c.Tick()
	assert.Equal(t, 0, c.Elapsed())

	c.Start()
	c.Tick()
	c.Tick()
	c.Tick()
	assert.Equal(t, 3, c.Elapsed())
}

func TestClockFreezeIsIdempotent(t *testing.T) {
	var c Clock
	c.Start()
	c.Tick()

	c.Freeze()
	c.Tick()
	assert.Equal(t, 1, c.Elapsed())

	c.Freeze()
	c.Tick()
	assert.Equal(t, 1, c.Elapsed())
}

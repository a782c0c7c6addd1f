package engine

// Clock is a monotonic elapsed-seconds counter. The owner drives it by
// calling Tick once per second while the session is in progress. The
// counter never decreases.
type Clock struct {
	running bool
	elapsed int
}

// Start begins counting from zero.
func (c *Clock) Start() {
	c.running = true
	c.elapsed = 0
}

// Tick increments the counter by exactly one second. Ticks before Start
// or after Freeze are ignored.
func (c *Clock) Tick() {
	if c.running {
		c.elapsed++
	}
}

// Elapsed returns the current count in seconds.
func (c *Clock) Elapsed() int {
	return c.elapsed
}

// Freeze stops future increments. Freezing twice is harmless.
func (c *Clock) Freeze() {
	c.running = false
}

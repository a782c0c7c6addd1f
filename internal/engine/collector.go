package engine

// Collector holds the in-progress response text and the voice-recording
// flag. Text editing and recording are mutually exclusive: entering
// recording mode clears the pending text, and SetText is rejected until
// recording stops.
type Collector struct {
	text      string
	recording bool
}

// SetText replaces the pending response text. Returns ErrRecordingActive
// while voice recording is on.
func (c *Collector) SetText(s string) error {
	if c.recording {
		return ErrRecordingActive
	}
	c.text = s
	return nil
}

func (c *Collector) Text() string {
	return c.text
}

// ToggleRecording flips voice-capture mode. Entering recording mode
// discards any pending text.
func (c *Collector) ToggleRecording() bool {
	c.recording = !c.recording
	if c.recording {
		c.text = ""
	}
	return c.recording
}

func (c *Collector) Recording() bool {
	return c.recording
}

// Reset clears pending text and exits recording mode. Called after every
// submit or skip.
func (c *Collector) Reset() {
	c.text = ""
	c.recording = false
}

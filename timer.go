package kestrel

// Timer measures frame deltas against a Clock. While paused the delta is zero
// and elapsed time stops advancing.
type Timer struct {
	clock     Clock
	start     float64
	lastFrame float64
	delta     float64
	pausedAt  float64
	paused    bool
}

// NewTimer creates a running timer reading from clock.
func NewTimer(clock Clock) *Timer {
	t := &Timer{clock: clock}
	t.Start()
	return t
}

// Start restarts the timer from the current clock reading.
func (t *Timer) Start() {
	now := t.clock.Now()
	t.start = now
	t.lastFrame = now
	t.delta = 0
	t.pausedAt = 0
	t.paused = false
}

// Update samples the clock and records the time since the previous Update.
func (t *Timer) Update() {
	if t.paused {
		t.delta = 0
		return
	}
	now := t.clock.Now()
	t.delta = now - t.lastFrame
	t.lastFrame = now
}

// Pause freezes the timer. No-op when already paused.
func (t *Timer) Pause() {
	if t.paused {
		return
	}
	t.pausedAt = t.clock.Now()
	t.paused = true
}

// Resume continues a paused timer. The paused interval is excluded from both
// the next delta and the elapsed time.
func (t *Timer) Resume() {
	if !t.paused {
		return
	}
	gap := t.clock.Now() - t.pausedAt
	t.lastFrame += gap
	t.start += gap
	t.paused = false
}

// Toggle pauses a running timer or resumes a paused one.
func (t *Timer) Toggle() {
	if t.paused {
		t.Resume()
		return
	}
	t.Pause()
}

// Paused reports whether the timer is paused.
func (t *Timer) Paused() bool { return t.paused }

// Delta returns the seconds between the last two Updates.
func (t *Timer) Delta() float64 { return t.delta }

// Elapsed returns the running time in seconds since Start.
func (t *Timer) Elapsed() float64 {
	if t.paused {
		return t.pausedAt - t.start
	}
	return t.clock.Now() - t.start
}

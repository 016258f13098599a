package kestrel

// fpsSampleInterval is how often, in seconds, the frame rate readout
// refreshes.
const fpsSampleInterval = 0.5

// fpsMeter averages frame deltas over fpsSampleInterval. It only sees timer
// deltas, so the reading holds its last value while the scene is paused.
type fpsMeter struct {
	acc    float64
	frames int
	fps    float64
}

func (m *fpsMeter) tick(dt float64) {
	if dt <= 0 {
		return
	}
	m.acc += dt
	m.frames++
	if m.acc < fpsSampleInterval {
		return
	}
	m.fps = float64(m.frames) / m.acc
	m.acc, m.frames = 0, 0
}

// FPS returns the frame rate measured over the last complete sample.
func (m *fpsMeter) FPS() float64 { return m.fps }

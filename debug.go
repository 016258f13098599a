package kestrel

import (
	"fmt"
	"math"
)

// debugChecks enables hierarchy sanity checks in entity tree operations.
// Process-wide, since entities may not belong to a scene yet.
var debugChecks bool

// SetDebugChecks enables or disables hierarchy sanity checks. When enabled,
// tree operations on destroyed entities panic and very deep or very wide
// trees are logged as warnings.
func SetDebugChecks(enabled bool) {
	debugChecks = enabled
}

// debugCheckDisposed panics with a descriptive message when a destroyed
// entity is used in a tree operation.
func debugCheckDisposed(e *Entity, op string) {
	if e.disposed {
		panic(fmt.Sprintf("kestrel debug: %s on destroyed entity %q (ID %d)", op, e.Name, e.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Entity) {
	depth := 0
	for p := e; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		e.logger().Warn("tree depth exceeds threshold",
			"entity", e.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if an entity has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(e *Entity) {
	if len(e.children) > debugMaxChildCount {
		e.logger().Warn("child count exceeds threshold",
			"entity", e.Name, "children", len(e.children), "threshold", debugMaxChildCount)
	}
}

// Stats is a snapshot of per-frame scene counters.
type Stats struct {
	Frame    uint64
	Objects  int
	Rendered int
	Removed  int
	Indexed  int
	Layers   []int // entity count per layer
	Elapsed  float64
	Delta    float64
	FPS      float64
	Paused   bool
}

// Stats returns the current frame counters.
func (s *Scene) Stats() Stats {
	st := Stats{
		Frame:    s.frame,
		Objects:  len(s.gameObjects),
		Rendered: s.objectsRendered,
		Removed:  s.numRemoved,
		Indexed:  s.index.Count(),
		Layers:   make([]int, len(s.layers)),
		Elapsed:  s.timer.Elapsed(),
		Delta:    s.timer.Delta(),
		FPS:      s.fps.FPS(),
		Paused:   s.timer.Paused(),
	}
	for i, l := range s.layers {
		st.Layers[i] = len(l)
	}
	return st
}

// drawStats draws the stats panel and the per-layer counts, and logs the
// same counters at debug level.
func (s *Scene) drawStats(r Renderer) {
	st := s.Stats()
	const x, y, lh = 15.0, 18.0, 18.0

	panel := Rect{X: 10, Y: 10, Width: 220, Height: 100}
	r.DrawRect(panel, ColorBlack)
	r.DrawRect(panel, ColorSkyBlue.Fade(0.5))
	r.DrawRectLines(panel, 1, ColorBlue)

	r.DrawText(fmt.Sprintf("%d FPS", int(math.Round(st.FPS))), x, y, 18, ColorLime)
	r.DrawText(fmt.Sprintf("Objects: %d/%d", st.Objects, st.Rendered), x, y+lh, 18, ColorLime)
	r.DrawText(fmt.Sprintf("Elapsed time: %.2f", st.Elapsed), x, y+2*lh, 18, ColorLime)
	r.DrawText(fmt.Sprintf("Delta time: %.2f", st.Delta), x, y+3*lh, 18, ColorLime)
	r.DrawText(fmt.Sprintf("Indexed: %d", st.Indexed), x, y+4*lh, 18, ColorLime)

	_, sh := r.ScreenSize()
	row := 0
	for i, n := range st.Layers {
		if n == 0 {
			continue
		}
		ly := float64(sh) - 20 - float64(row)*22
		r.DrawText(fmt.Sprintf("Layer [%d]  Objects [%d]", i, n), 28, ly, 10, ColorLime)
		row++
	}

	s.log.Debug("frame stats",
		"frame", st.Frame,
		"objects", st.Objects,
		"rendered", st.Rendered,
		"indexed", st.Indexed,
		"removed", st.Removed,
		"delta", st.Delta,
		"fps", st.FPS)
}

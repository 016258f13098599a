package kestrel

import (
	"bytes"
	"slices"
	"strings"
	"testing"
)

// captureLogger swaps the package logger for one writing warnings to a
// buffer and restores it on cleanup.
func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(NewLogger("warn", "text", &buf))
	t.Cleanup(func() { SetLogger(prev) })
	return &buf
}

func withDebugChecks(t *testing.T) {
	t.Helper()
	SetDebugChecks(true)
	t.Cleanup(func() { SetDebugChecks(false) })
}

func TestDebugChecksWarnDeepTree(t *testing.T) {
	withDebugChecks(t)
	buf := captureLogger(t)

	e := NewEntity("e0")
	for range debugMaxTreeDepth - 1 {
		e = e.AddChild(NewEntity("link"))
	}
	if buf.Len() != 0 {
		t.Fatalf("warned at the threshold: %s", buf)
	}
	e.AddChild(NewEntity("deep"))
	if !strings.Contains(buf.String(), "tree depth exceeds threshold") {
		t.Errorf("log = %q, want a depth warning", buf)
	}
}

func TestDebugChecksWarnWideTree(t *testing.T) {
	withDebugChecks(t)
	buf := captureLogger(t)

	parent := NewEntity("wide")
	for range debugMaxChildCount {
		parent.AddChild(NewEntity("c"))
	}
	if buf.Len() != 0 {
		t.Fatalf("warned at the threshold: %s", buf)
	}
	parent.AddChild(NewEntity("one-too-many"))
	if !strings.Contains(buf.String(), "child count exceeds threshold") {
		t.Errorf("log = %q, want a child count warning", buf)
	}
}

func TestDebugChecksOffIsSilent(t *testing.T) {
	buf := captureLogger(t)
	e := NewEntity("e0")
	for range debugMaxTreeDepth + 4 {
		e = e.AddChild(NewEntity("link"))
	}
	if buf.Len() != 0 {
		t.Errorf("checks disabled but logged %q", buf)
	}
}

func TestSceneConfigEnablesDebugChecks(t *testing.T) {
	t.Cleanup(func() { SetDebugChecks(false) })
	cfg := DefaultConfig()
	cfg.DebugChecks = true
	NewScene(cfg, WithLogger(quietLogger()))
	if !debugChecks {
		t.Error("DebugChecks in config did not enable the checks")
	}
}

func TestDrawStatsLayerLines(t *testing.T) {
	s, clock, _, r := newTestScene(t)
	s.AddGameObject(NewEntityOnLayer("a", 0))
	s.AddGameObject(NewEntityOnLayer("b", 3))
	s.AddGameObject(NewEntityOnLayer("c", 3))
	step(s, clock, 0.25)

	s.drawStats(r)
	got := r.texts()
	for _, want := range []string{
		"Elapsed time: 0.25",
		"Delta time: 0.25",
		"Indexed: 3",
		"Layer [0]  Objects [1]",
		"Layer [3]  Objects [2]",
	} {
		if !slices.Contains(got, want) {
			t.Errorf("stats %v missing %q", got, want)
		}
	}
	if slices.Contains(got, "Layer [1]  Objects [0]") {
		t.Error("empty layer listed")
	}
}

func TestFPSMeter(t *testing.T) {
	var m fpsMeter
	for range 3 {
		m.tick(0.125)
	}
	assertNear(t, "before a full sample", m.FPS(), 0)
	m.tick(0.125)
	assertNear(t, "after a full sample", m.FPS(), 8)
	m.tick(0)
	assertNear(t, "zero delta ignored", m.FPS(), 8)
}

func TestStatsReportFPS(t *testing.T) {
	s, clock, _, r := newTestScene(t)
	for range 4 {
		step(s, clock, 0.125)
	}
	assertNear(t, "Stats.FPS", s.Stats().FPS, 8)

	s.drawStats(r)
	if !slices.Contains(r.texts(), "8 FPS") {
		t.Errorf("stats %v missing the frame rate", r.texts())
	}
	if r.count("rect") != 2 || r.count("rectlines") != 1 {
		t.Error("stats panel background missing")
	}
}

package kestrel

import (
	"slices"
	"testing"
)

// pausedScene returns a paused scene holding one 20x20 entity at (100, 100).
func pausedScene(t *testing.T) (*Scene, *fakeClock, *VirtualInput, *recordRenderer, *Entity) {
	t.Helper()
	s, clock, in, r := newTestScene(t)
	e := NewEntity("crate")
	e.Transform.SetPosition(100, 100)
	e.SetSize(20, 20)
	e.UpdateWorld()
	s.AddGameObject(e)

	in.QueueKeyTap(KeyP)
	step(s, clock, 0.016)
	step(s, clock, 0.016)
	if !s.Timer().Paused() {
		t.Fatal("scene not paused")
	}
	return s, clock, in, r, e
}

// frame runs one Update and Render.
func frame(s *Scene, clock *fakeClock) {
	step(s, clock, 0.016)
	s.Render(nil)
}

func TestEditorSelectAndMove(t *testing.T) {
	s, clock, in, r, e := pausedScene(t)
	ready := 0
	e.OnReady = func() { ready++ }

	in.QueuePress(MouseButtonLeft, Vec2{110, 110})
	frame(s, clock)
	if s.Selected() != e {
		t.Fatal("click did not select the entity under the cursor")
	}

	in.QueueKeyDown(KeyM)
	frame(s, clock)
	if s.EditMode() != EditMove {
		t.Fatalf("EditMode = %v, want Move", s.EditMode())
	}
	if !slices.Contains(r.texts(), "Select crate") {
		t.Errorf("legend = %v, want the selection label", r.texts())
	}

	in.QueueMove(Vec2{130, 115})
	frame(s, clock)
	assertVec(t, "position", e.Transform.Position, Vec2{120, 105})
	assertRect(t, "bound", e.Bound, Rect{X: 120, Y: 105, Width: 20, Height: 20})

	in.QueuePress(MouseButtonRight, Vec2{130, 115})
	frame(s, clock)
	if s.Selected() != nil {
		t.Error("right click did not deselect")
	}
	if ready != 1 {
		t.Errorf("OnReady fired %d times, want 1", ready)
	}
}

func TestEditorScaleClampsAtMinimum(t *testing.T) {
	s, clock, in, _, e := pausedScene(t)
	in.QueuePress(MouseButtonLeft, Vec2{110, 110})
	frame(s, clock)
	in.QueueKeyDown(KeyS)
	frame(s, clock)
	if s.EditMode() != EditScale {
		t.Fatalf("EditMode = %v, want Scale", s.EditMode())
	}

	in.QueueMove(Vec2{160, 110})
	frame(s, clock)
	assertVec(t, "scaled up", e.Transform.Scale, Vec2{1.5, 1.5})

	in.QueueMove(Vec2{-500, 110})
	frame(s, clock)
	assertVec(t, "clamped", e.Transform.Scale, Vec2{minEditScale, minEditScale})
}

func TestEditorRotate(t *testing.T) {
	s, clock, in, _, e := pausedScene(t)
	// Center of the selection is (110, 110).
	in.QueuePress(MouseButtonLeft, Vec2{120, 110})
	frame(s, clock)
	in.QueueKeyDown(KeyR)
	frame(s, clock)

	in.QueueMove(Vec2{110, 120})
	frame(s, clock)
	assertNear(t, "rotation", e.Transform.Rotation, 90)
}

func TestEditorModeResetsOnKeyRelease(t *testing.T) {
	s, clock, in, _, _ := pausedScene(t)
	in.QueueKeyTap(KeyM)
	frame(s, clock)
	if s.EditMode() != EditMove {
		t.Fatalf("EditMode = %v, want Move", s.EditMode())
	}
	frame(s, clock)
	if s.EditMode() != EditNone {
		t.Errorf("EditMode = %v after release, want None", s.EditMode())
	}
}

func TestEditorPrefersChildren(t *testing.T) {
	s, clock, in, _, e := pausedScene(t)
	child := e.AddChild(NewEntity("handle"))
	child.SetSize(40, 40)
	e.UpdateWorld()

	in.QueuePress(MouseButtonLeft, Vec2{105, 105})
	frame(s, clock)
	if s.Selected() != child {
		t.Errorf("Selected = %v, want the child", s.Selected())
	}
}

func TestEditorIdleWhileRunning(t *testing.T) {
	s, clock, in, r := newTestScene(t)
	e := NewEntity("e")
	e.SetSize(20, 20)
	s.AddGameObject(e)

	in.QueuePress(MouseButtonLeft, Vec2{5, 5})
	frame(s, clock)
	if s.Selected() != nil || len(r.texts()) != 0 {
		t.Error("editor ran while the timer was running")
	}
}

func TestEditorDisabled(t *testing.T) {
	s, clock, in, r, _ := pausedScene(t)
	s.EnableEditor = false
	r.reset()
	in.QueuePress(MouseButtonLeft, Vec2{110, 110})
	frame(s, clock)
	if s.Selected() != nil || len(r.texts()) != 0 {
		t.Error("editor ran while disabled")
	}
}

func TestUnpauseDeselects(t *testing.T) {
	s, clock, in, _, e := pausedScene(t)
	ready := 0
	e.OnReady = func() { ready++ }
	in.QueuePress(MouseButtonLeft, Vec2{110, 110})
	frame(s, clock)

	in.QueueKeyDown(KeyP)
	frame(s, clock)
	if s.Selected() != nil || ready != 1 {
		t.Errorf("selected = %v, ready = %d after resume", s.Selected(), ready)
	}
}

func TestRemovingSelectionDeselects(t *testing.T) {
	s, clock, in, _, e := pausedScene(t)
	ready := 0
	e.OnReady = func() { ready++ }
	in.QueuePress(MouseButtonLeft, Vec2{110, 110})
	frame(s, clock)
	if s.Selected() != e {
		t.Fatal("crate not selected")
	}

	s.RemoveGameObject(e)
	in.QueueKeyDown(KeyM)
	in.QueueMove(Vec2{150, 110})
	frame(s, clock)
	frame(s, clock)
	if s.Selected() != nil {
		t.Errorf("selected = %v after removal", s.Selected())
	}
	if !e.IsDisposed() || ready != 0 {
		t.Errorf("disposed = %v, ready = %d", e.IsDisposed(), ready)
	}
}

func TestEditModeString(t *testing.T) {
	for m, want := range map[EditMode]string{
		EditNone: "None", EditMove: "Move", EditScale: "Scale", EditRotate: "Rotate",
	} {
		if m.String() != want {
			t.Errorf("%d.String() = %q, want %q", m, m.String(), want)
		}
	}
}

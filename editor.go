package kestrel

import (
	"fmt"
	"math"
)

// EditMode is the drag action of the paused-scene gizmo.
type EditMode uint8

const (
	EditNone   EditMode = iota // dragging does nothing
	EditMove                   // drag moves the selection
	EditScale                  // horizontal drag scales the selection
	EditRotate                 // drag around the selection center rotates it
)

// String returns the legend label for m.
func (m EditMode) String() string {
	switch m {
	case EditMove:
		return "Move"
	case EditScale:
		return "Scale"
	case EditRotate:
		return "Rotate"
	}
	return "None"
}

// minEditScale keeps dragged transforms invertible.
const minEditScale = 0.1

// editor is the drag/scale/rotate gizmo state. It only runs while the frame
// timer is paused.
type editor struct {
	mode      EditMode
	selected  *Entity
	prevMouse Vec2
}

// deselect hands the selection back to the game via its OnReady hook.
func (ed *editor) deselect() {
	if ed.selected == nil {
		return
	}
	sel := ed.selected
	ed.selected = nil
	sel.ready()
}

// EditMode returns the current gizmo mode.
func (s *Scene) EditMode() EditMode { return s.editor.mode }

// Selected returns the entity held by the gizmo, or nil.
func (s *Scene) Selected() *Entity { return s.editor.selected }

// runEditor handles gizmo input and draws its overlay. Children are offered
// for selection before their parent.
func (s *Scene) runEditor(r Renderer) {
	ed := &s.editor
	in := s.input
	mouse := in.MousePosition()

	if ed.selected != nil && in.MousePressed(MouseButtonRight) {
		ed.deselect()
		ed.prevMouse = mouse
		return
	}

	switch {
	case in.KeyPressed(KeyS):
		ed.mode = EditScale
	case in.KeyPressed(KeyM):
		ed.mode = EditMove
	case in.KeyPressed(KeyR):
		ed.mode = EditRotate
	case in.KeyReleased(KeyS) || in.KeyReleased(KeyM) || in.KeyReleased(KeyR):
		ed.mode = EditNone
	}

	sw, _ := r.ScreenSize()
	lx := float64(sw - 150)
	for i, m := range []EditMode{EditScale, EditMove, EditRotate} {
		c := ColorWhite
		if ed.mode == m {
			c = ColorRed
		}
		r.DrawText(fmt.Sprintf("%c - %s", m.String()[0], m), lx, float64(10+20*i), 20, c)
	}
	if ed.selected != nil {
		r.DrawText("Select "+ed.selected.Name, lx, 70, 20, ColorRed)
	}

	if ed.selected == nil {
		s.editorHover(r, mouse)
	}

	if sel := ed.selected; sel != nil {
		r.DrawRectLines(sel.Bound, 2, ColorGreen)
		if in.MouseDown(MouseButtonLeft) {
			ed.drag(sel, mouse)
		}
	}
	ed.prevMouse = mouse
}

// editorHover outlines the entity under the cursor and selects it on click.
func (s *Scene) editorHover(r Renderer, mouse Vec2) {
	clicked := s.input.MousePressed(MouseButtonLeft)
	try := func(e *Entity) bool {
		if !e.Bound.Contains(mouse.X, mouse.Y) {
			return false
		}
		r.DrawRectLines(e.Bound, 2, ColorRed)
		if clicked {
			s.editor.selected = e
			return true
		}
		return false
	}
	for _, e := range s.gameObjects {
		for _, c := range e.children {
			if try(c) {
				return
			}
		}
		if try(e) {
			return
		}
	}
}

func (ed *editor) drag(sel *Entity, mouse Vec2) {
	t := sel.Transform
	switch ed.mode {
	case EditMove:
		t.Position = t.Position.Add(mouse.Sub(ed.prevMouse))
	case EditScale:
		t.Scale = t.Scale.AddScalar((mouse.X - ed.prevMouse.X) / 100)
	case EditRotate:
		center := Vec2{
			t.Position.X + sel.Bound.Width/2,
			t.Position.Y + sel.Bound.Height/2,
		}
		prev := math.Atan2(ed.prevMouse.Y-center.Y, ed.prevMouse.X-center.X)
		curr := math.Atan2(mouse.Y-center.Y, mouse.X-center.X)
		t.Rotation += RadToDeg(curr - prev)
	}
	t.Scale.X = math.Max(t.Scale.X, minEditScale)
	t.Scale.Y = math.Max(t.Scale.Y, minEditScale)
	sel.UpdateWorld()
}

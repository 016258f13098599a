package kestrel

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the camera target.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera maps world space to the screen: a world point p is drawn at
// (p - Target) * Zoom + Offset.
type Camera struct {
	// Target is the world point drawn at Offset.
	Target Vec2
	// Offset is the screen point Target is drawn at.
	Offset Vec2
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64

	// BoundsEnabled clamps the target so the visible area stays within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	screenW, screenH float64

	followTarget *Entity
	followOffset Vec2
	followLerp   float64

	scrollTween *scrollAnim
	view        Rect
}

// newCamera creates a camera for a screen of the given size.
func newCamera(screenW, screenH float64) *Camera {
	c := &Camera{Zoom: 1, screenW: screenW, screenH: screenH}
	c.computeView()
	return c
}

// SetScreenSize changes the screen size the visible area is derived from.
func (c *Camera) SetScreenSize(w, h float64) {
	c.screenW, c.screenH = w, h
	c.computeView()
}

// Follow makes the camera track target's world position plus offset. A lerp
// of 1.0 snaps immediately; lower values give smoother following.
func (c *Camera) Follow(target *Entity, offset Vec2, lerp float64) {
	c.followTarget = target
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target entity.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the target to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.Target.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Target.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// update advances follow, scroll and bounds clamping, then recomputes the
// visible area. Called from Scene.Update.
func (c *Camera) update(dt float64) {
	if t := c.followTarget; t != nil {
		if t.IsDisposed() {
			c.followTarget = nil
		} else {
			goal := t.WorldPosition.Add(c.followOffset)
			c.Target = c.Target.Add(goal.Sub(c.Target).Scale(c.followLerp))
		}
	}

	if s := c.scrollTween; s != nil {
		if !s.doneX {
			v, done := s.tweenX.Update(float32(dt))
			c.Target.X = float64(v)
			s.doneX = done
		}
		if !s.doneY {
			v, done := s.tweenY.Update(float32(dt))
			c.Target.Y = float64(v)
			s.doneY = done
		}
		if s.doneX && s.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
	c.computeView()
}

// ZoomLevel returns the zoom in effect. Non-positive Zoom values count as 1.
func (c *Camera) ZoomLevel() float64 {
	return c.zoom()
}

func (c *Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// clampToBounds restricts the target so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	z := c.zoom()
	minX := c.Bounds.X + c.Offset.X/z
	maxX := c.Bounds.X + c.Bounds.Width - (c.screenW-c.Offset.X)/z
	minY := c.Bounds.Y + c.Offset.Y/z
	maxY := c.Bounds.Y + c.Bounds.Height - (c.screenH-c.Offset.Y)/z

	// If bounds are smaller than the visible area, center the camera.
	if minX > maxX {
		c.Target.X = (minX + maxX) / 2
	} else {
		c.Target.X = math.Max(minX, math.Min(c.Target.X, maxX))
	}
	if minY > maxY {
		c.Target.Y = (minY + maxY) / 2
	} else {
		c.Target.Y = math.Max(minY, math.Min(c.Target.Y, maxY))
	}
}

func (c *Camera) computeView() {
	z := c.zoom()
	c.view = Rect{
		X:      c.Target.X - c.Offset.X/z,
		Y:      c.Target.Y - c.Offset.Y/z,
		Width:  c.screenW / z,
		Height: c.screenH / z,
	}
}

// View returns the world-space area visible on screen, as of the last update.
func (c *Camera) View() Rect {
	return c.view
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	return p.Sub(c.Target).Scale(c.zoom()).Add(c.Offset)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	return p.Sub(c.Offset).Scale(1 / c.zoom()).Add(c.Target)
}

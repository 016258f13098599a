package kestrel

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Common colors used by debug overlays and placeholder markers.
var (
	ColorWhite   = Color{1, 1, 1, 1}
	ColorRed     = Color{0.9, 0.16, 0.22, 1}
	ColorGreen   = Color{0, 0.89, 0.19, 1}
	ColorLime    = Color{0, 0.62, 0.18, 1}
	ColorBlue    = Color{0, 0.47, 0.95, 1}
	ColorMagenta = Color{1, 0, 1, 1}
	ColorSkyBlue = Color{0.4, 0.75, 1, 1}
	ColorBlack   = Color{0, 0, 0, 1}
)

// Fade returns c with its alpha multiplied by alpha.
func (c Color) Fade(alpha float64) Color {
	c.A *= alpha
	return c
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API. Arithmetic is componentwise.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the componentwise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Div returns the componentwise quotient of v and o. Division by zero follows
// IEEE-754 semantics.
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{v.X / o.X, v.Y / o.Y} }

// Scale returns v with both components multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// AddScalar returns v with s added to both components.
func (v Vec2) AddScalar(s float64) Vec2 { return Vec2{v.X + s, v.Y + s} }

// SubScalar returns v with s subtracted from both components.
func (v Vec2) SubScalar(s float64) Vec2 { return Vec2{v.X - s, v.Y - s} }

// Less reports whether both components of v are smaller than o's.
func (v Vec2) Less(o Vec2) bool { return v.X < o.X && v.Y < o.Y }

// LessEq reports whether both components of v are at most o's.
func (v Vec2) LessEq(o Vec2) bool { return v.X <= o.X && v.Y <= o.Y }

// Greater reports whether both components of v are larger than o's.
func (v Vec2) Greater(o Vec2) bool { return v.X > o.X && v.Y > o.Y }

// GreaterEq reports whether both components of v are at least o's.
func (v Vec2) GreaterEq(o Vec2) bool { return v.X >= o.X && v.Y >= o.Y }

// Len returns the magnitude of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 { return o.Sub(v).Len() }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap. Rectangles that only share
// an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.X+other.Width <= r.X+r.Width &&
		other.Y >= r.Y && other.Y+other.Height <= r.Y+r.Height
}

// IntersectsCircle reports whether the circle at center with the given radius
// touches r.
func (r Rect) IntersectsCircle(center Vec2, radius float64) bool {
	dx := center.X - math.Max(r.X, math.Min(center.X, r.X+r.Width))
	dy := center.Y - math.Max(r.Y, math.Min(center.Y, r.Y+r.Height))
	return dx*dx+dy*dy <= radius*radius
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// circlesOverlap reports whether two circles touch.
func circlesOverlap(c1 Vec2, r1 float64, c2 Vec2, r2 float64) bool {
	dx := c2.X - c1.X
	dy := c2.Y - c1.Y
	return dx*dx+dy*dy <= (r1+r2)*(r1+r2)
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// Key identifies a keyboard key the core reacts to. Platform backends map
// their native key codes onto these values.
type Key uint8

const (
	KeyF1 Key = iota // toggle debug overlays
	KeyF2            // clear the scene
	KeyF3            // toggle collisions
	KeyP             // pause / resume the frame timer
	KeyS             // editor: scale mode
	KeyM             // editor: move mode
	KeyR             // editor: rotate mode
)

// DebugMask selects which diagnostic overlays Entity.Debug draws.
type DebugMask uint32

const (
	ShowOrigin     DebugMask = 1 << (iota + 1) // hit box origin point
	ShowBox                                    // hit box outline
	ShowBound                                  // world-space bound
	ShowPivot                                  // transform pivot
	ShowTransform                              // rotated transform axes
	ShowComponents                             // component OnDebug overlays

	ShowAll = ShowOrigin | ShowBox | ShowBound | ShowPivot | ShowTransform | ShowComponents
)

package kestrel

import "time"

// Texture is an opaque handle to an image owned by the platform backend.
type Texture interface {
	Width() int
	Height() int
}

// TextureLoader loads textures by path. Implemented by the platform backend.
type TextureLoader interface {
	Load(path string) (Texture, error)
	Unload(tex Texture)
}

// Vertex is one corner of a textured quad. U and V are in texels.
type Vertex struct {
	X, Y  float64
	U, V  float64
	Color Color
}

// Renderer issues draw primitives. Scene.Render and component OnDraw/OnDebug
// callbacks draw exclusively through this interface. Coordinates are in world
// space; the backend applies the camera.
type Renderer interface {
	DrawRect(r Rect, c Color)
	DrawRectLines(r Rect, thickness float64, c Color)
	DrawCircle(center Vec2, radius float64, c Color)
	DrawCircleLines(center Vec2, radius float64, c Color)
	DrawLine(from, to Vec2, c Color)
	// DrawQuad draws tex mapped onto the four vertices in the order
	// top-left, top-right, bottom-right, bottom-left.
	DrawQuad(tex Texture, v [4]Vertex)
	// DrawText draws debug text in screen space.
	DrawText(text string, x, y float64, size int, c Color)
	ScreenSize() (w, h int)
}

// Input exposes the current frame's keyboard and mouse state.
type Input interface {
	KeyPressed(k Key) bool
	KeyReleased(k Key) bool
	KeyDown(k Key) bool
	MousePressed(b MouseButton) bool
	MouseReleased(b MouseButton) bool
	MouseDown(b MouseButton) bool
	// MousePosition returns the cursor in world coordinates.
	MousePosition() Vec2
}

// Poller is implemented by Input backends that latch their state once per
// frame. Scene.Update polls them before anything reads input.
type Poller interface {
	Poll()
}

// Clock is a monotonic time source in seconds.
type Clock interface {
	Now() float64
}

// systemClock reads the process monotonic clock.
type systemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock backed by time.Now. Readings start at zero.
func NewSystemClock() Clock {
	return &systemClock{start: time.Now()}
}

func (c *systemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// nopRenderer discards all draw calls. Used when a Scene has no renderer.
type nopRenderer struct{}

func (nopRenderer) DrawRect(Rect, Color)                          {}
func (nopRenderer) DrawRectLines(Rect, float64, Color)            {}
func (nopRenderer) DrawCircle(Vec2, float64, Color)               {}
func (nopRenderer) DrawCircleLines(Vec2, float64, Color)          {}
func (nopRenderer) DrawLine(Vec2, Vec2, Color)                    {}
func (nopRenderer) DrawQuad(Texture, [4]Vertex)                   {}
func (nopRenderer) DrawText(string, float64, float64, int, Color) {}
func (nopRenderer) ScreenSize() (int, int)                        { return 0, 0 }

// nopInput reports no keys or buttons held.
type nopInput struct{}

func (nopInput) KeyPressed(Key) bool            { return false }
func (nopInput) KeyReleased(Key) bool           { return false }
func (nopInput) KeyDown(Key) bool               { return false }
func (nopInput) MousePressed(MouseButton) bool  { return false }
func (nopInput) MouseReleased(MouseButton) bool { return false }
func (nopInput) MouseDown(MouseButton) bool     { return false }
func (nopInput) MousePosition() Vec2            { return Vec2{} }

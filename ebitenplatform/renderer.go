package ebitenplatform

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/kestrel"
)

// Renderer draws kestrel primitives onto an ebiten image. World coordinates
// go through the camera; DrawText is in screen space.
type Renderer struct {
	target *ebiten.Image
	camera *kestrel.Camera

	verts []ebiten.Vertex
	inds  []uint16
}

// NewRenderer creates a renderer that maps world space through camera. A nil
// camera draws world coordinates unchanged.
func NewRenderer(camera *kestrel.Camera) *Renderer {
	return &Renderer{
		camera: camera,
		verts:  make([]ebiten.Vertex, 4),
		inds:   []uint16{0, 1, 3, 1, 2, 3},
	}
}

// Begin sets the image the next draw calls land on.
func (r *Renderer) Begin(target *ebiten.Image) {
	r.target = target
}

func (r *Renderer) toScreen(p kestrel.Vec2) (float32, float32) {
	if r.camera != nil {
		p = r.camera.WorldToScreen(p)
	}
	return float32(p.X), float32(p.Y)
}

func (r *Renderer) scale(v float64) float32 {
	if r.camera != nil {
		v *= r.camera.ZoomLevel()
	}
	return float32(v)
}

// RGBA converts c to a premultiplied color.RGBA.
func RGBA(c kestrel.Color) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// DrawRect fills rc in world space.
func (r *Renderer) DrawRect(rc kestrel.Rect, c kestrel.Color) {
	if r.target == nil {
		return
	}
	x, y := r.toScreen(kestrel.Vec2{X: rc.X, Y: rc.Y})
	vector.DrawFilledRect(r.target, x, y, r.scale(rc.Width), r.scale(rc.Height), RGBA(c), false)
}

// DrawRectLines outlines rc with a stroke of the given thickness in pixels.
func (r *Renderer) DrawRectLines(rc kestrel.Rect, thickness float64, c kestrel.Color) {
	if r.target == nil {
		return
	}
	x, y := r.toScreen(kestrel.Vec2{X: rc.X, Y: rc.Y})
	vector.StrokeRect(r.target, x, y, r.scale(rc.Width), r.scale(rc.Height), float32(thickness), RGBA(c), false)
}

// DrawCircle fills a circle in world space.
func (r *Renderer) DrawCircle(center kestrel.Vec2, radius float64, c kestrel.Color) {
	if r.target == nil {
		return
	}
	x, y := r.toScreen(center)
	vector.DrawFilledCircle(r.target, x, y, r.scale(radius), RGBA(c), true)
}

// DrawCircleLines outlines a circle with a one pixel stroke.
func (r *Renderer) DrawCircleLines(center kestrel.Vec2, radius float64, c kestrel.Color) {
	if r.target == nil {
		return
	}
	x, y := r.toScreen(center)
	vector.StrokeCircle(r.target, x, y, r.scale(radius), 1, RGBA(c), true)
}

// DrawLine draws a one pixel line between two world points.
func (r *Renderer) DrawLine(from, to kestrel.Vec2, c kestrel.Color) {
	if r.target == nil {
		return
	}
	x0, y0 := r.toScreen(from)
	x1, y1 := r.toScreen(to)
	vector.StrokeLine(r.target, x0, y0, x1, y1, 1, RGBA(c), true)
}

// DrawQuad draws tex onto the quad as two triangles.
func (r *Renderer) DrawQuad(tex kestrel.Texture, v [4]kestrel.Vertex) {
	img := image(tex)
	if r.target == nil || img == nil {
		return
	}
	for i, src := range v {
		x, y := r.toScreen(kestrel.Vec2{X: src.X, Y: src.Y})
		r.verts[i] = ebiten.Vertex{
			DstX:   x,
			DstY:   y,
			SrcX:   float32(src.U),
			SrcY:   float32(src.V),
			ColorR: float32(src.Color.R),
			ColorG: float32(src.Color.G),
			ColorB: float32(src.Color.B),
			ColorA: float32(src.Color.A),
		}
	}
	var op ebiten.DrawTrianglesOptions
	r.target.DrawTriangles(r.verts, r.inds, img, &op)
}

// DrawText prints debug text at a screen position. The built-in debug font
// has a single size.
func (r *Renderer) DrawText(text string, x, y float64, _ int, _ kestrel.Color) {
	if r.target == nil {
		return
	}
	ebitenutil.DebugPrintAt(r.target, text, int(x), int(y))
}

// ScreenSize returns the size of the current target, or 0x0 between frames.
func (r *Renderer) ScreenSize() (int, int) {
	if r.target == nil {
		return 0, 0
	}
	b := r.target.Bounds()
	return b.Dx(), b.Dy()
}

package kestrel

// Sprite draws a clip of a graph through its entity's world matrix.
type Sprite struct {
	BaseComponent

	GraphKey string
	Graph    *Graph

	// Clip is the source rectangle in texels. It defaults to the whole graph.
	Clip  Rect
	FlipX bool
	FlipY bool
	Color Color
}

// NewSprite creates a sprite showing the graph loaded under key. When the key
// is not in assets the sprite starts in the not-loaded state with a 1x1 clip
// and retries the lookup through its entity's scene on OnInit.
func NewSprite(assets *Assets, key string) *Sprite {
	s := &Sprite{
		GraphKey: key,
		Clip:     Rect{Width: 1, Height: 1},
		Color:    ColorWhite,
	}
	if assets != nil {
		s.setGraph(assets.Graph(key))
	}
	return s
}

func (s *Sprite) setGraph(g *Graph) {
	if g == nil {
		return
	}
	s.Graph = g
	s.Clip = Rect{Width: float64(g.Width), Height: float64(g.Height)}
}

// Loaded reports whether the sprite has a graph to draw.
func (s *Sprite) Loaded() bool {
	return s.Graph != nil
}

// OnInit sizes the entity to the clip and centers its origin and pivot.
func (s *Sprite) OnInit() {
	e := s.entity
	if s.Graph == nil && e.scene != nil && e.scene.assets.HasGraph(s.GraphKey) {
		s.setGraph(e.scene.assets.Graph(s.GraphKey))
	}
	e.CenterOrigin()
	e.CenterPivot()
	e.Width = s.Clip.Width
	e.Height = s.Clip.Height
}

// SetClip selects the source rectangle.
func (s *Sprite) SetClip(x, y, w, h float64) {
	s.Clip = Rect{X: x, Y: y, Width: w, Height: h}
}

// quad maps the clip onto the entity's local rectangle and transforms the
// corners by m.
func (s *Sprite) quad(m Matrix2D) [4]Vertex {
	left, right := s.Clip.X, s.Clip.X+s.Clip.Width
	top, bottom := s.Clip.Y, s.Clip.Y+s.Clip.Height
	if s.FlipX {
		left, right = right, left
	}
	if s.FlipY {
		top, bottom = bottom, top
	}

	w, h := s.Clip.Width, s.Clip.Height
	corners := [4]struct{ x, y, u, v float64 }{
		{0, 0, left, top},
		{w, 0, right, top},
		{w, h, right, bottom},
		{0, h, left, bottom},
	}
	var out [4]Vertex
	for i, c := range corners {
		p := m.TransformPoint(c.x, c.y)
		out[i] = Vertex{X: p.X, Y: p.Y, U: c.u, V: c.v, Color: s.Color}
	}
	return out
}

// OnDraw draws the clip, or a small red marker at the entity position when
// no graph is loaded.
func (s *Sprite) OnDraw(r Renderer) {
	e := s.entity
	if s.Graph == nil {
		r.DrawCircleLines(Vec2{e.WorldX(), e.WorldY()}, 1, ColorRed)
		return
	}
	r.DrawQuad(s.Graph.Texture, s.quad(e.Transform.WorldMatrix()))
}

package ebitenplatform

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/kestrel"
)

// Game adapts a kestrel scene to ebiten.Game.
type Game struct {
	Scene *kestrel.Scene

	cfg      kestrel.Config
	renderer *Renderer
	input    *Input
}

// NewGame creates a scene from cfg wired to the ebiten renderer, input and
// texture loader. Extra options are applied after the platform ones, so they
// may replace them.
func NewGame(cfg kestrel.Config, opts ...kestrel.Option) *Game {
	g := &Game{
		cfg:      cfg,
		renderer: NewRenderer(nil),
		input:    NewInput(nil),
	}
	base := []kestrel.Option{
		kestrel.WithRenderer(g.renderer),
		kestrel.WithInput(g.input),
		kestrel.WithTextureLoader(Loader{}),
	}
	g.Scene = kestrel.NewScene(cfg, append(base, opts...)...)
	cam := g.Scene.Camera()
	g.renderer.camera = cam
	g.input.camera = cam
	return g
}

// Update advances the scene one frame.
func (g *Game) Update() error {
	g.Scene.Update()
	return nil
}

// Draw clears the screen to the scene background and renders the scene.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(RGBA(g.Scene.Background()))
	g.renderer.Begin(screen)
	g.Scene.Render(g.renderer)
	g.renderer.Begin(nil)
}

// Layout keeps the logical screen at the configured window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.WindowWidth, g.cfg.WindowHeight
}

// Run opens the window described by the config and blocks until it closes.
func (g *Game) Run() error {
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.WindowWidth, g.cfg.WindowHeight)
	ebiten.SetFullscreen(g.cfg.Fullscreen)
	if g.cfg.FPS > 0 {
		ebiten.SetTPS(g.cfg.FPS)
	}
	g.Scene.Logger().Info("starting game",
		"title", g.cfg.Title,
		"width", g.cfg.WindowWidth,
		"height", g.cfg.WindowHeight)
	g.Scene.Timer().Start()
	return ebiten.RunGame(g)
}

// Package ebitenplatform runs a kestrel scene on [Ebitengine].
//
// It provides the three collaborators the core calls into: a Renderer that
// issues vector and textured-triangle draws with the scene camera applied,
// an Input backed by ebiten and inpututil, and a TextureLoader reading image
// files. [NewGame] wires them into a scene and [Game.Run] opens the window.
//
//	cfg, err := kestrel.LoadConfig("game.hcl")
//	if err != nil {
//		log.Fatal(err)
//	}
//	g := ebitenplatform.NewGame(cfg)
//	// ... load graphs, add entities to g.Scene ...
//	if err := g.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// [Ebitengine]: https://ebitengine.org
package ebitenplatform

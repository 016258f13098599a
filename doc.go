// Package kestrel is the runtime core of a 2D scene engine.
//
// A [Scene] owns a flat list of root [Entity] values, sorted into draw layers,
// and steps them through a fixed per-frame cycle: [Scene.Update] advances the
// frame timer, camera, entities and collisions, and [Scene.Render] draws
// through a [Renderer]. Window creation, input polling and texture decoding
// live behind the [Renderer], [Input], [TextureLoader] and [Clock]
// interfaces; package ebitenplatform implements them on [Ebitengine].
//
// # Quick start
//
//	cfg, err := kestrel.LoadConfig("game.hcl")
//	if err != nil {
//		log.Fatal(err)
//	}
//	g := ebitenplatform.NewGame(cfg)
//	if _, err := g.Scene.Assets().LoadGraph("hero", "hero.png"); err != nil {
//		log.Fatal(err)
//	}
//	hero := kestrel.NewEntityOnLayer("hero", 1)
//	kestrel.AddComponent(hero, kestrel.NewSprite(g.Scene.Assets(), "hero"))
//	g.Scene.AddGameObject(hero)
//	log.Fatal(g.Run())
//
// # Entities and transforms
//
// Every entity owns a [Transform] (position, scale, pivot, skew and a
// rotation in degrees, counter-clockwise on a y-down screen) and any children
// added with [Entity.AddChild]. World matrices compose the local matrix with
// the parent chain. [Entity.UpdateWorld] refreshes the world position and the
// axis-aligned [Entity.Bound] used for culling, picking and the spatial index.
//
// # Components
//
// Behaviors attach through the generic [AddComponent], [GetComponent],
// [HasComponent] and [RemoveComponent]. Each component type gets a dense
// [ComponentKind] on first use; at most [MaxComponentKinds] types may exist in
// a process. Components implement any of [Initializer], [Updater], [Drawer],
// [Debugger] and [Destroyer]; the capabilities are resolved once at attach
// time. Built-in kinds are [Sprite], [Animator], [TileLayer], [BoxCollider],
// [CircleCollider] and [Tween].
//
// # Deferred mutation
//
// Entities queued with [Scene.AddQueueObject] or [Scene.RemoveGameObject]
// join or leave at the next Update, so callbacks may mutate the scene while it
// iterates. Removal fires OnRemove and destroys the entity with its subtree.
//
// # Collisions and queries
//
// [Scene.Collision] tests every pair of collidable roots once. In
// [CollideFirstPair] mode the scan stops at the first hit. A [Quadtree] over
// the world indexes root bounds for [Scene.QueryRect], [Scene.QueryPoint] and
// [Scene.QueryCircle].
//
// # Debugging
//
// F1 toggles overlays, F3 toggles collisions, F2 clears the scene and P pauses
// the frame timer. While paused, the editor gizmo moves (M), scales (S) and
// rotates (R) the entity under the cursor. Logging goes through log/slog.
//
// [Ebitengine]: https://ebitengine.org
package kestrel

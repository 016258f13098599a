// Package ecs bridges kestrel scene events into a [Donburi] world.
//
// [NewDonburiSink] publishes every SceneEvent (entity added, entity removed,
// collision) as a typed Donburi event. Subscribe to [SceneEventType] in your
// ECS systems and drain it with ProcessEvents once per frame.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene.SetEventSink(ecs.NewDonburiSink(world))
//	ecs.SceneEventType.Subscribe(world, onSceneEvent)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

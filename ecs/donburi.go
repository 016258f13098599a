package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/kestrel"
)

// SceneEventType is the Donburi event type carrying kestrel scene events.
var SceneEventType = events.NewEventType[kestrel.SceneEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink publishing to SceneEventType in world.
// Events are queued until SceneEventType.ProcessEvents or
// events.ProcessAllEvents runs.
func NewDonburiSink(world donburi.World) kestrel.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event kestrel.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}

// CollisionCounter is a Donburi component counting the collisions an ECS
// entity mirrored from the scene took part in.
type CollisionCounter struct {
	Hits int
}

// CollisionCounterComponent is the component type for CollisionCounter.
var CollisionCounterComponent = donburi.NewComponentType[CollisionCounter]()

// Mirror keeps one Donburi entity with a CollisionCounter per live scene
// entity, keyed by kestrel entity ID. Subscribe Mirror.Handle to
// SceneEventType.
type Mirror struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewMirror creates an empty mirror over world.
func NewMirror(world donburi.World) *Mirror {
	return &Mirror{world: world, entities: make(map[uint32]donburi.Entity)}
}

// Handle applies one scene event.
func (m *Mirror) Handle(w donburi.World, ev kestrel.SceneEvent) {
	switch ev.Type {
	case kestrel.EventEntityAdded:
		if _, ok := m.entities[ev.EntityID]; !ok {
			m.entities[ev.EntityID] = w.Create(CollisionCounterComponent)
		}
	case kestrel.EventEntityRemoved:
		if e, ok := m.entities[ev.EntityID]; ok {
			w.Remove(e)
			delete(m.entities, ev.EntityID)
		}
	case kestrel.EventCollision:
		m.hit(w, ev.EntityID)
		m.hit(w, ev.OtherID)
	}
}

func (m *Mirror) hit(w donburi.World, id uint32) {
	e, ok := m.entities[id]
	if !ok || !w.Valid(e) {
		return
	}
	CollisionCounterComponent.Get(w.Entry(e)).Hits++
}

// Hits returns the collision count of the scene entity id, or 0 when it is
// not mirrored.
func (m *Mirror) Hits(id uint32) int {
	e, ok := m.entities[id]
	if !ok || !m.world.Valid(e) {
		return 0
	}
	return CollisionCounterComponent.Get(m.world.Entry(e)).Hits
}

// Len returns the number of mirrored entities.
func (m *Mirror) Len() int {
	return len(m.entities)
}

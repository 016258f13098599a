package kestrel

// Collision scans every pair of root entities once (i < j). Pairs where either
// side is not collidable, or one is the direct parent of the other, are
// skipped. For each remaining pair with matching collider shapes, a's shape is
// tested against b's and then b's against a's; the first positive test calls
// OnCollide on both colliders, the tester first.
//
// In CollideFirstPair mode the scan stops at the first colliding pair, so at
// most one pair is resolved per call. It returns the number of pairs resolved.
func (s *Scene) Collision() int {
	hits := 0
	objs := s.gameObjects
	for i := 0; i < len(objs); i++ {
		a := objs[i]
		if !a.Collidable {
			continue
		}
		for j := i + 1; j < len(objs); j++ {
			b := objs[j]
			if !b.Collidable {
				continue
			}
			if a == b || b == a.parent || a == b.parent {
				continue
			}
			ca, cb, ok := colliderPair(a, b)
			if !ok {
				continue
			}

			switch {
			case ca.IsColliding(cb):
				ca.OnCollide(cb)
				cb.OnCollide(ca)
			case cb.IsColliding(ca):
				cb.OnCollide(ca)
				ca.OnCollide(cb)
			default:
				continue
			}

			hits++
			s.emit(SceneEvent{
				Type:      EventCollision,
				EntityID:  a.ID,
				Name:      a.Name,
				OtherID:   b.ID,
				OtherName: b.Name,
			})
			if s.CollisionMode == CollideFirstPair {
				return hits
			}
		}
	}
	return hits
}

// PlaceFree reports whether e could stand at (x, y) without touching any
// collidable entity. A non-collidable e is always free.
func (s *Scene) PlaceFree(e *Entity, x, y float64) bool {
	if !e.Collidable {
		return true
	}
	for _, other := range s.gameObjects {
		if !other.Collidable {
			continue
		}
		if e.CollideWith(other, x, y) {
			return false
		}
	}
	return true
}

// PlaceMeeting reports whether e at (x, y) would touch an entity named name.
// Only collidable entities, or those inside the camera view, are tested.
func (s *Scene) PlaceMeeting(e *Entity, x, y float64, name string) bool {
	if !e.Collidable {
		return false
	}
	for _, other := range s.gameObjects {
		if !other.Collidable && !s.InView(other.Bound) {
			continue
		}
		if other.Name != name {
			continue
		}
		if e.CollideWith(other, x, y) {
			return true
		}
	}
	return false
}

// PlaceMeetingLayer reports whether e at (x, y) would touch a collidable
// entity on layer. Unknown layers never meet.
func (s *Scene) PlaceMeetingLayer(e *Entity, x, y float64, layer int) bool {
	if !e.Collidable {
		return false
	}
	for _, other := range s.Layer(layer) {
		if !other.Collidable {
			continue
		}
		if e.CollideWith(other, x, y) {
			return true
		}
	}
	return false
}

// --- Picks ---

// CirclePick returns the first pickable entity whose bound touches the
// circle, or nil.
func (s *Scene) CirclePick(center Vec2, radius float64) *Entity {
	for _, e := range s.gameObjects {
		if e.Pickable && e.Bound.IntersectsCircle(center, radius) {
			return e
		}
	}
	return nil
}

// PointPick returns the first pickable entity whose bound contains p, or nil.
func (s *Scene) PointPick(p Vec2) *Entity {
	for _, e := range s.gameObjects {
		if e.Pickable && e.Bound.Contains(p.X, p.Y) {
			return e
		}
	}
	return nil
}

// MousePick returns the first pickable entity under the cursor, or nil.
func (s *Scene) MousePick() *Entity {
	return s.PointPick(s.input.MousePosition())
}

// RectanglePick returns the first pickable entity whose bound overlaps r, or nil.
func (s *Scene) RectanglePick(r Rect) *Entity {
	for _, e := range s.gameObjects {
		if e.Pickable && e.Bound.Intersects(r) {
			return e
		}
	}
	return nil
}

// --- Spatial queries ---

// QueryPoint returns the root entities whose bound contains p, using the
// spatial index.
func (s *Scene) QueryPoint(p Vec2) []*Entity {
	return s.index.QueryPoint(p)
}

// QueryRect returns the root entities whose bound overlaps r, using the
// spatial index.
func (s *Scene) QueryRect(r Rect) []*Entity {
	return s.index.QueryRect(r)
}

// QueryCircle returns the root entities whose bound touches the circle,
// using the spatial index.
func (s *Scene) QueryCircle(center Vec2, radius float64) []*Entity {
	return s.index.QueryCircle(center, radius)
}

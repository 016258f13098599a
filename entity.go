package kestrel

import (
	"log/slog"
	"math"
)

// --- ID counter ---

// entityIDCounter is not guarded; kestrel is single-threaded.
var entityIDCounter uint32

func nextEntityID() uint32 {
	entityIDCounter++
	return entityIDCounter
}

// --- Entity ---

// Entity is a scene object: an identity with a transform, up to
// MaxComponentKinds components, an axis-aligned world bound and owned children.
type Entity struct {
	// Identity
	ID   uint32
	Name string

	// Flags
	Alive      bool
	Visible    bool
	Active     bool
	Persistent bool
	Solid      bool
	Collidable bool
	Pickable   bool
	Prefab     bool

	// Layer is the draw-order bucket. Lower layers render first. Use SetLayer
	// to move an entity that is already in a scene.
	Layer int

	// Hit box in local units, decoupled from the visual size.
	Width, Height    float64
	OriginX, OriginY float64

	// Transform is owned by the entity. Never nil.
	Transform *Transform

	// Computed by UpdateWorld.
	WorldPosition Vec2
	Bound         Rect
	Radius        float64

	DebugMask DebugMask

	// Per-entity hooks (nil by default).
	OnReady     func()
	OnPause     func()
	OnRemove    func()
	OnCollision func(other *Entity)

	// Hierarchy
	parent   *Entity
	children []*Entity
	scene    *Scene

	// Components
	slots         [MaxComponentKinds]Component
	componentMask uint8
	components    []componentEntry

	// Bound accumulator for Encapsulate.
	bbReset        bool
	x1, y1, x2, y2 float64

	// Bound stored in the spatial index at insert time.
	indexed  Rect
	inIndex  bool
	disposed bool

	// Layer bucket holding the entity, recorded at insert time.
	bucket  int
	inLayer bool
}

// NewEntity creates an alive, visible, active and collidable entity on layer 0
// with a 1x1 hit box.
func NewEntity(name string) *Entity {
	e := &Entity{
		ID:         nextEntityID(),
		Name:       name,
		Alive:      true,
		Visible:    true,
		Active:     true,
		Collidable: true,
		Width:      1,
		Height:     1,
	}
	e.Transform = newTransform(e)
	e.UpdateWorld()
	return e
}

// NewEntityOnLayer creates an entity like NewEntity and assigns its layer.
// Negative layers are clamped to 0.
func NewEntityOnLayer(name string, layer int) *Entity {
	e := NewEntity(name)
	e.Layer = max(layer, 0)
	return e
}

// SetLayer moves e to layer, clamped to 0. An entity already in a scene
// changes draw-order bucket at once; otherwise only the field changes.
func (e *Entity) SetLayer(layer int) {
	layer = max(layer, 0)
	if e.scene == nil || !e.inLayer {
		e.Layer = layer
		return
	}
	e.scene.removeFromLayer(e)
	e.Layer = layer
	e.scene.addToLayer(e)
}

// Scene returns the scene the entity was added or queued to, or nil.
func (e *Entity) Scene() *Scene {
	return e.scene
}

// --- Tree manipulation ---

// AddChild appends child to this entity's children and returns it.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this entity (cycle).
func (e *Entity) AddChild(child *Entity) *Entity {
	if child == nil {
		panic("kestrel: cannot add nil child")
	}
	if debugChecks {
		debugCheckDisposed(e, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, e) {
		panic("kestrel: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	if e.scene != nil {
		child.setScene(e.scene)
	}
	if debugChecks {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e)
	}
	return child
}

// RemoveChild detaches child from this entity without destroying it.
// Panics if child's parent is not e.
func (e *Entity) RemoveChild(child *Entity) {
	if child.parent != e {
		panic("kestrel: child's parent is not this entity")
	}
	e.removeChildByPtr(child)
	child.parent = nil
}

// RemoveFromParent detaches this entity from its parent.
// No-op if this entity has no parent.
func (e *Entity) RemoveFromParent() {
	if e.parent == nil {
		return
	}
	e.parent.RemoveChild(e)
}

// Parent returns the parent entity, or nil for roots.
func (e *Entity) Parent() *Entity {
	return e.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Entity) Children() []*Entity {
	return e.children
}

// NumChildren returns the number of children.
func (e *Entity) NumChildren() int {
	return len(e.children)
}

// IsDisposed returns true if this entity has been destroyed.
func (e *Entity) IsDisposed() bool {
	return e.disposed
}

func (e *Entity) setScene(s *Scene) {
	e.scene = s
	for _, c := range e.children {
		c.setScene(s)
	}
}

func (e *Entity) logger() *slog.Logger {
	if e.scene != nil {
		return e.scene.log
	}
	return Logger()
}

// --- Frame traversal ---

// Update recomputes the world bound, ticks every component in insertion order
// and then recurses into the children. Solid entities are static and skip the
// whole pass.
func (e *Entity) Update(dt float64) {
	if e.Solid {
		return
	}
	e.UpdateWorld()
	for i := range e.components {
		if u := e.components[i].update; u != nil {
			u.OnUpdate(dt)
		}
	}
	for _, c := range e.children {
		c.Update(dt)
	}
}

// Render draws every component and then the children. Visibility culling is
// the caller's job.
func (e *Entity) Render(r Renderer) {
	for i := range e.components {
		if d := e.components[i].draw; d != nil {
			d.OnDraw(r)
		}
	}
	for _, c := range e.children {
		c.Render(r)
	}
}

// Debug draws the overlays selected by DebugMask and recurses into the
// children whatever this entity's own mask is.
func (e *Entity) Debug(r Renderer) {
	if e.DebugMask != 0 {
		e.drawDebug(r)
	}
	for _, c := range e.children {
		c.Debug(r)
	}
}

func (e *Entity) drawDebug(r Renderer) {
	mask := e.DebugMask
	dot := math.Max(e.Radius/4, 0.5)

	box := Rect{
		X:      e.WorldX() + e.OriginX,
		Y:      e.WorldY() + e.OriginY,
		Width:  e.Width,
		Height: e.Height,
	}
	if mask&ShowBox != 0 {
		r.DrawRectLines(box, 1, ColorWhite)
	}
	if mask&ShowOrigin != 0 {
		r.DrawCircle(Vec2{box.X, box.Y}, dot, ColorWhite)
	}

	if !e.Solid {
		if mask&ShowPivot != 0 {
			var p Vec2
			if e.parent == nil {
				p = e.LocalPoint(e.Transform.Pivot.X, e.Transform.Pivot.Y)
			} else {
				p = e.WorldPoint(e.Transform.Pivot.X, e.Transform.Pivot.Y)
			}
			r.DrawCircle(p, dot, ColorLime)
		}
		if mask&ShowTransform != 0 {
			w := e.Width * 2 * e.Transform.Scale.X
			h := e.Height * 2 * e.Transform.Scale.Y
			c := e.rotatedCorners(w, h)
			for i := range c {
				r.DrawLine(c[i], c[(i+1)%4], ColorLime)
			}
		}
	}

	if mask&ShowBound != 0 {
		r.DrawRectLines(e.Bound, 1.5, ColorMagenta)
	}
	if mask&ShowComponents != 0 {
		for i := range e.components {
			if d := e.components[i].debug; d != nil {
				d.OnDebug(r)
			}
		}
	}
}

// --- World bound ---

// UpdateWorld recomputes the world matrix, world position, radius and bound
// of this entity and all its descendants.
func (e *Entity) UpdateWorld() {
	m := e.Transform.WorldMatrix()
	e.WorldPosition = m.Origin()

	w := e.Width * e.Transform.Scale.X
	h := e.Height * e.Transform.Scale.Y
	e.Radius = math.Min(w, h) / 2

	e.bbReset = true
	for _, p := range e.rotatedCorners(w, h) {
		e.Encapsulate(p.X, p.Y)
	}

	for _, c := range e.children {
		c.UpdateWorld()
	}
}

// rotatedCorners returns the corners (0,0), (w,0), (w,h), (0,h) rotated by the
// negated world angle around the world position.
func (e *Entity) rotatedCorners(w, h float64) [4]Vec2 {
	ox, oy := e.WorldPosition.X, e.WorldPosition.Y
	corners := [4]Vec2{{0, 0}, {w, 0}, {w, h}, {0, h}}
	angle := e.WorldAngle()
	if angle == 0 {
		for i := range corners {
			corners[i] = Vec2{corners[i].X + ox, corners[i].Y + oy}
		}
		return corners
	}
	sin, cos := math.Sincos(DegToRad(-angle))
	for i, c := range corners {
		corners[i] = Vec2{
			X: c.X*cos - c.Y*sin + ox,
			Y: c.X*sin + c.Y*cos + oy,
		}
	}
	return corners
}

// Encapsulate folds (x, y) into the bound. The first call after UpdateWorld
// only seeds the accumulator with the point and leaves Bound untouched.
func (e *Entity) Encapsulate(x, y float64) {
	if e.bbReset {
		e.x1, e.x2 = x, x
		e.y1, e.y2 = y, y
		e.bbReset = false
		return
	}
	e.x1 = math.Min(e.x1, x)
	e.x2 = math.Max(e.x2, x)
	e.y1 = math.Min(e.y1, y)
	e.y2 = math.Max(e.y2, y)
	e.Bound = Rect{X: e.x1, Y: e.y1, Width: e.x2 - e.x1, Height: e.y2 - e.y1}
}

// WorldAngle returns the parent's rotation minus this entity's rotation when
// parented, otherwise the entity's own rotation.
func (e *Entity) WorldAngle() float64 {
	if e.parent != nil {
		return e.parent.Transform.Rotation - e.Transform.Rotation
	}
	return e.Transform.Rotation
}

// WorldX accumulates X up the parent chain by subtraction.
func (e *Entity) WorldX() float64 {
	if e.parent != nil {
		return e.parent.WorldX() - e.Transform.Position.X
	}
	return e.Transform.Position.X
}

// WorldY accumulates Y up the parent chain by addition.
func (e *Entity) WorldY() float64 {
	if e.parent != nil {
		return e.parent.WorldY() + e.Transform.Position.Y
	}
	return e.Transform.Position.Y
}

// WorldOriginX sums OriginX up the parent chain.
func (e *Entity) WorldOriginX() float64 {
	if e.parent != nil {
		return e.parent.WorldOriginX() + e.OriginX
	}
	return e.OriginX
}

// WorldOriginY sums OriginY up the parent chain.
func (e *Entity) WorldOriginY() float64 {
	if e.parent != nil {
		return e.parent.WorldOriginY() + e.OriginY
	}
	return e.OriginY
}

// WorldPoint maps a local point through the last computed world matrix.
func (e *Entity) WorldPoint(x, y float64) Vec2 {
	return e.Transform.world.TransformPoint(x, y)
}

// LocalPoint maps a point through the last computed local matrix.
func (e *Entity) LocalPoint(x, y float64) Vec2 {
	return e.Transform.local.TransformPoint(x, y)
}

// ContainsPoint reports whether the world point p falls inside the rotated
// hit box, testing against the last computed world matrix.
func (e *Entity) ContainsPoint(p Vec2) bool {
	inv, ok := e.Transform.world.Invert()
	if !ok {
		return false
	}
	q := inv.TransformPoint(p.X, p.Y)
	return q.X >= 0 && q.Y >= 0 && q.X <= e.Width && q.Y <= e.Height
}

// CenterPivot moves the pivot to the middle of the sprite clip, or of the hit
// box when the entity has no Sprite.
func (e *Entity) CenterPivot() {
	if s := GetComponent[*Sprite](e); s != nil {
		e.Transform.Pivot = Vec2{s.Clip.Width / 2, s.Clip.Height / 2}
		return
	}
	e.Transform.Pivot = Vec2{e.Width / 2, e.Height / 2}
}

// CenterOrigin derives the hit box from the sprite clip when the entity has a
// Sprite, otherwise moves the origin to the middle of the hit box.
func (e *Entity) CenterOrigin() {
	if s := GetComponent[*Sprite](e); s != nil {
		e.Width = math.Trunc(s.Clip.Width/2) * e.Transform.Scale.X
		e.Height = math.Trunc(s.Clip.Height/2) * e.Transform.Scale.Y
		e.OriginX = e.Width/2 - math.Trunc(e.Width/2)
		e.OriginY = e.Height/2 - math.Trunc(e.Height/2)
		return
	}
	e.OriginX = e.Width / 2
	e.OriginY = e.Height / 2
}

// SetDebug replaces the debug overlay mask.
func (e *Entity) SetDebug(mask DebugMask) {
	e.DebugMask = mask
}

// SetSize sets the hit box size.
func (e *Entity) SetSize(w, h float64) {
	e.Width, e.Height = w, h
}

// --- Hooks ---

func (e *Entity) ready() {
	if e.OnReady != nil {
		e.OnReady()
	}
}

func (e *Entity) pause() {
	if e.OnPause != nil {
		e.OnPause()
	}
}

func (e *Entity) removed() {
	if e.OnRemove != nil {
		e.OnRemove()
	}
}

func (e *Entity) collided(other *Entity) {
	if e.OnCollision != nil {
		e.OnCollision(other)
	}
}

// --- Positional queries ---

// PlaceFree reports whether the entity could stand at (x, y) without touching
// a solid entity. Always true outside a scene.
func (e *Entity) PlaceFree(x, y float64) bool {
	if e.scene == nil {
		return true
	}
	return e.scene.PlaceFree(e, x, y)
}

// PlaceMeeting reports whether the entity at (x, y) would touch an entity
// named name. Always false outside a scene.
func (e *Entity) PlaceMeeting(x, y float64, name string) bool {
	if e.scene == nil {
		return false
	}
	return e.scene.PlaceMeeting(e, x, y, name)
}

// PlaceMeetingLayer reports whether the entity at (x, y) would touch an
// entity on layer. Always false outside a scene.
func (e *Entity) PlaceMeetingLayer(x, y float64, layer int) bool {
	if e.scene == nil {
		return false
	}
	return e.scene.PlaceMeetingLayer(e, x, y, layer)
}

// CollideWith tests the hit box placed at (x, y) against target's hit box.
// The position is moved to (x, y) for the test and restored afterwards. On
// overlap OnCollision fires on both entities.
func (e *Entity) CollideWith(target *Entity, x, y float64) bool {
	if e.scene == nil || target == nil || target == e {
		return false
	}

	pos := &e.Transform.Position
	savedX, savedY := pos.X, pos.Y
	pos.X, pos.Y = x, y

	ax := x - e.WorldOriginX()
	ay := y - e.WorldOriginY()
	bx := target.WorldX() - target.WorldOriginX()
	by := target.WorldY() - target.WorldOriginY()
	hit := ax+e.Width > bx && ay+e.Height > by &&
		ax < bx+target.Width && ay < by+target.Height

	pos.X, pos.Y = savedX, savedY
	if hit {
		e.collided(target)
		target.collided(e)
	}
	return hit
}

// --- Disposal ---

// Destroy calls OnDestroy on every component in insertion order, destroys all
// descendants and detaches the entity from its parent. Entities that belong to
// a scene should be released through Scene.RemoveGameObject so the spatial
// index drops them first.
func (e *Entity) Destroy() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.destroy()
}

func (e *Entity) destroy() {
	for i := range e.components {
		if d := e.components[i].destroy; d != nil {
			d.OnDestroy()
		}
	}
	for _, c := range e.children {
		c.parent = nil
		c.destroy()
	}
	e.disposed = true
	e.Alive = false
	e.children = nil
	e.components = nil
	e.slots = [MaxComponentKinds]Component{}
	e.componentMask = 0
	e.parent = nil
	e.scene = nil
	e.OnReady = nil
	e.OnPause = nil
	e.OnRemove = nil
	e.OnCollision = nil
}

// --- Helpers ---

// isAncestor reports whether candidate is e or one of its ancestors.
func isAncestor(candidate, e *Entity) bool {
	for p := e; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing child.parent.
func (e *Entity) removeChildByPtr(child *Entity) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}

package kestrel

// Collider is a component that takes part in Scene.Collision.
type Collider interface {
	Component
	// IsColliding reports whether this shape overlaps other's shape.
	IsColliding(other Collider) bool
	// OnCollide notifies the owning entity that it touched other's entity.
	OnCollide(other Collider)
}

// BoxCollider is an axis-aligned box placed relative to the entity's
// WorldX/WorldY.
type BoxCollider struct {
	BaseComponent
	Rect Rect
}

// NewBoxCollider creates a box at offset (x, y) of size w by h.
func NewBoxCollider(x, y, w, h float64) *BoxCollider {
	return &BoxCollider{Rect: Rect{X: x, Y: y, Width: w, Height: h}}
}

// OnInit marks the owning entity collidable.
func (b *BoxCollider) OnInit() {
	b.entity.Collidable = true
}

// WorldPosition returns the top-left corner of the box in world space.
func (b *BoxCollider) WorldPosition() Vec2 {
	return Vec2{b.entity.WorldX() + b.Rect.X, b.entity.WorldY() + b.Rect.Y}
}

// WorldRect returns the box in world space.
func (b *BoxCollider) WorldRect() Rect {
	p := b.WorldPosition()
	return Rect{X: p.X, Y: p.Y, Width: b.Rect.Width, Height: b.Rect.Height}
}

// IsColliding tests this box against a box or circle.
func (b *BoxCollider) IsColliding(other Collider) bool {
	switch o := other.(type) {
	case *BoxCollider:
		return b.WorldRect().Intersects(o.WorldRect())
	case *CircleCollider:
		return b.WorldRect().IntersectsCircle(o.WorldPosition(), o.Radius)
	}
	return false
}

// OnCollide fires the owning entity's OnCollision hook.
func (b *BoxCollider) OnCollide(other Collider) {
	b.entity.collided(other.componentBase().entity)
}

// OnDebug outlines the box.
func (b *BoxCollider) OnDebug(r Renderer) {
	r.DrawRectLines(b.WorldRect(), 2, ColorLime)
}

// CircleCollider is a circle centered relative to the entity's WorldX/WorldY.
type CircleCollider struct {
	BaseComponent
	Center Vec2
	Radius float64
}

// NewCircleCollider creates a circle at offset (x, y) with the given radius.
func NewCircleCollider(x, y, radius float64) *CircleCollider {
	return &CircleCollider{Center: Vec2{x, y}, Radius: radius}
}

// OnInit marks the owning entity collidable.
func (c *CircleCollider) OnInit() {
	c.entity.Collidable = true
}

// WorldPosition returns the circle center in world space.
func (c *CircleCollider) WorldPosition() Vec2 {
	return Vec2{c.entity.WorldX() + c.Center.X, c.entity.WorldY() + c.Center.Y}
}

// IsColliding tests this circle against a box or circle.
func (c *CircleCollider) IsColliding(other Collider) bool {
	switch o := other.(type) {
	case *BoxCollider:
		return o.WorldRect().IntersectsCircle(c.WorldPosition(), c.Radius)
	case *CircleCollider:
		return circlesOverlap(c.WorldPosition(), c.Radius, o.WorldPosition(), o.Radius)
	}
	return false
}

// OnCollide fires the owning entity's OnCollision hook.
func (c *CircleCollider) OnCollide(other Collider) {
	c.entity.collided(other.componentBase().entity)
}

// OnDebug outlines the circle.
func (c *CircleCollider) OnDebug(r Renderer) {
	r.DrawCircleLines(c.WorldPosition(), c.Radius, ColorRed)
}

// colliderPair picks the shapes to test for a and b, preferring box-box, then
// circle-circle, box-circle and circle-box. ok is false when the pair has no
// matching shapes.
func colliderPair(a, b *Entity) (ca, cb Collider, ok bool) {
	boxA, boxB := GetComponent[*BoxCollider](a), GetComponent[*BoxCollider](b)
	circA, circB := GetComponent[*CircleCollider](a), GetComponent[*CircleCollider](b)
	switch {
	case boxA != nil && boxB != nil:
		return boxA, boxB, true
	case circA != nil && circB != nil:
		return circA, circB, true
	case boxA != nil && circB != nil:
		return boxA, circB, true
	case circA != nil && boxB != nil:
		return circA, boxB, true
	}
	return nil, nil, false
}

package kestrel

import "math"

// Transform holds an entity's local placement. Every Entity owns exactly one.
//
// Rotation is in degrees; positive values turn counter-clockwise on screen.
// Skew is in radians. Scale defaults to (1, 1).
type Transform struct {
	Position         Vec2
	Scale            Vec2
	Pivot            Vec2
	Skew             Vec2
	Rotation         float64
	PreviousPosition Vec2

	entity *Entity

	// Last computed matrices.
	local Matrix2D
	world Matrix2D
}

func newTransform(e *Entity) *Transform {
	return &Transform{
		Scale:  Vec2{1, 1},
		entity: e,
		local:  IdentityMatrix,
		world:  IdentityMatrix,
	}
}

// Entity returns the entity that owns t.
func (t *Transform) Entity() *Entity {
	return t.entity
}

// LocalMatrix computes the local affine matrix from the transform fields and
// caches it.
//
// Without skew the matrix is built in closed form. With skew it is built as
//
//	Identity -> Scale -> Skew -> Rotate -> Translate(Position)
//
// and the translation is then re-derived so the pivot lands on Position.
func (t *Transform) LocalMatrix() Matrix2D {
	sx, sy := t.Scale.X, t.Scale.Y
	px, py := t.Pivot.X, t.Pivot.Y
	x, y := t.Position.X, t.Position.Y

	if t.Skew.X == 0 && t.Skew.Y == 0 {
		if t.Rotation == 0 {
			t.local = Matrix2D{A: sx, D: sy, Tx: x - px*sx, Ty: y - py*sy}
			return t.local
		}
		sin, cos := math.Sincos(t.Rotation * radNegative)
		a := sx * cos
		b := sx * sin
		c := sy * -sin
		d := sy * cos
		t.local = Matrix2D{
			A: a, B: b, C: c, D: d,
			Tx: x - px*a - py*c,
			Ty: y - px*b - py*d,
		}
		return t.local
	}

	m := IdentityMatrix
	m.Scale(sx, sy)
	m.Skew(t.Skew.X, t.Skew.Y)
	m.Rotate(t.Rotation * radNegative)
	m.Translate(x, y)
	if px != 0 || py != 0 {
		m.Tx = x - m.A*px - m.C*py
		m.Ty = y - m.B*px - m.D*py
	}
	t.local = m
	return t.local
}

// WorldMatrix composes the local matrix with the parent chain. The parent's
// world matrix is recomputed by a fresh recursive call on every invocation, so
// it reflects the current fields of every ancestor even mid-frame.
func (t *Transform) WorldMatrix() Matrix2D {
	local := t.LocalMatrix()
	if t.entity == nil || t.entity.parent == nil {
		t.world = local
		return local
	}
	t.world = MatrixMult(local, t.entity.parent.Transform.WorldMatrix())
	return t.world
}

// CachedLocal returns the local matrix from the last LocalMatrix call.
func (t *Transform) CachedLocal() Matrix2D {
	return t.local
}

// CachedWorld returns the world matrix from the last WorldMatrix call.
func (t *Transform) CachedWorld() Matrix2D {
	return t.world
}

// --- Setters ---

// SetPosition moves the transform, remembering the previous position.
func (t *Transform) SetPosition(x, y float64) {
	t.PreviousPosition = t.Position
	t.Position = Vec2{x, y}
}

// SetScale sets both scale factors.
func (t *Transform) SetScale(sx, sy float64) {
	t.Scale = Vec2{sx, sy}
}

// SetRotation sets the rotation in degrees.
func (t *Transform) SetRotation(deg float64) {
	t.Rotation = deg
}

// SetPivot sets the pivot in local units.
func (t *Transform) SetPivot(px, py float64) {
	t.Pivot = Vec2{px, py}
}

// SetSkew sets the skew angles in radians.
func (t *Transform) SetSkew(kx, ky float64) {
	t.Skew = Vec2{kx, ky}
}

// TurnTo eases the rotation towards the point (x, y). speed is the lerp factor
// per call and angleDiff is added to the target angle.
func (t *Transform) TurnTo(x, y, speed, angleDiff float64) {
	target := AngleTo(t.Position.X, t.Position.Y, x, y) + angleDiff
	t.Rotation = LerpAngleDegrees(t.Rotation, target, speed)
}

// PointTo eases the rotation towards the cursor reported by in.
func (t *Transform) PointTo(in Input, speed, angleDiff float64) {
	if in == nil {
		return
	}
	p := in.MousePosition()
	t.TurnTo(p.X, p.Y, speed, angleDiff)
}

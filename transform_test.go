package kestrel

import (
	"math"
	"testing"
)

// --- LocalMatrix ---

func TestLocalMatrixIdentity(t *testing.T) {
	e := NewEntity("test")
	assertMatrix(t, "local", e.Transform.LocalMatrix(), IdentityMatrix)
}

func TestLocalMatrixTranslation(t *testing.T) {
	e := NewEntity("test")
	e.Transform.SetPosition(100, 50)
	assertMatrix(t, "local", e.Transform.LocalMatrix(), Matrix2D{A: 1, D: 1, Tx: 100, Ty: 50})
}

func TestLocalMatrixScaleAndPivot(t *testing.T) {
	e := NewEntity("test")
	e.Transform.SetPosition(100, 100)
	e.Transform.SetScale(2, 3)
	e.Transform.SetPivot(10, 20)
	// Tx = x - px*sx, Ty = y - py*sy
	assertMatrix(t, "local", e.Transform.LocalMatrix(), Matrix2D{A: 2, D: 3, Tx: 80, Ty: 40})
}

func TestLocalMatrixRotationSign(t *testing.T) {
	e := NewEntity("test")
	e.Transform.SetRotation(90)
	m := e.Transform.LocalMatrix()
	// Positive degrees turn counter-clockwise on a y-down screen, so the
	// local x axis points up.
	assertVec(t, "x axis", m.TransformPoint(1, 0), Vec2{0, -1})
	assertVec(t, "y axis", m.TransformPoint(0, 1), Vec2{1, 0})
}

func TestLocalMatrixPivotStaysOnPosition(t *testing.T) {
	tests := []struct {
		name string
		rot  float64
		skew Vec2
	}{
		{"rotation", 37, Vec2{}},
		{"skew", 0, Vec2{0.2, 0}},
		{"rotation and skew", 120, Vec2{0.1, -0.3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntity("test")
			e.Transform.SetPosition(40, 60)
			e.Transform.SetScale(1.5, 0.5)
			e.Transform.SetPivot(8, 4)
			e.Transform.SetRotation(tt.rot)
			e.Transform.SetSkew(tt.skew.X, tt.skew.Y)
			m := e.Transform.LocalMatrix()
			assertVec(t, "pivot", m.TransformPoint(8, 4), Vec2{40, 60})
		})
	}
}

func TestLocalMatrixZeroRotationMatchesSkewPath(t *testing.T) {
	a := NewEntity("closed")
	a.Transform.SetPosition(12, 34)
	a.Transform.SetScale(2, 0.5)
	a.Transform.SetPivot(3, 5)

	// A negligible skew forces the composed path.
	b := NewEntity("composed")
	b.Transform.SetPosition(12, 34)
	b.Transform.SetScale(2, 0.5)
	b.Transform.SetPivot(3, 5)
	b.Transform.SetSkew(1e-15, 0)

	ma, mb := a.Transform.LocalMatrix(), b.Transform.LocalMatrix()
	if math.Abs(ma.A-mb.A) > 1e-9 || math.Abs(ma.Tx-mb.Tx) > 1e-9 || math.Abs(ma.Ty-mb.Ty) > 1e-9 {
		t.Errorf("closed form %v differs from composed %v", ma, mb)
	}
}

func TestLocalMatrixIsCached(t *testing.T) {
	e := NewEntity("test")
	e.Transform.SetPosition(5, 5)
	m := e.Transform.LocalMatrix()
	e.Transform.SetPosition(9, 9)
	assertMatrix(t, "cached", e.Transform.CachedLocal(), m)
}

// --- WorldMatrix ---

func TestWorldMatrixRootEqualsLocal(t *testing.T) {
	e := NewEntity("root")
	e.Transform.SetPosition(30, 40)
	e.Transform.SetRotation(25)
	e.Transform.SetScale(2, 2)
	e.Transform.SetPivot(4, 4)
	assertMatrix(t, "world", e.Transform.WorldMatrix(), e.Transform.LocalMatrix())
}

func TestWorldMatrixComposesParentChain(t *testing.T) {
	root := NewEntity("root")
	root.Transform.SetPosition(100, 50)
	root.Transform.SetRotation(30)

	mid := NewEntity("mid")
	mid.Transform.SetPosition(20, 0)
	mid.Transform.SetScale(2, 2)
	root.AddChild(mid)

	leaf := NewEntity("leaf")
	leaf.Transform.SetPosition(5, 5)
	leaf.Transform.SetRotation(-45)
	mid.AddChild(leaf)

	want := MatrixMult(
		leaf.Transform.LocalMatrix(),
		MatrixMult(mid.Transform.LocalMatrix(), root.Transform.LocalMatrix()),
	)
	assertMatrix(t, "leaf world", leaf.Transform.WorldMatrix(), want)
}

func TestWorldMatrixReadsCurrentParentFields(t *testing.T) {
	parent := NewEntity("parent")
	child := NewEntity("child")
	parent.AddChild(child)
	child.Transform.SetPosition(10, 0)

	_ = child.Transform.WorldMatrix()
	parent.Transform.SetPosition(100, 0)

	// No UpdateWorld on the parent: the recursion still sees the move.
	assertVec(t, "origin", child.Transform.WorldMatrix().Origin(), Vec2{110, 0})
}

// --- Bound ---

func TestBoundUnrotated(t *testing.T) {
	e := NewEntity("e")
	e.Transform.SetPosition(10, 10)
	e.SetSize(20, 20)
	e.UpdateWorld()
	assertRect(t, "bound", e.Bound, Rect{X: 10, Y: 10, Width: 20, Height: 20})
}

func TestBoundUnrotatedScaled(t *testing.T) {
	e := NewEntity("e")
	e.Transform.SetPosition(10, 10)
	e.Transform.SetScale(2, 1)
	e.SetSize(20, 20)
	e.UpdateWorld()
	assertRect(t, "bound", e.Bound, Rect{X: 10, Y: 10, Width: 40, Height: 20})
	assertNear(t, "radius", e.Radius, 10)
}

func TestBoundChildRotatedQuarterTurn(t *testing.T) {
	parent := NewEntity("parent")
	e := NewEntity("e")
	parent.AddChild(e)
	e.Transform.SetPosition(10, 10)
	e.Transform.SetPivot(10, 10)
	e.Transform.SetRotation(90)
	e.SetSize(20, 20)
	parent.UpdateWorld()

	assertNear(t, "WorldAngle", e.WorldAngle(), -90)
	assertVec(t, "WorldPosition", e.WorldPosition, Vec2{0, 20})
	// Corners are turned by +90 around the world position.
	assertRect(t, "bound", e.Bound, Rect{X: -20, Y: 20, Width: 20, Height: 20})
}

func TestEncapsulateFirstPointOnlySeeds(t *testing.T) {
	e := NewEntity("e")
	e.Bound = Rect{X: 1, Y: 2, Width: 3, Height: 4}
	e.bbReset = true
	e.Encapsulate(50, 50)
	assertRect(t, "after seed", e.Bound, Rect{X: 1, Y: 2, Width: 3, Height: 4})
	e.Encapsulate(60, 70)
	assertRect(t, "after second", e.Bound, Rect{X: 50, Y: 50, Width: 10, Height: 20})
}

// --- Setters and helpers ---

func TestSetPositionRemembersPrevious(t *testing.T) {
	e := NewEntity("e")
	e.Transform.SetPosition(1, 2)
	e.Transform.SetPosition(3, 4)
	assertVec(t, "previous", e.Transform.PreviousPosition, Vec2{1, 2})
	assertVec(t, "position", e.Transform.Position, Vec2{3, 4})
}

func TestTransformEntityBackReference(t *testing.T) {
	e := NewEntity("e")
	if e.Transform.Entity() != e {
		t.Error("Transform.Entity() does not return its owner")
	}
	if e.Transform.Scale != (Vec2{1, 1}) {
		t.Errorf("default Scale = %v, want (1,1)", e.Transform.Scale)
	}
}

func TestTurnToEasesTowardsTarget(t *testing.T) {
	e := NewEntity("e")
	e.Transform.TurnTo(0, -10, 1, 0)
	assertNear(t, "snap", e.Transform.Rotation, 90)

	e.Transform.SetRotation(0)
	e.Transform.TurnTo(0, -10, 0.5, 0)
	assertNear(t, "half", e.Transform.Rotation, 45)
}

func TestPointToFollowsCursor(t *testing.T) {
	in := NewVirtualInput()
	in.SetMousePosition(Vec2{-10, 0})
	e := NewEntity("e")
	e.Transform.PointTo(in, 1, 0)
	assertNear(t, "rotation", e.Transform.Rotation, 180)

	e.Transform.PointTo(nil, 1, 0)
	assertNear(t, "nil input", e.Transform.Rotation, 180)
}

package kestrel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix2D is a 2x3 affine matrix in row-vector form:
//
//	            | A  B |
//	[x y 1]  *  | C  D |  =  [A*x + C*y + Tx,  B*x + D*y + Ty]
//	            | Tx Ty|
//
// Multiplying curr by m yields a matrix that applies curr first and m second.
type Matrix2D struct {
	A, B, C, D, Tx, Ty float64
}

// IdentityMatrix is the identity affine matrix.
var IdentityMatrix = Matrix2D{A: 1, D: 1}

// Identity resets m to the identity matrix.
func (m *Matrix2D) Identity() {
	*m = IdentityMatrix
}

// Set assigns all six components.
func (m *Matrix2D) Set(a, b, c, d, tx, ty float64) {
	m.A, m.B, m.C, m.D, m.Tx, m.Ty = a, b, c, d, tx, ty
}

// Concat appends o to m in place, so m applies its old map first and o second.
func (m *Matrix2D) Concat(o Matrix2D) {
	*m = MatrixMult(*m, o)
}

// MatrixMult composes two affine maps: the result applies curr, then m.
// Order matters; MatrixMult(a, b) != MatrixMult(b, a) in general.
func MatrixMult(curr, m Matrix2D) Matrix2D {
	return Matrix2D{
		A:  curr.A*m.A + curr.B*m.C,
		B:  curr.A*m.B + curr.B*m.D,
		C:  curr.C*m.A + curr.D*m.C,
		D:  curr.C*m.B + curr.D*m.D,
		Tx: curr.Tx*m.A + curr.Ty*m.C + m.Tx,
		Ty: curr.Tx*m.B + curr.Ty*m.D + m.Ty,
	}
}

// Rotate appends a rotation by angle radians.
func (m *Matrix2D) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	m.A, m.B = m.A*cos-m.B*sin, m.A*sin+m.B*cos
	m.C, m.D = m.C*cos-m.D*sin, m.C*sin+m.D*cos
	m.Tx, m.Ty = m.Tx*cos-m.Ty*sin, m.Tx*sin+m.Ty*cos
}

// Scale appends a non-uniform scale.
func (m *Matrix2D) Scale(sx, sy float64) {
	m.A *= sx
	m.B *= sy
	m.C *= sx
	m.D *= sy
	m.Tx *= sx
	m.Ty *= sy
}

// Translate appends a translation.
func (m *Matrix2D) Translate(x, y float64) {
	m.Tx += x
	m.Ty += y
}

// Skew appends a skew by skewX and skewY radians.
func (m *Matrix2D) Skew(skewX, skewY float64) {
	sinX, cosX := math.Sincos(skewX)
	sinY, cosY := math.Sincos(skewY)
	m.Set(
		m.A*cosY-m.B*sinX,
		m.A*sinY+m.B*cosX,
		m.C*cosY-m.D*sinX,
		m.C*sinY+m.D*cosX,
		m.Tx*cosY-m.Ty*sinX,
		m.Tx*sinY+m.Ty*cosX,
	)
}

// TransformPoint applies m to the point (x, y).
func (m Matrix2D) TransformPoint(x, y float64) Vec2 {
	return Vec2{m.A*x + m.C*y + m.Tx, m.B*x + m.D*y + m.Ty}
}

// Origin returns where m maps the point (0, 0).
func (m Matrix2D) Origin() Vec2 {
	return Vec2{m.Tx, m.Ty}
}

// Mat3 returns m as a column-major 3x3 matrix acting on column vectors.
func (m Matrix2D) Mat3() mgl64.Mat3 {
	return mgl64.Mat3{
		m.A, m.B, 0,
		m.C, m.D, 0,
		m.Tx, m.Ty, 1,
	}
}

// Matrix2DFromMat3 drops the projective row of a 3x3 matrix.
func Matrix2DFromMat3(m mgl64.Mat3) Matrix2D {
	return Matrix2D{A: m[0], B: m[1], C: m[3], D: m[4], Tx: m[6], Ty: m[7]}
}

// Invert returns the inverse of m. ok is false when m is singular, for
// example after a zero scale.
func (m Matrix2D) Invert() (inv Matrix2D, ok bool) {
	m3 := m.Mat3()
	if math.Abs(m3.Det()) < 1e-12 {
		return Matrix2D{}, false
	}
	return Matrix2DFromMat3(m3.Inv()), true
}

// --- Angle helpers ---

// radNegative converts degrees to radians with the engine's rotation sign:
// positive degrees turn counter-clockwise on a y-down screen.
const radNegative = math.Pi / -180

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// AngleTo returns the angle in degrees from (x1, y1) towards (x2, y2),
// measured with the engine's rotation sign and normalized to [0, 360).
func AngleTo(x1, y1, x2, y2 float64) float64 {
	a := -RadToDeg(math.Atan2(y2-y1, x2-x1))
	if a < 0 {
		a += 360
	}
	return a
}

// LerpAngleDegrees interpolates from a to b (both in [0, 360)) along the
// shorter arc.
func LerpAngleDegrees(a, b, t float64) float64 {
	diff := b - a
	switch {
	case diff < -180:
		b += 360
		r := lerp(a, b, t)
		if r >= 360 {
			r -= 360
		}
		return r
	case diff > 180:
		b -= 360
		r := lerp(a, b, t)
		if r < 0 {
			r += 360
		}
		return r
	default:
		return lerp(a, b, t)
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

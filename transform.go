package anim2d

import "math"

// Affine is a 2D affine matrix in [a, b, c, d, tx, ty] layout:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// Identity is the identity affine matrix.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Affine {
	return Affine{1, 0, 0, 1, tx, ty}
}

// Rotate returns a counterclockwise rotation about the origin by theta radians.
func Rotate(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// RotateAbout returns a rotation by theta about the point (x, y).
func RotateAbout(theta, x, y float64) Affine {
	return Translate(x, y).Mul(Rotate(theta)).Mul(Translate(-x, -y))
}

// Mul returns m * c: c is applied first, then m.
func (m Affine) Mul(c Affine) Affine {
	return Affine{
		m[0]*c[0] + m[2]*c[1],
		m[1]*c[0] + m[3]*c[1],
		m[0]*c[2] + m[2]*c[3],
		m[1]*c[2] + m[3]*c[3],
		m[0]*c[4] + m[2]*c[5] + m[4],
		m[1]*c[4] + m[3]*c[5] + m[5],
	}
}

// Invert returns the inverse of m, or Identity if m is singular.
func (m Affine) Invert() Affine {
	det := m.Det()
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Det returns the determinant of the linear part of m.
func (m Affine) Det() float64 {
	return m[0]*m[3] - m[2]*m[1]
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ApplyVector transforms the direction (dx, dy), ignoring translation.
func (m Affine) ApplyVector(dx, dy float64) (float64, float64) {
	return m[0]*dx + m[2]*dy, m[1]*dx + m[3]*dy
}

// MeanScale returns the geometric mean of the scale factors of m. Stroke
// widths and font sizes given in graph units are multiplied by it.
func (m Affine) MeanScale() float64 {
	return math.Sqrt(math.Abs(m.Det()))
}

// placementTransform composes the draw transform of a placed object:
//
//	Translate(-refX, -refY) -> Rotate(angle) -> Translate(x, y)
func placementTransform(x, y, angle, refX, refY float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{
		cos, sin, -sin, cos,
		x - (cos*refX - sin*refY),
		y - (sin*refX + cos*refY),
	}
}

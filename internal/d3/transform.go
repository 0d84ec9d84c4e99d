package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform represents a 3D affine transformation.
// The zero value of Transform is the identity transform.
type Transform struct {
	// Diagonal elements are stored with 1 subtracted so that the zero
	// value is the identity:
	//  d00 = x00-1, d11 = x11-1, d22 = x22-1
	// The projective row is always (0, 0, 0, 1) and is not stored.
	d00, x01, x02, x03 float64
	x10, d11, x12, x13 float64
	x20, x21, d22, x23 float64
}

// Transform applies the Transform to the argument vector
// and returns the result.
func (t Transform) Transform(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: (t.d00+1)*v.X + t.x01*v.Y + t.x02*v.Z + t.x03,
		Y: t.x10*v.X + (t.d11+1)*v.Y + t.x12*v.Z + t.x13,
		Z: t.x20*v.X + t.x21*v.Y + (t.d22+1)*v.Z + t.x23,
	}
}

// ComposeTransform creates a new transform for a given translation to
// positon, scaling vector scale and quaternion rotation, applied in the
// order scale, rotate, translate.
// The identity Transform is constructed with
//  ComposeTransform(Vec{}, Vec{1,1,1}, Rotation{Real: 1})
func ComposeTransform(position, scale r3.Vec, q r3.Rotation) Transform {
	x2 := q.Imag + q.Imag
	y2 := q.Jmag + q.Jmag
	z2 := q.Kmag + q.Kmag
	xx := q.Imag * x2
	yy := q.Jmag * y2
	zz := q.Kmag * z2
	xy := q.Imag * y2
	xz := q.Imag * z2
	yz := q.Jmag * z2
	wx := q.Real * x2
	wy := q.Real * y2
	wz := q.Real * z2

	var t Transform
	t.d00 = (1-(yy+zz))*scale.X - 1
	t.x10 = (xy + wz) * scale.X
	t.x20 = (xz - wy) * scale.X

	t.x01 = (xy - wz) * scale.Y
	t.d11 = (1-(xx+zz))*scale.Y - 1
	t.x21 = (yz + wx) * scale.Y

	t.x02 = (xz + wy) * scale.Z
	t.x12 = (yz - wx) * scale.Z
	t.d22 = (1-(xx+yy))*scale.Z - 1

	t.x03 = position.X
	t.x13 = position.Y
	t.x23 = position.Z
	return t
}

// Translate adds Vec to the positional Transform.
func (t Transform) Translate(v r3.Vec) Transform {
	t.x03 += v.X
	t.x13 += v.Y
	t.x23 += v.Z
	return t
}

// ScaleUniform returns the transform followed by a uniform scaling of factor k
// about origin.
func (t Transform) ScaleUniform(origin r3.Vec, k float64) Transform {
	s := Transform{d00: k - 1, d11: k - 1, d22: k - 1}
	s = s.Translate(r3.Scale(1-k, origin))
	return s.Mul(t)
}

// Mul multiplies the Transforms t and b and returns the result.
// The result applies b first and then t.
func (t Transform) Mul(b Transform) Transform {
	if t == (Transform{}) {
		return b
	}
	if b == (Transform{}) {
		return t
	}
	a := t.rows()
	c := b.rows()
	var m [3][4]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			m[i][j] = a[i][0]*c[0][j] + a[i][1]*c[1][j] + a[i][2]*c[2][j]
		}
		m[i][3] += a[i][3]
	}
	return fromRows(m)
}

// Det returns the determinant of the linear part of the Transform.
func (t Transform) Det() float64 {
	m := t.rows()
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inv returns the inverse of the transform such that
// t.Inv().Mul(t) is the identity Transform.
// If the linear part is singular then Inv returns ok=false.
func (t Transform) Inv() (inv Transform, ok bool) {
	if t == (Transform{}) {
		return t, true
	}
	det := t.Det()
	if math.Abs(det) < 1e-16 {
		return Transform{}, false
	}
	m := t.rows()
	d := 1 / det
	var r [3][4]float64
	r[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * d
	r[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * d
	r[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * d
	r[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * d
	r[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * d
	r[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * d
	r[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * d
	r[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * d
	r[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * d
	for i := 0; i < 3; i++ {
		r[i][3] = -(r[i][0]*m[0][3] + r[i][1]*m[1][3] + r[i][2]*m[2][3])
	}
	return fromRows(r), true
}

// Equals tests the equality of the Transforms to within a tolerance.
func (t Transform) Equals(b Transform, tolerance float64) bool {
	x, y := t.rows(), b.rows()
	for i := range x {
		for j := range x[i] {
			if math.Abs(x[i][j]-y[i][j]) > tolerance {
				return false
			}
		}
	}
	return true
}

func (t Transform) rows() [3][4]float64 {
	return [3][4]float64{
		{t.d00 + 1, t.x01, t.x02, t.x03},
		{t.x10, t.d11 + 1, t.x12, t.x13},
		{t.x20, t.x21, t.d22 + 1, t.x23},
	}
}

func fromRows(m [3][4]float64) Transform {
	return Transform{
		d00: m[0][0] - 1, x01: m[0][1], x02: m[0][2], x03: m[0][3],
		x10: m[1][0], d11: m[1][1] - 1, x12: m[1][2], x13: m[1][3],
		x20: m[2][0], x21: m[2][1], d22: m[2][2] - 1, x23: m[2][3],
	}
}

package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// Cross returns the z component of the 3d cross product of a and b.
func Cross(a, b r2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Lerp interpolates linearly from a to b, t = [0,1]
func Lerp(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// MirrorX reflects v about the vertical line x = mid.
func MirrorX(v r2.Vec, mid float64) r2.Vec {
	return r2.Vec{X: 2*mid - v.X, Y: v.Y}
}

type Set []r2.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r2.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r2.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Bounds returns the bounding box of the set. Set must not be empty.
func (a Set) Bounds() Box {
	return Box{Min: a.Min(), Max: a.Max()}
}

// SignedArea returns the shoelace area of the closed loop described by the set.
// Counter clockwise loops have positive area.
func (a Set) SignedArea() float64 {
	var sum float64
	for i := range a {
		sum += Cross(a[i], a[(i+1)%len(a)])
	}
	return sum / 2
}

// Reverse returns a copy of the set in reverse order.
func (a Set) Reverse() Set {
	r := make(Set, len(a))
	for i, v := range a {
		r[len(a)-1-i] = v
	}
	return r
}

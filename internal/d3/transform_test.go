package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestComposeTransformInverse(t *testing.T) {
	const tol = 1e-12
	rot := r3.NewRotation(math.Pi/3, r3.Unit(r3.Vec{X: 1, Y: 2, Z: 3}))
	T := ComposeTransform(r3.Vec{X: 4, Y: -2, Z: 7}, r3.Vec{X: 0.5, Y: 2, Z: 3}, rot)
	inv, ok := T.Inv()
	if !ok {
		t.Fatal("transform should be invertible")
	}
	if !inv.Mul(T).Equals(Transform{}, tol) {
		t.Error("inverse times transform is not identity")
	}
	for _, p := range []r3.Vec{{}, {X: 1}, {X: -3, Y: 5, Z: 0.25}} {
		got := inv.Transform(T.Transform(p))
		if !EqualWithin(got, p, tol) {
			t.Errorf("round trip of %v got %v", p, got)
		}
	}
}

func TestComposeTransformRotation(t *testing.T) {
	rot := r3.NewRotation(math.Pi/2, r3.Vec{Z: 1})
	T := ComposeTransform(r3.Vec{}, Elem(1), rot)
	got := T.Transform(r3.Vec{X: 1})
	if !EqualWithin(got, r3.Vec{Y: 1}, 1e-12) {
		t.Errorf("rotation of x axis got %v, want y axis", got)
	}
	if !EqualWithin(got, rot.Rotate(r3.Vec{X: 1}), 1e-12) {
		t.Error("transform disagrees with quaternion rotation")
	}
}

func TestSingularInverse(t *testing.T) {
	T := ComposeTransform(r3.Vec{}, r3.Vec{X: 1, Y: 0, Z: 1}, r3.Rotation{Real: 1})
	if _, ok := T.Inv(); ok {
		t.Error("expected singular transform")
	}
}

func TestScaleUniform(t *testing.T) {
	T := Transform{}.ScaleUniform(r3.Vec{X: 1, Y: 1, Z: 1}, 2)
	got := T.Transform(r3.Vec{X: 2, Y: 1, Z: 0})
	want := r3.Vec{X: 3, Y: 1, Z: -1}
	if !EqualWithin(got, want, 1e-12) {
		t.Errorf("got %v, want %v", got, want)
	}
}

package offset

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/soypat/spectacle/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	loopInner = iota
	loopOuter
)

// segment is a band boundary edge stored in the R-tree.
type segment struct {
	d2.Segment
	loop  int
	index int
	rect  *rtreego.Rect
}

func (s *segment) Bounds() *rtreego.Rect { return s.rect }

// selfIntersection returns the index of the first boundary edge that crosses
// another boundary edge, or that belongs to an inverted inner loop.
// It returns -1 if the band is simple.
func (b *Band) selfIntersection(tol float64) int {
	if signedArea(b.Inner) <= 0 {
		return 0
	}
	eps := tol * 1e-6
	tree := rtreego.NewTree(2, 4, 16)
	var segs []*segment
	for loop, pts := range [2][]r2.Vec{loopInner: b.Inner, loopOuter: b.Outer} {
		for i := range pts {
			s := &segment{
				Segment: d2.Segment{A: pts[i], B: pts[(i+1)%len(pts)]},
				loop:    loop,
				index:   i,
			}
			s.rect = segmentRect(s.Segment, eps)
			tree.Insert(s)
			segs = append(segs, s)
		}
	}
	n := len(b.Inner)
	first := math.MaxInt
	for _, s := range segs {
		for _, hit := range tree.SearchIntersect(s.rect) {
			o := hit.(*segment)
			if o == s || (o.loop == s.loop && adjacent(o.index, s.index, n)) {
				continue
			}
			if s.Intersects(o.Segment, eps) {
				first = min(first, s.index, o.index)
			}
		}
	}
	if first == math.MaxInt {
		return -1
	}
	return first
}

func adjacent(i, j, n int) bool {
	return (i+1)%n == j || (j+1)%n == i
}

func segmentRect(s d2.Segment, pad float64) *rtreego.Rect {
	bb := s.Bounds()
	size := bb.Size()
	r, err := rtreego.NewRect(rtreego.Point{bb.Min.X - pad, bb.Min.Y - pad},
		[]float64{size.X + 2*pad, size.Y + 2*pad})
	if err != nil {
		// Lengths are strictly positive by construction.
		panic(err)
	}
	return r
}

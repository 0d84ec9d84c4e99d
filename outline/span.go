package outline

import "errors"

// Span is a cyclic range of outline vertex indices from Start to End inclusive.
// End may be smaller than Start when the range wraps around the start of the loop.
type Span struct {
	Start, End int
}

// Len returns the number of vertices in the span for a loop of n vertices.
func (s Span) Len(n int) int {
	return (s.End-s.Start+n)%n + 1
}

// Contains reports whether vertex i is in the span.
func (s Span) Contains(i, n int) bool {
	return (i-s.Start+n)%n < s.Len(n)
}

// Indices returns the vertex indices of the span in loop order.
func (s Span) Indices(n int) []int {
	idx := make([]int, s.Len(n))
	for k := range idx {
		idx[k] = (s.Start + k) % n
	}
	return idx
}

var (
	errNoRun    = errors.New("no vertices")
	errFullRun  = errors.New("spans whole outline")
	errSplitRun = errors.New("not contiguous")
)

// singleRun returns the single cyclic run of indices in [0,n) for which in is true.
func singleRun(n int, in func(i int) bool) (Span, error) {
	var (
		runs  int
		start = -1
	)
	for i := 0; i < n; i++ {
		if in(i) && !in((i-1+n)%n) {
			runs++
			start = i
		}
	}
	switch {
	case runs > 1:
		return Span{}, errSplitRun
	case runs == 0 && in(0):
		return Span{}, errFullRun
	case runs == 0:
		return Span{}, errNoRun
	}
	end := start
	for in((end + 1) % n) {
		end = (end + 1) % n
	}
	return Span{Start: start, End: end}, nil
}

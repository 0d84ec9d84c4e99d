package outline

import (
	"math"

	"github.com/soypat/spectacle/internal/d2"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// negligibleCost is the relative symmetry cost under which the grid
// search result is not refined.
const negligibleCost = 1e-18

// findMidline searches the vertical line about which pts is most symmetric.
// cost is the mean squared distance from each mirrored vertex to the loop.
func findMidline(pts []r2.Vec) (mid, cost float64) {
	bb := d2.Set(pts).Bounds()
	cx, w := bb.Center().X, bb.Size().X
	buf := make([]float64, len(pts))
	cost = math.Inf(1)
	for k := -midlineCandidates; k <= midlineCandidates; k++ {
		x := cx + float64(k)*midlineStep*w
		if c := symmetryCost(pts, x, buf); c < cost {
			mid, cost = x, c
		}
	}
	if cost <= negligibleCost*w*w {
		return mid, cost
	}
	return refineMidline(func(x float64) float64 { return symmetryCost(pts, x, buf) }, mid, cost, midlineStep*w)
}

// refineMidline minimizes cost around the grid search result mid. The grid
// result is kept when the minimizer fails or does no better.
func refineMidline(cost func(x float64) float64, mid, best, step float64) (float64, float64) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 { return cost(x[0]) },
	}
	result, err := optimize.Minimize(problem, []float64{mid}, nil, &optimize.NelderMead{SimplexSize: step})
	if err != nil || result == nil || !(result.F < best) {
		return mid, best
	}
	return result.X[0], result.F
}

func symmetryCost(pts []r2.Vec, mid float64, buf []float64) float64 {
	for i, p := range pts {
		buf[i] = loopDistance2(pts, d2.MirrorX(p, mid))
	}
	return stat.Mean(buf, nil)
}

// loopDistance2 returns the squared distance from p to the closed polyline pts.
func loopDistance2(pts []r2.Vec, p r2.Vec) float64 {
	best := math.Inf(1)
	for i := range pts {
		seg := d2.Segment{A: pts[i], B: pts[(i+1)%len(pts)]}
		best = math.Min(best, seg.Distance2(p))
	}
	return best
}

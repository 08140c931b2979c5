package pattern

import "math"

// metric maps a transformed coordinate to the scalar distance used to
// bucket cells into layers. All metrics are non-negative and monotonically
// non-decreasing with |coordinate| along each axis, which is what lets the
// bounds estimator sample only the four grid corners.
type metric func(rx, ry float64) float64

// chebyshev is the L∞ metric: nested squares, or rectangles once the axis
// ratios differ.
func chebyshev(rx, ry float64) float64 {
	return math.Max(math.Abs(rx), math.Abs(ry))
}

// euclidean is the L2 metric: nested circles, ellipses under ratio stretch.
func euclidean(rx, ry float64) float64 {
	return math.Sqrt(rx*rx + ry*ry)
}

// polygonMetric returns the folded radial metric for a regular polygon
// with the given number of sides (already clamped to ≥ 3).
//
// The polar angle is folded into one angular sector of width 2π/sides,
// then projected onto the sector's edge normal. The -step/2 shift aligns
// a vertex, rather than an edge midpoint, at angle zero.
func polygonMetric(sides int) metric {
	step := 2 * math.Pi / float64(sides)
	half := step / 2
	return func(rx, ry float64) float64 {
		r := math.Sqrt(rx*rx + ry*ry)
		folded := math.Mod(math.Atan2(ry, rx), step)
		if folded < 0 {
			folded += step
		}
		return r * math.Cos(folded-half)
	}
}

// maxCornerDistance evaluates the transform+metric pipeline at the four
// grid corners and returns the maximum. Convexity of every metric family
// guarantees the extremum over the rectangular domain lies at a corner.
func maxCornerDistance(t transformer, m metric, width, height int) float64 {
	corners := [4][2]int{
		{0, 0},
		{width - 1, 0},
		{0, height - 1},
		{width - 1, height - 1},
	}
	var max float64
	for _, c := range corners {
		rx, ry := t.apply(float64(c[0]), float64(c[1]))
		if d := m(rx, ry); d > max {
			max = d
		}
	}
	return max
}

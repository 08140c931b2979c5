package pattern

import "math"

// minHexRadius is the smallest usable hexagon circumradius. Below this the
// axial conversion loses too much precision for stable face assignment.
const minHexRadius = 2

var sqrt3 = math.Sqrt(3)

// Face indices of an isometric cube, in angular order.
const (
	faceTop = iota
	faceRight
	faceLeft
)

// hexClassifier assigns each cell to the face of its nearest hexagon,
// producing the tumbling-blocks illusion. It shares only the center
// computation with the other families: tilt and axis ratios do not apply.
type hexClassifier struct {
	centerX    float64
	centerY    float64
	radius     float64
	faceColors [3]Color
	faceLevels [3]int
}

// newHexClassifier builds the classifier for cfg. The three face slots
// cycle through the palette, so fewer than three colors still yield a
// repeating but well-defined face set.
func newHexClassifier(cfg Config, cubeSize float64) hexClassifier {
	h := hexClassifier{
		centerX: float64(cfg.Width-1)/2 + cfg.OffsetX,
		centerY: float64(cfg.Height-1)/2 + cfg.OffsetY,
		radius:  math.Max(minHexRadius, cubeSize),
	}
	for face := range h.faceColors {
		idx := face % len(cfg.Colors)
		h.faceColors[face] = cfg.Colors[idx]
		h.faceLevels[face] = idx
	}
	return h
}

// classify finds the hexagon nearest to (x, y) via cube-coordinate
// rounding, then picks a face from the angle between the hex center and
// the cell.
func (h hexClassifier) classify(x, y int) Cell {
	adjX := float64(x) - h.centerX
	adjY := float64(y) - h.centerY

	// Fractional axial coordinates of the cell.
	q := (sqrt3/3*adjX - adjY/3) / h.radius
	r := (2.0 / 3 * adjY) / h.radius

	cq, cr := roundHex(q, r)

	// Nearest hexagon center back in grid space.
	hexX := h.radius * sqrt3 * (float64(cq) + float64(cr)/2)
	hexY := h.radius * 1.5 * float64(cr)

	angle := math.Atan2(adjY-hexY, adjX-hexX) * 180 / math.Pi

	face := faceLeft
	switch {
	case angle >= -150 && angle < -30:
		face = faceTop
	case angle >= -30 && angle < 90:
		face = faceRight
	}
	return Cell{Color: h.faceColors[face], Level: h.faceLevels[face]}
}

// roundHex rounds fractional axial coordinates to the nearest integer
// hexagon using cube-coordinate rounding: round all three cube axes
// naively, then recompute the axis with the largest rounding error from
// the other two so that x+y+z == 0 holds exactly.
func roundHex(q, r float64) (int, int) {
	x, z := q, r
	y := -x - z

	rx := math.Round(x)
	ry := math.Round(y)
	rz := math.Round(z)

	dx := math.Abs(rx - x)
	dy := math.Abs(ry - y)
	dz := math.Abs(rz - z)

	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	default:
		rz = -rx - ry
	}

	return int(rx), int(rz)
}

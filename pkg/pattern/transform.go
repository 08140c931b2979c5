package pattern

import "math"

// tieEpsilon nudges transformed coordinates off exact layer boundaries so
// that ties round in a consistent direction. This is deterministic
// tie-breaking, not precision: the value is far below any visible scale
// and is kept verbatim to hold golden outputs stable.
const tieEpsilon = 1e-10

// transformer converts integer cell positions into the pattern's own
// frame: center-relative, rotated by -tilt, axis-scaled. All fields are
// precomputed once per generation call.
type transformer struct {
	centerX float64
	centerY float64
	sin     float64
	cos     float64
	ratioX  float64
	ratioY  float64
}

// newTransformer precomputes the center and rotation for cfg.
// The center sits at the grid's geometric midpoint plus the configured
// offset; rotation trig is evaluated once.
func newTransformer(cfg Config) transformer {
	theta := cfg.Tilt * math.Pi / 180
	return transformer{
		centerX: float64(cfg.Width-1)/2 + cfg.OffsetX,
		centerY: float64(cfg.Height-1)/2 + cfg.OffsetY,
		sin:     math.Sin(theta),
		cos:     math.Cos(theta),
		ratioX:  cfg.RatioX,
		ratioY:  cfg.RatioY,
	}
}

// apply maps a cell position into the canonical unrotated, unscaled frame.
// Rotating by -tilt moves the query point into the pattern's frame rather
// than rotating the pattern itself.
func (t transformer) apply(x, y float64) (rx, ry float64) {
	dx := x - t.centerX
	dy := y - t.centerY
	rx = dx*t.cos + dy*t.sin
	ry = -dx*t.sin + dy*t.cos
	return (rx + tieEpsilon) / t.ratioX, (ry + tieEpsilon) / t.ratioY
}

// project returns only the along-normal component of the rotation, used
// by the stripe family. Axis ratios do not apply to stripes.
func (t transformer) project(x, y float64) float64 {
	dx := x - t.centerX
	dy := y - t.centerY
	return dx*t.cos + dy*t.sin + tieEpsilon
}

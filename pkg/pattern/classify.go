package pattern

import "math"

// classifier converts scalar distances into integer layer levels under a
// fixed sizing policy. layerCount is the resolved count: derived from the
// maximum corner distance in thickness mode, the clamped configured count
// in count mode.
type classifier struct {
	mode        SizingMode
	thickness   float64
	maxDistance float64
	layerCount  int
}

// newClassifier resolves the layer count for the given sizing policy.
//
// In thickness mode layer 0 is centered on the origin, spanning
// [-t/2, t/2), so boundaries sit at half-integer multiples of the
// thickness; the resolved count covers the farthest corner. The count is
// resolved even though thickness mode never normalizes per-cell levels,
// so that callers always receive a stable total.
func newClassifier(s Sizing, maxDistance float64) classifier {
	c := classifier{mode: s.Mode, thickness: s.Thickness, maxDistance: maxDistance}
	switch s.Mode {
	case SizeByThickness:
		c.layerCount = int(math.Ceil((maxDistance + s.Thickness/2) / s.Thickness))
		if c.layerCount < 1 {
			c.layerCount = 1
		}
	default:
		c.layerCount = s.LayerCount
		if c.layerCount < 1 {
			c.layerCount = 1
		}
	}
	return c
}

// level buckets a distance into a layer index.
//
// Count mode normalizes by the maximum corner distance and clamps the
// exact-corner cell into the last layer. A zero maximum (1×1 grid, or all
// corners coincident with the center) falls back to a divisor of 1 rather
// than dividing by zero.
func (c classifier) level(distance float64) int {
	if c.mode == SizeByThickness {
		return int(math.Floor((distance + c.thickness/2) / c.thickness))
	}
	div := c.maxDistance
	if div == 0 {
		div = 1
	}
	lvl := int(math.Floor(distance / div * float64(c.layerCount)))
	if lvl > c.layerCount-1 {
		lvl = c.layerCount - 1
	}
	return lvl
}

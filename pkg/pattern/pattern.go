package pattern

// =============================================================================
// Palette and Grid Types
// =============================================================================

// Color is an opaque palette entry, typically a "#RRGGBB" hex string.
// The engine never inspects color values; it only cycles through them.
type Color string

// Cell is a single classified grid cell.
//
// Level is the layer index after color-cycling, so it always equals the
// index of Color within the configuration's palette. The pre-cycled layer
// index is not retained (see the histogram/legend discussion in DESIGN.md).
type Cell struct {
	Color Color `json:"color"`
	Level int   `json:"level"`
}

// Grid is a rectangular, row-major grid of classified cells: Grid[y][x].
// A Grid returned by Generate is owned by the caller and never aliased
// by the engine.
type Grid [][]Cell

// Height returns the number of rows.
func (g Grid) Height() int { return len(g) }

// Width returns the number of columns.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Histogram counts cells per color. The result feeds the thread-length
// estimator in package threads.
func Histogram(g Grid) map[Color]int {
	counts := make(map[Color]int)
	for _, row := range g {
		for _, c := range row {
			counts[c.Color]++
		}
	}
	return counts
}

// =============================================================================
// Layer Sizing
// =============================================================================

// SizingMode selects how a scalar distance maps to a layer index.
type SizingMode int

const (
	// SizeByCount fixes the number of layers; layer width is derived from
	// the grid's maximum corner distance.
	SizeByCount SizingMode = iota

	// SizeByThickness fixes the layer width in grid units; the layer count
	// is derived and reported as ResolvedLayerCount.
	SizeByThickness
)

// Sizing controls the distance-to-layer mapping for the rectangle, circle
// and polygon families. Exactly one of LayerCount or Thickness is
// meaningful, selected by Mode; use [Layers] or [Thickness] to construct.
type Sizing struct {
	Mode       SizingMode `json:"mode"`
	LayerCount int        `json:"layerCount,omitempty"`
	Thickness  float64    `json:"layerThickness,omitempty"`
}

// Layers returns a count-mode Sizing with n layers.
// Values below 1 are clamped to a single layer during generation.
func Layers(n int) Sizing {
	return Sizing{Mode: SizeByCount, LayerCount: n}
}

// Thickness returns a thickness-mode Sizing with the given layer width
// in grid units. The width must be positive.
func Thickness(t float64) Sizing {
	return Sizing{Mode: SizeByThickness, Thickness: t}
}

// =============================================================================
// Shape Families
// =============================================================================

// Shape is the closed set of shape families. Each variant carries only the
// parameters its classifier consumes; common geometry (size, offsets, tilt,
// ratios) lives on Config. The interface is sealed: only the five variants
// in this package implement it.
type Shape interface {
	shapeName() string
}

// Rectangles produces nested rectangular contours using the Chebyshev
// (L∞) metric. With RatioX ≠ RatioY the contours become oblong.
type Rectangles struct {
	Size Sizing
}

// Circles produces nested circular contours using the Euclidean metric,
// ellipses when the axis ratios differ.
type Circles struct {
	Size Sizing
}

// Polygons produces nested regular-polygon contours with flat sides.
// Sides below 3 are silently clamped to 3 and reported via ResolvedSides.
type Polygons struct {
	Size  Sizing
	Sides int
}

// Stripes produces parallel bands perpendicular to the tilt direction.
// There is no count/thickness duality: StripeWidth fixes the band width
// and the palette cycles indefinitely in both directions.
type Stripes struct {
	StripeWidth float64
}

// IsometricCubes produces the tumbling-blocks illusion: a hexagonal
// tiling where each hexagon splits into three 120° faces. CubeSize is
// the hexagon circumradius in grid units, floored at 2 for numerical
// stability. Tilt and axis ratios are not supported by this family.
type IsometricCubes struct {
	CubeSize float64
}

func (Rectangles) shapeName() string     { return ShapeRectangles }
func (Circles) shapeName() string        { return ShapeCircles }
func (Polygons) shapeName() string       { return ShapePolygons }
func (Stripes) shapeName() string        { return ShapeStripes }
func (IsometricCubes) shapeName() string { return ShapeIsometricCubes }

// Shape family names as used in the JSON interchange format and CLI flags.
const (
	ShapeRectangles     = "rectangles"
	ShapeCircles        = "circles"
	ShapePolygons       = "polygons"
	ShapeStripes        = "stripes"
	ShapeIsometricCubes = "isometricCubes"
)

// ShapeName returns the interchange name of a shape variant, or "" for nil.
func ShapeName(s Shape) string {
	if s == nil {
		return ""
	}
	return s.shapeName()
}

// =============================================================================
// Configuration and Result
// =============================================================================

// Config is the immutable input of a single generation call.
//
// OffsetX/OffsetY shift the geometric center away from the grid midpoint
// ((Width-1)/2, (Height-1)/2). Tilt is in degrees. RatioX/RatioY stretch
// the rotated axes and must be positive for the families that consume
// them (rectangles, circles, polygons).
type Config struct {
	Width  int
	Height int
	Colors []Color

	OffsetX float64
	OffsetY float64
	Tilt    float64
	RatioX  float64
	RatioY  float64

	Shape Shape
}

// Pattern is the generation result envelope.
//
// ResolvedLayerCount is authoritative: in thickness mode it is derived
// from the grid's maximum corner distance, in count mode it echoes the
// (clamped) configured count. It is zero for the stripe and isometric-cube
// families, which have no layer-count concept. ResolvedSides is set only
// for polygons.
type Pattern struct {
	Config Config
	Grid   Grid

	ResolvedLayerCount int
	ResolvedSides      int
}

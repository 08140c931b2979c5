package pattern

import (
	"math"

	"github.com/HamletDuFromage/x-stitch/pkg/errors"
)

// minPolygonSides is the permissive lower bound for the polygon family.
// Smaller values are clamped, not rejected.
const minPolygonSides = 3

// Generate classifies every cell of the configured grid and returns the
// result envelope. It is a pure function: identical configurations yield
// bit-identical grids, the input is never mutated, and the returned grid
// shares no state with the engine.
//
// Generation either fully succeeds or fails with a single validation
// error before any cell is computed; there are no partial results.
func Generate(cfg Config) (*Pattern, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	p := &Pattern{Config: cfg}
	grid := make(Grid, cfg.Height)
	for y := range grid {
		grid[y] = make([]Cell, cfg.Width)
	}

	switch s := cfg.Shape.(type) {
	case Rectangles:
		p.ResolvedLayerCount = fillLayered(grid, cfg, s.Size, chebyshev)
	case Circles:
		p.ResolvedLayerCount = fillLayered(grid, cfg, s.Size, euclidean)
	case Polygons:
		sides := s.Sides
		if sides < minPolygonSides {
			sides = minPolygonSides
		}
		p.ResolvedSides = sides
		p.ResolvedLayerCount = fillLayered(grid, cfg, s.Size, polygonMetric(sides))
	case Stripes:
		fillStripes(grid, cfg, s.StripeWidth)
	case IsometricCubes:
		fillCubes(grid, cfg, s.CubeSize)
	}

	p.Grid = grid
	return p, nil
}

// fillLayered runs the shared transform → metric → classify pipeline for
// the rectangle, circle and polygon families and returns the resolved
// layer count.
func fillLayered(grid Grid, cfg Config, size Sizing, m metric) int {
	tr := newTransformer(cfg)
	maxDistance := maxCornerDistance(tr, m, cfg.Width, cfg.Height)
	cl := newClassifier(size, maxDistance)

	n := len(cfg.Colors)
	for y := range grid {
		for x := range grid[y] {
			rx, ry := tr.apply(float64(x), float64(y))
			lvl := cl.level(m(rx, ry)) % n
			grid[y][x] = Cell{Color: cfg.Colors[lvl], Level: lvl}
		}
	}
	return cl.layerCount
}

// fillStripes classifies cells into parallel bands. Stripe indices are
// signed, so the palette index uses a mathematically correct modulo: a
// negative index resolves to the same color sequence as its positive
// counterpart shifted by a full palette cycle.
func fillStripes(grid Grid, cfg Config, stripeWidth float64) {
	tr := newTransformer(cfg)
	n := len(cfg.Colors)
	for y := range grid {
		for x := range grid[y] {
			idx := int(math.Floor(tr.project(float64(x), float64(y)) / stripeWidth))
			lvl := ((idx % n) + n) % n
			grid[y][x] = Cell{Color: cfg.Colors[lvl], Level: lvl}
		}
	}
}

// fillCubes classifies cells through the hexagonal face classifier.
func fillCubes(grid Grid, cfg Config, cubeSize float64) {
	h := newHexClassifier(cfg, cubeSize)
	for y := range grid {
		for x := range grid[y] {
			grid[y][x] = h.classify(x, y)
		}
	}
}

// Validate checks a configuration without generating. It returns the
// first violation found as a coded error (see package errors); clampable
// values (layer count, polygon sides, cube size) never fail validation.
func Validate(cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidDimensions,
			"grid dimensions must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if len(cfg.Colors) == 0 {
		return errors.New(errors.ErrCodeInvalidPalette,
			"palette must contain at least one color")
	}

	switch s := cfg.Shape.(type) {
	case Rectangles:
		if err := validateRatios(cfg); err != nil {
			return err
		}
		return validateSizing(s.Size)
	case Circles:
		if err := validateRatios(cfg); err != nil {
			return err
		}
		return validateSizing(s.Size)
	case Polygons:
		if err := validateRatios(cfg); err != nil {
			return err
		}
		return validateSizing(s.Size)
	case Stripes:
		if s.StripeWidth <= 0 {
			return errors.New(errors.ErrCodeInvalidSizing,
				"stripe width must be positive, got %g", s.StripeWidth)
		}
	case IsometricCubes:
		// Cube size is floored at minHexRadius, never rejected.
	case nil:
		return errors.New(errors.ErrCodeInvalidShape, "shape family is required")
	default:
		return errors.New(errors.ErrCodeInvalidShape,
			"unknown shape family %T", cfg.Shape)
	}
	return nil
}

// validateRatios applies to the families that divide by the axis ratios.
// A zero or negative ratio breaks the monotonicity the bounds estimator
// relies on.
func validateRatios(cfg Config) error {
	if cfg.RatioX <= 0 || cfg.RatioY <= 0 {
		return errors.New(errors.ErrCodeInvalidRatio,
			"axis ratios must be positive, got %g and %g", cfg.RatioX, cfg.RatioY)
	}
	return nil
}

func validateSizing(s Sizing) error {
	if s.Mode == SizeByThickness && s.Thickness <= 0 {
		return errors.New(errors.ErrCodeInvalidSizing,
			"layer thickness must be positive, got %g", s.Thickness)
	}
	return nil
}

// Package pattern implements the grid-classification engine at the heart
// of x-stitch.
//
// Given a grid size and a set of geometric parameters (center offset,
// rotation, axis scaling, layer sizing, shape family), the engine computes
// a discrete layer index and color for every cell of a rectangular grid.
// The result drives pattern previews, thread-usage estimates and exports.
//
// # Architecture
//
// Generation is a pure, synchronous batch computation:
//
//  1. Validate the configuration (see package errors for the codes).
//  2. Precompute shared quantities: center, rotation, the maximum
//     corner distance used to normalize count-mode layers.
//  3. Classify every cell through the shape family's distance metric.
//
// Five shape families are supported, each selected by a closed Shape
// variant carrying only that family's parameters:
//
//   - [Rectangles]: Chebyshev (L∞) metric, nested rectangle contours
//   - [Circles]: Euclidean metric, nested ellipse contours
//   - [Polygons]: angularly folded radial metric, flat-sided contours
//   - [Stripes]: signed linear projection, parallel bands
//   - [IsometricCubes]: hexagonal nearest-center search with angular
//     face assignment, the classic tumbling-blocks illusion
//
// # Usage
//
// Build a configuration and generate:
//
//	p, err := pattern.Generate(pattern.Config{
//	    Width:  60,
//	    Height: 40,
//	    Colors: []pattern.Color{"#b01030", "#f0e0c0", "#203a60"},
//	    RatioX: 1,
//	    RatioY: 1,
//	    Shape:  pattern.Circles{Size: pattern.Layers(6)},
//	})
//	if err != nil {
//	    return err
//	}
//	counts := pattern.Histogram(p.Grid)
//
// Identical configurations always produce bit-identical grids; the engine
// holds no state between calls and never mutates its inputs.
package pattern

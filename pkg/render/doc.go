// Package render draws generated pattern grids.
//
// The package is a pure consumer of pattern.Grid: it never recomputes
// cells, it only maps them to pixels, SVG rectangles or terminal blocks.
// Three sinks are provided:
//
//   - [SVG]: scalable chart output for printing and the HTTP preview
//   - [PNG]: raster output for quick sharing
//   - [Text]: ANSI terminal blocks, used by the live preview TUI
//
// All sinks share the functional-option style:
//
//	svg := render.SVG(p.Grid, render.WithCellSize(12), render.WithGridLines())
package render

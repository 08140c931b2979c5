// Package pkg provides the core libraries for x-stitch pattern generation.
//
// # Overview
//
// x-stitch turns a small geometric configuration into a colored stitch
// grid. The pkg directory is organized by concern:
//
//  1. [pattern] - The generation engine (transforms, metrics, classifiers)
//  2. [palette] / [threads] - Stitching domain data (colors, floss math)
//  3. [render] / [io] - Output (SVG, PNG, terminal text, config JSON)
//  4. [cache] / [store] - Persistence (render artifacts, saved patterns)
//  5. [pipeline] - Orchestration (generate → render → cache)
//
// # Architecture
//
// The typical data flow:
//
//	pattern.Config
//	       ↓
//	  [pattern] package (classify every cell into color + layer)
//	       ↓
//	  [render] package (SVG / PNG / terminal output)
//	       ↓
//	  [cache] package (artifact caching, keyed by config hash)
//
// The CLI (internal/cli) and the HTTP server (internal/server) both sit
// on the [pipeline] runner, so they share rendering and caching
// behavior.
package pkg

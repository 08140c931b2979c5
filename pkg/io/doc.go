// Package io implements the JSON interchange format for pattern
// configurations.
//
// A configuration is exchanged as a single flat JSON object mirroring
// pattern.Config, with the shape family selected by a "shape" string and
// family-specific parameters as optional fields:
//
//	{
//	  "width": 60,
//	  "height": 40,
//	  "colors": ["#c72b3b", "#ffffff"],
//	  "offsetX": 0,
//	  "offsetY": 0,
//	  "tilt": 15,
//	  "ratioX": 1,
//	  "ratioY": 1,
//	  "shape": "polygons",
//	  "layerCount": 6,
//	  "numSides": 5
//	}
//
// Exactly one of "layerCount" and "layerThickness" may be set for the
// layered families (rectangles, circles, polygons); stripes carry
// "stripeWidth" and isometric cubes carry "cubeSize". This object is the
// only interchange format the engine defines: saved patterns, the HTTP
// API and the CLI --config flag all speak it.
package io

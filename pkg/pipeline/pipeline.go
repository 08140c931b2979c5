// Package pipeline provides the generate → render pipeline shared by the
// CLI and the HTTP server.
//
// Centralizing this logic keeps behavior identical across entry points:
// both hash the configuration the same way, consult the same cache key
// layout and produce the same artifacts.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  cfg,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"encoding/json"
	"time"

	"github.com/HamletDuFromage/x-stitch/pkg/errors"
	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
	"github.com/HamletDuFromage/x-stitch/pkg/render"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatText = "text"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatText: true,
}

// Options selects what to generate and how to render it.
type Options struct {
	// Config is the pattern configuration to generate.
	Config pattern.Config

	// Formats lists the artifacts to produce. Defaults to SVG.
	Formats []string

	// CellSize is the rendered cell size in pixels for SVG/PNG.
	CellSize float64

	// GridLines draws the stitch grid in SVG/PNG output.
	GridLines bool

	// TTL overrides the cache TTL for rendered artifacts.
	TTL time.Duration
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// The pattern configuration itself is validated separately by the engine.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", f)
		}
	}
	if o.CellSize <= 0 {
		o.CellSize = render.DefaultCellSize
	}
	if o.TTL <= 0 {
		o.TTL = 0 // runner applies the cache default
	}
	return pattern.Validate(o.Config)
}

// Stats reports per-stage timings and cache behavior for one execution.
type Stats struct {
	GenerateTime time.Duration
	RenderTime   time.Duration
	CacheHits    int
	CacheMisses  int
}

// Result is the output of one pipeline execution.
type Result struct {
	// Pattern is the generated grid and its envelope.
	Pattern *pattern.Pattern

	// ConfigHash identifies the configuration; it keys the cache and is
	// echoed by the HTTP API.
	ConfigHash string

	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte

	Stats Stats
}

// patternJSON is the wire form of a generation result, used for the JSON
// artifact and the HTTP API.
type patternJSON struct {
	Width              int              `json:"width"`
	Height             int              `json:"height"`
	Colors             []pattern.Color  `json:"colors"`
	Shape              string           `json:"shape"`
	ResolvedLayerCount int              `json:"resolvedLayerCount,omitempty"`
	ResolvedSides      int              `json:"resolvedSides,omitempty"`
	Grid               [][]pattern.Cell `json:"grid"`
	Histogram          map[string]int   `json:"histogram"`
}

// EncodePattern encodes a generation result as the public JSON envelope,
// including the color histogram consumed by thread estimators.
func EncodePattern(p *pattern.Pattern) ([]byte, error) {
	hist := make(map[string]int)
	for color, n := range pattern.Histogram(p.Grid) {
		hist[string(color)] = n
	}
	return json.Marshal(patternJSON{
		Width:              p.Config.Width,
		Height:             p.Config.Height,
		Colors:             p.Config.Colors,
		Shape:              pattern.ShapeName(p.Config.Shape),
		ResolvedLayerCount: p.ResolvedLayerCount,
		ResolvedSides:      p.ResolvedSides,
		Grid:               p.Grid,
		Histogram:          hist,
	})
}

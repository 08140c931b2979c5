package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
)

// configJSON is the wire form of pattern.Config. Family-specific fields
// are emitted only for the family that owns them.
type configJSON struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Colors  []string `json:"colors"`
	OffsetX float64  `json:"offsetX"`
	OffsetY float64  `json:"offsetY"`
	Tilt    float64  `json:"tilt"`
	RatioX  float64  `json:"ratioX,omitempty"`
	RatioY  float64  `json:"ratioY,omitempty"`

	Shape string `json:"shape"`

	LayerCount     *int     `json:"layerCount,omitempty"`
	LayerThickness *float64 `json:"layerThickness,omitempty"`
	NumSides       int      `json:"numSides,omitempty"`
	StripeWidth    float64  `json:"stripeWidth,omitempty"`
	CubeSize       float64  `json:"cubeSize,omitempty"`
}

func toWire(cfg pattern.Config) configJSON {
	out := configJSON{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Colors:  make([]string, len(cfg.Colors)),
		OffsetX: cfg.OffsetX,
		OffsetY: cfg.OffsetY,
		Tilt:    cfg.Tilt,
		RatioX:  cfg.RatioX,
		RatioY:  cfg.RatioY,
		Shape:   pattern.ShapeName(cfg.Shape),
	}
	for i, c := range cfg.Colors {
		out.Colors[i] = string(c)
	}

	setSizing := func(s pattern.Sizing) {
		if s.Mode == pattern.SizeByThickness {
			t := s.Thickness
			out.LayerThickness = &t
		} else {
			n := s.LayerCount
			out.LayerCount = &n
		}
	}

	switch s := cfg.Shape.(type) {
	case pattern.Rectangles:
		setSizing(s.Size)
	case pattern.Circles:
		setSizing(s.Size)
	case pattern.Polygons:
		setSizing(s.Size)
		out.NumSides = s.Sides
	case pattern.Stripes:
		out.StripeWidth = s.StripeWidth
	case pattern.IsometricCubes:
		out.CubeSize = s.CubeSize
	}
	return out
}

// Marshal encodes a configuration into the interchange JSON object.
func Marshal(cfg pattern.Config) ([]byte, error) {
	return json.Marshal(toWire(cfg))
}

// WriteConfig writes an indented configuration object to w.
// The output can be re-read with [ReadConfig] for round-trip processing.
func WriteConfig(cfg pattern.Config, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(cfg)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFile writes a configuration to a JSON file at path.
// This is a convenience wrapper around [WriteConfig] for file-based output.
func ExportFile(cfg pattern.Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteConfig(cfg, f)
}

package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/HamletDuFromage/x-stitch/pkg/errors"
	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
)

// Unmarshal decodes an interchange JSON object into a configuration.
//
// The shape string selects the family; the matching family-specific
// fields are required where the engine requires them:
//   - rectangles/circles/polygons take exactly one of layerCount or
//     layerThickness
//   - stripes take stripeWidth
//   - isometricCubes take cubeSize
//
// Unmarshal validates only the wire structure; geometric validation
// happens in pattern.Generate.
func Unmarshal(data []byte) (pattern.Config, error) {
	var wire configJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return pattern.Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed configuration")
	}
	return fromWire(wire)
}

func fromWire(wire configJSON) (pattern.Config, error) {
	cfg := pattern.Config{
		Width:   wire.Width,
		Height:  wire.Height,
		Colors:  make([]pattern.Color, len(wire.Colors)),
		OffsetX: wire.OffsetX,
		OffsetY: wire.OffsetY,
		Tilt:    wire.Tilt,
		RatioX:  wire.RatioX,
		RatioY:  wire.RatioY,
	}
	for i, c := range wire.Colors {
		cfg.Colors[i] = pattern.Color(c)
	}

	// Ratios only matter for the layered families and default to 1 when
	// omitted, matching the omitempty emission on the export side.
	if cfg.RatioX == 0 {
		cfg.RatioX = 1
	}
	if cfg.RatioY == 0 {
		cfg.RatioY = 1
	}

	sizing := func() (pattern.Sizing, error) {
		switch {
		case wire.LayerCount != nil && wire.LayerThickness != nil:
			return pattern.Sizing{}, errors.New(errors.ErrCodeInvalidSizing,
				"layerCount and layerThickness are mutually exclusive")
		case wire.LayerThickness != nil:
			return pattern.Thickness(*wire.LayerThickness), nil
		case wire.LayerCount != nil:
			return pattern.Layers(*wire.LayerCount), nil
		default:
			return pattern.Sizing{}, errors.New(errors.ErrCodeInvalidSizing,
				"shape %q requires layerCount or layerThickness", wire.Shape)
		}
	}

	switch wire.Shape {
	case pattern.ShapeRectangles:
		s, err := sizing()
		if err != nil {
			return pattern.Config{}, err
		}
		cfg.Shape = pattern.Rectangles{Size: s}
	case pattern.ShapeCircles:
		s, err := sizing()
		if err != nil {
			return pattern.Config{}, err
		}
		cfg.Shape = pattern.Circles{Size: s}
	case pattern.ShapePolygons:
		s, err := sizing()
		if err != nil {
			return pattern.Config{}, err
		}
		cfg.Shape = pattern.Polygons{Size: s, Sides: wire.NumSides}
	case pattern.ShapeStripes:
		cfg.Shape = pattern.Stripes{StripeWidth: wire.StripeWidth}
	case pattern.ShapeIsometricCubes:
		cfg.Shape = pattern.IsometricCubes{CubeSize: wire.CubeSize}
	case "":
		return pattern.Config{}, errors.New(errors.ErrCodeInvalidShape, "missing shape field")
	default:
		return pattern.Config{}, errors.New(errors.ErrCodeInvalidShape,
			"unknown shape %q", wire.Shape)
	}

	return cfg, nil
}

// ReadConfig decodes a configuration object from r.
func ReadConfig(r io.Reader) (pattern.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return pattern.Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read configuration")
	}
	return Unmarshal(data)
}

// ImportFile reads a configuration from a JSON file at path.
func ImportFile(path string) (pattern.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pattern.Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return pattern.Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadConfig(f)
}

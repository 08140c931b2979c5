package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/HamletDuFromage/x-stitch/pkg/errors"
	xio "github.com/HamletDuFromage/x-stitch/pkg/io"
	"github.com/HamletDuFromage/x-stitch/pkg/palette"
	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
)

// Default pattern dimensions for flag-built configs. Roughly a 7x5 inch
// piece on 14-count aida.
const (
	defaultWidth  = 40
	defaultHeight = 30
	defaultLayers = 5
)

// configOpts holds the command-line flags that describe a pattern
// configuration. generate, preview and threads share this flag set.
type configOpts struct {
	config string // path to a config JSON file; overrides all other flags

	width  int
	height int

	colors      string // comma-separated hex colors
	paletteName string // built-in palette name, used when colors is empty

	shape       string
	layers      int
	thickness   float64
	sides       int
	stripeWidth float64
	cubeSize    float64

	offsetX float64
	offsetY float64
	tilt    float64
	ratioX  float64
	ratioY  float64
}

// addConfigFlags registers the shared pattern configuration flags on cmd.
func (o *configOpts) addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "read configuration from a JSON file (overrides other flags)")

	cmd.Flags().IntVarP(&o.width, "width", "W", defaultWidth, "pattern width in stitches")
	cmd.Flags().IntVarP(&o.height, "height", "H", defaultHeight, "pattern height in stitches")

	cmd.Flags().StringVar(&o.colors, "colors", "", "comma-separated hex colors (e.g. '#ff0000,#ffffff')")
	cmd.Flags().StringVarP(&o.paletteName, "palette", "p", palette.DefaultName, "built-in palette name (see 'xstitch palette')")

	cmd.Flags().StringVarP(&o.shape, "shape", "s", pattern.ShapeRectangles, "shape family: rectangles, circles, polygons, stripes, isometricCubes")
	cmd.Flags().IntVarP(&o.layers, "layers", "l", defaultLayers, "number of concentric layers")
	cmd.Flags().Float64VarP(&o.thickness, "thickness", "t", 0, "layer thickness in cells (overrides --layers)")
	cmd.Flags().IntVar(&o.sides, "sides", 6, "polygon side count (polygons only)")
	cmd.Flags().Float64Var(&o.stripeWidth, "stripe-width", 2, "stripe width in cells (stripes only)")
	cmd.Flags().Float64Var(&o.cubeSize, "cube-size", 4, "hexagon radius in cells (isometricCubes only)")

	cmd.Flags().Float64Var(&o.offsetX, "offset-x", 0, "horizontal center offset in cells")
	cmd.Flags().Float64Var(&o.offsetY, "offset-y", 0, "vertical center offset in cells")
	cmd.Flags().Float64Var(&o.tilt, "tilt", 0, "pattern rotation in degrees")
	cmd.Flags().Float64Var(&o.ratioX, "ratio-x", 1, "horizontal scale divisor")
	cmd.Flags().Float64Var(&o.ratioY, "ratio-y", 1, "vertical scale divisor")
}

// buildConfig converts the flags into a pattern configuration. When
// --config is set, the file wins and the other flags are ignored.
func (o *configOpts) buildConfig() (pattern.Config, error) {
	if o.config != "" {
		return xio.ImportFile(o.config)
	}

	colors, err := resolveColors(o.colors, o.paletteName)
	if err != nil {
		return pattern.Config{}, err
	}

	shape, err := o.buildShape()
	if err != nil {
		return pattern.Config{}, err
	}

	return pattern.Config{
		Width:   o.width,
		Height:  o.height,
		Colors:  colors,
		OffsetX: o.offsetX,
		OffsetY: o.offsetY,
		Tilt:    o.tilt,
		RatioX:  o.ratioX,
		RatioY:  o.ratioY,
		Shape:   shape,
	}, nil
}

// buildShape selects the shape family and its sizing from the flags.
// A non-zero --thickness takes precedence over --layers.
func (o *configOpts) buildShape() (pattern.Shape, error) {
	sizing := pattern.Layers(o.layers)
	if o.thickness > 0 {
		sizing = pattern.Thickness(o.thickness)
	}

	switch o.shape {
	case pattern.ShapeRectangles:
		return pattern.Rectangles{Size: sizing}, nil
	case pattern.ShapeCircles:
		return pattern.Circles{Size: sizing}, nil
	case pattern.ShapePolygons:
		return pattern.Polygons{Size: sizing, Sides: o.sides}, nil
	case pattern.ShapeStripes:
		return pattern.Stripes{StripeWidth: o.stripeWidth}, nil
	case pattern.ShapeIsometricCubes:
		return pattern.IsometricCubes{CubeSize: o.cubeSize}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidShape,
			"unknown shape %q (must be rectangles, circles, polygons, stripes or isometricCubes)", o.shape)
	}
}

// resolveColors builds the palette from an explicit color list, falling
// back to a built-in palette.
func resolveColors(colorList, paletteName string) ([]pattern.Color, error) {
	if colorList != "" {
		return parseColors(colorList)
	}
	p, err := palette.Lookup(paletteName)
	if err != nil {
		return nil, err
	}
	return p.Colors(), nil
}

// parseColors parses a comma-separated hex color list.
func parseColors(s string) ([]pattern.Color, error) {
	parts := strings.Split(s, ",")
	colors := make([]pattern.Color, 0, len(parts))
	for _, part := range parts {
		c := strings.TrimSpace(part)
		if err := errors.ValidateHexColor(c); err != nil {
			return nil, err
		}
		colors = append(colors, pattern.Color(c))
	}
	return colors, nil
}

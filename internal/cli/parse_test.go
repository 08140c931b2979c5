package cli

import (
	"testing"

	"github.com/HamletDuFromage/x-stitch/pkg/errors"
	"github.com/HamletDuFromage/x-stitch/pkg/palette"
	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
)

func TestParseColors(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    int
		wantErr bool
	}{
		{"single color", "#ff0000", 1, false},
		{"two colors", "#ff0000,#ffffff", 2, false},
		{"short form", "#f00,#fff", 2, false},
		{"spaces around commas", "#ff0000, #ffffff", 2, false},
		{"missing hash", "ff0000", 0, true},
		{"not hex", "#zzzzzz", 0, true},
		{"empty entry", "#ff0000,,#ffffff", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseColors(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseColors(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && len(got) != tt.want {
				t.Errorf("parseColors(%q) returned %d colors, want %d", tt.arg, len(got), tt.want)
			}
		})
	}
}

func TestResolveColorsPaletteFallback(t *testing.T) {
	colors, err := resolveColors("", palette.DefaultName)
	if err != nil {
		t.Fatalf("resolveColors() error = %v", err)
	}
	if len(colors) == 0 {
		t.Error("default palette resolved to no colors")
	}

	_, err = resolveColors("", "no-such-palette")
	if !errors.Is(err, errors.ErrCodePaletteNotFound) {
		t.Errorf("resolveColors() error = %v, want PALETTE_NOT_FOUND", err)
	}
}

func TestBuildShape(t *testing.T) {
	tests := []struct {
		name string
		opts configOpts
		want string
	}{
		{"rectangles", configOpts{shape: "rectangles", layers: 3}, "rectangles"},
		{"circles", configOpts{shape: "circles", layers: 3}, "circles"},
		{"polygons", configOpts{shape: "polygons", layers: 3, sides: 5}, "polygons"},
		{"stripes", configOpts{shape: "stripes", stripeWidth: 2}, "stripes"},
		{"cubes", configOpts{shape: "isometricCubes", cubeSize: 4}, "isometricCubes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := tt.opts.buildShape()
			if err != nil {
				t.Fatalf("buildShape() error = %v", err)
			}
			if got := pattern.ShapeName(shape); got != tt.want {
				t.Errorf("buildShape() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildShapeUnknown(t *testing.T) {
	opts := configOpts{shape: "spirals"}
	if _, err := opts.buildShape(); !errors.Is(err, errors.ErrCodeInvalidShape) {
		t.Errorf("buildShape() error = %v, want INVALID_SHAPE", err)
	}
}

func TestBuildShapeThicknessWins(t *testing.T) {
	opts := configOpts{shape: "circles", layers: 5, thickness: 2.5}
	shape, err := opts.buildShape()
	if err != nil {
		t.Fatalf("buildShape() error = %v", err)
	}
	circles, ok := shape.(pattern.Circles)
	if !ok {
		t.Fatalf("buildShape() = %T, want Circles", shape)
	}
	if circles.Size.Mode != pattern.SizeByThickness || circles.Size.Thickness != 2.5 {
		t.Errorf("sizing = %+v, want thickness 2.5", circles.Size)
	}
}

func TestBuildConfig(t *testing.T) {
	opts := configOpts{
		width: 20, height: 10,
		colors: "#ff0000,#ffffff",
		shape:  "polygons", layers: 4, sides: 7,
		tilt: 15, ratioX: 1, ratioY: 2,
	}

	cfg, err := opts.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}
	if cfg.Width != 20 || cfg.Height != 10 {
		t.Errorf("dimensions = %dx%d", cfg.Width, cfg.Height)
	}
	if len(cfg.Colors) != 2 {
		t.Errorf("colors = %v", cfg.Colors)
	}
	if cfg.Tilt != 15 || cfg.RatioY != 2 {
		t.Errorf("transform params = tilt %v ratioY %v", cfg.Tilt, cfg.RatioY)
	}
	if err := pattern.Validate(cfg); err != nil {
		t.Errorf("built config does not validate: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != "svg" {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("svg,png"); len(got) != 2 {
		t.Errorf("parseFormats(\"svg,png\") = %v", got)
	}
}

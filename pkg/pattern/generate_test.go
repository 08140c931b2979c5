package pattern

import (
	"reflect"
	"testing"
)

// layeredConfig builds a count-mode config shared by several tests.
func layeredConfig(shape Shape, w, h int, colors ...Color) Config {
	return Config{
		Width:  w,
		Height: h,
		Colors: colors,
		RatioX: 1,
		RatioY: 1,
		Shape:  shape,
	}
}

func TestRectanglesSmallGrid(t *testing.T) {
	// 3x3 grid, two layers: the center cell is Chebyshev distance 0, the
	// surrounding ring distance 1.
	cfg := layeredConfig(Rectangles{Size: Layers(2)}, 3, 3, "red", "blue")

	p, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if p.ResolvedLayerCount != 2 {
		t.Errorf("ResolvedLayerCount = %d, want 2", p.ResolvedLayerCount)
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			cell := p.Grid[y][x]
			if x == 1 && y == 1 {
				if cell.Level != 0 || cell.Color != "red" {
					t.Errorf("center cell = %+v, want level 0 color red", cell)
				}
				continue
			}
			if cell.Level != 1 || cell.Color != "blue" {
				t.Errorf("ring cell (%d,%d) = %+v, want level 1 color blue", x, y, cell)
			}
		}
	}
}

func TestStripesSmallGrid(t *testing.T) {
	// 4x1 grid, stripe width 2: the projection at center 1.5 splits the
	// row into two cells per stripe.
	p, err := Generate(Config{
		Width:  4,
		Height: 1,
		Colors: []Color{"a", "b"},
		Shape:  Stripes{StripeWidth: 2},
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	row := p.Grid[0]
	if row[0].Color != row[1].Color {
		t.Errorf("left cells differ: %q vs %q", row[0].Color, row[1].Color)
	}
	if row[2].Color != row[3].Color {
		t.Errorf("right cells differ: %q vs %q", row[2].Color, row[3].Color)
	}
	if row[0].Color == row[2].Color {
		t.Errorf("left and right stripes share color %q", row[0].Color)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	configs := []Config{
		layeredConfig(Rectangles{Size: Layers(5)}, 20, 15, "a", "b", "c"),
		layeredConfig(Circles{Size: Thickness(2.5)}, 17, 17, "a", "b"),
		layeredConfig(Polygons{Size: Layers(4), Sides: 6}, 21, 13, "a", "b", "c"),
		{Width: 16, Height: 9, Colors: []Color{"a", "b", "c"}, Tilt: 30, Shape: Stripes{StripeWidth: 3}},
		{Width: 24, Height: 18, Colors: []Color{"a", "b", "c"}, Shape: IsometricCubes{CubeSize: 4}},
	}
	for _, cfg := range configs {
		cfg.Tilt += 17.5
		cfg.OffsetX = 1.25
		cfg.OffsetY = -0.75

		p1, err := Generate(cfg)
		if err != nil {
			t.Fatalf("Generate(%s) error: %v", ShapeName(cfg.Shape), err)
		}
		p2, err := Generate(cfg)
		if err != nil {
			t.Fatalf("Generate(%s) repeat error: %v", ShapeName(cfg.Shape), err)
		}
		if !reflect.DeepEqual(p1.Grid, p2.Grid) {
			t.Errorf("Generate(%s) is not deterministic", ShapeName(cfg.Shape))
		}
	}
}

func TestLevelsWithinPalette(t *testing.T) {
	configs := []Config{
		layeredConfig(Rectangles{Size: Layers(9)}, 30, 20, "a", "b"),
		layeredConfig(Circles{Size: Layers(7)}, 25, 25, "a", "b", "c"),
		layeredConfig(Polygons{Size: Thickness(1.5), Sides: 5}, 19, 23, "a"),
		{Width: 12, Height: 12, Colors: []Color{"a", "b"}, Tilt: 45, Shape: Stripes{StripeWidth: 1.5}},
		{Width: 30, Height: 30, Colors: []Color{"a"}, Shape: IsometricCubes{CubeSize: 5}},
		{Width: 30, Height: 30, Colors: []Color{"a", "b"}, Shape: IsometricCubes{CubeSize: 3}},
	}
	for _, cfg := range configs {
		p, err := Generate(cfg)
		if err != nil {
			t.Fatalf("Generate(%s) error: %v", ShapeName(cfg.Shape), err)
		}
		n := len(cfg.Colors)
		for y, row := range p.Grid {
			for x, cell := range row {
				if cell.Level < 0 || cell.Level >= n {
					t.Fatalf("%s cell (%d,%d) level %d outside [0,%d)",
						ShapeName(cfg.Shape), x, y, cell.Level, n)
				}
				if cell.Color != cfg.Colors[cell.Level] {
					t.Fatalf("%s cell (%d,%d) color %q does not match level %d",
						ShapeName(cfg.Shape), x, y, cell.Color, cell.Level)
				}
			}
		}
	}
}

func TestCornerReachesLastLayer(t *testing.T) {
	// In count mode the corner cell sits at the maximum distance and must
	// land in the last layer.
	shapes := []Shape{
		Rectangles{Size: Layers(4)},
		Circles{Size: Layers(4)},
		Polygons{Size: Layers(4), Sides: 6},
	}
	for _, shape := range shapes {
		cfg := layeredConfig(shape, 15, 11, "a", "b", "c", "d")
		p, err := Generate(cfg)
		if err != nil {
			t.Fatalf("Generate(%s) error: %v", ShapeName(shape), err)
		}
		corner := p.Grid[0][0]
		if corner.Level != 3 {
			t.Errorf("%s corner level = %d, want 3", ShapeName(shape), corner.Level)
		}
	}
}

func TestCornerLevelCyclesPalette(t *testing.T) {
	// With more layers than colors the corner layer folds through the
	// palette: layer 5 of 6 with 4 colors cycles to color index 1.
	cfg := layeredConfig(Rectangles{Size: Layers(6)}, 15, 15, "a", "b", "c", "d")
	p, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got := p.Grid[0][0].Level; got != 5%4 {
		t.Errorf("corner level = %d, want %d", got, 5%4)
	}
}

func TestTiltFullTurnIdentity(t *testing.T) {
	base := layeredConfig(Polygons{Size: Layers(5), Sides: 7}, 24, 18, "a", "b", "c")
	base.OffsetX = 0.5

	zero := base
	zero.Tilt = 0
	full := base
	full.Tilt = 360

	p0, err := Generate(zero)
	if err != nil {
		t.Fatalf("Generate(tilt=0) error: %v", err)
	}
	p360, err := Generate(full)
	if err != nil {
		t.Fatalf("Generate(tilt=360) error: %v", err)
	}
	if !reflect.DeepEqual(p0.Grid, p360.Grid) {
		t.Error("tilt=360 grid differs from tilt=0")
	}
}

func TestStripesNegativeIndices(t *testing.T) {
	// Cells left of the center produce negative stripe indices; the
	// positive modulo must keep the cyclic color sequence intact across
	// the origin with no negative levels.
	p, err := Generate(Config{
		Width:  9,
		Height: 1,
		Colors: []Color{"a", "b", "c"},
		Shape:  Stripes{StripeWidth: 1},
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	row := p.Grid[0]
	for x, cell := range row {
		if cell.Level < 0 {
			t.Fatalf("cell %d has negative level %d", x, cell.Level)
		}
		if x == 0 {
			continue
		}
		prev := row[x-1].Level
		if cell.Level != (prev+1)%3 {
			t.Errorf("cell %d level %d does not continue cycle after %d", x, cell.Level, prev)
		}
	}
}

func TestPolygonSidesClamped(t *testing.T) {
	cfg := layeredConfig(Polygons{Size: Layers(3), Sides: 1}, 9, 9, "a")
	p, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if p.ResolvedSides != 3 {
		t.Errorf("ResolvedSides = %d, want 3", p.ResolvedSides)
	}
}

func TestLayerCountClamped(t *testing.T) {
	cfg := layeredConfig(Circles{Size: Layers(0)}, 5, 5, "a", "b")
	p, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if p.ResolvedLayerCount != 1 {
		t.Errorf("ResolvedLayerCount = %d, want 1", p.ResolvedLayerCount)
	}
	for _, row := range p.Grid {
		for _, cell := range row {
			if cell.Level != 0 {
				t.Fatalf("single-layer grid has level %d", cell.Level)
			}
		}
	}
}

func TestDegenerateSingleCell(t *testing.T) {
	// On a 1x1 grid every corner coincides with the center, so the
	// maximum distance is ~0 and the classifier must not divide by zero.
	cfg := layeredConfig(Rectangles{Size: Layers(3)}, 1, 1, "a", "b")
	p, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if p.Grid[0][0].Level != 0 {
		t.Errorf("1x1 grid level = %d, want 0", p.Grid[0][0].Level)
	}
}

func TestValidate(t *testing.T) {
	valid := layeredConfig(Rectangles{Size: Layers(2)}, 3, 3, "a")

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"negative height", func(c *Config) { c.Height = -2 }, false},
		{"empty palette", func(c *Config) { c.Colors = nil }, false},
		{"zero ratioX", func(c *Config) { c.RatioX = 0 }, false},
		{"negative ratioY", func(c *Config) { c.RatioY = -1 }, false},
		{"missing shape", func(c *Config) { c.Shape = nil }, false},
		{"zero thickness", func(c *Config) { c.Shape = Circles{Size: Thickness(0)} }, false},
		{"zero stripe width", func(c *Config) { c.Shape = Stripes{} }, false},
		{"stripes ignore ratios", func(c *Config) {
			c.Shape = Stripes{StripeWidth: 2}
			c.RatioX = 0
			c.RatioY = 0
		}, true},
		{"cubes ignore ratios and size", func(c *Config) {
			c.Shape = IsometricCubes{CubeSize: 0}
			c.RatioX = 0
			c.RatioY = 0
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestHistogram(t *testing.T) {
	cfg := layeredConfig(Rectangles{Size: Layers(2)}, 3, 3, "red", "blue")
	p, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	counts := Histogram(p.Grid)
	if counts["red"] != 1 || counts["blue"] != 8 {
		t.Errorf("Histogram = %v, want red:1 blue:8", counts)
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != 9 {
		t.Errorf("histogram total = %d, want 9", total)
	}
}

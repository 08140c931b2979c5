// Package palette provides the built-in floss color palettes.
//
// Palettes are static data: ordered lists of named colors matched to
// common embroidery floss shades. The engine itself never depends on this
// package; palettes exist so the CLI and server can offer sensible color
// sets without the caller typing hex values.
package palette

import (
	"sort"

	"github.com/HamletDuFromage/x-stitch/pkg/errors"
	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
)

// Entry is a single palette color with a display name.
type Entry struct {
	Name  string        `json:"name"`
	Color pattern.Color `json:"color"`
}

// Palette is an ordered, named list of colors. Order matters: the engine
// cycles colors by index.
type Palette struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Entries     []Entry `json:"entries"`
}

// Colors returns the palette's colors in order, as a fresh slice.
func (p Palette) Colors() []pattern.Color {
	colors := make([]pattern.Color, len(p.Entries))
	for i, e := range p.Entries {
		colors[i] = e.Color
	}
	return colors
}

// DefaultName is the palette used when the caller specifies none.
const DefaultName = "classic"

// builtin holds the shipped palettes, keyed by name.
// Shade names follow the common DMC floss naming.
var builtin = map[string]Palette{
	"classic": {
		Name:        "classic",
		Description: "High-contrast sampler reds and blues on snow white",
		Entries: []Entry{
			{Name: "321 Red", Color: "#c72b3b"},
			{Name: "B5200 Snow White", Color: "#ffffff"},
			{Name: "796 Royal Blue Dark", Color: "#11416d"},
			{Name: "310 Black", Color: "#000000"},
		},
	},
	"isometric": {
		Name:        "isometric",
		Description: "Three-tone set for tumbling-blocks cubes",
		Entries: []Entry{
			{Name: "762 Pearl Gray Very Light", Color: "#ececec"},
			{Name: "415 Pearl Gray", Color: "#adacac"},
			{Name: "413 Pewter Gray Dark", Color: "#56565c"},
		},
	},
	"monochrome": {
		Name:        "monochrome",
		Description: "Graded grays for layered contours",
		Entries: []Entry{
			{Name: "3799 Pewter Gray Very Dark", Color: "#424242"},
			{Name: "414 Steel Gray Dark", Color: "#8c8c8c"},
			{Name: "318 Steel Gray Light", Color: "#ababab"},
			{Name: "415 Pearl Gray", Color: "#adacac"},
			{Name: "White", Color: "#fcfbf8"},
		},
	},
	"autumn": {
		Name:        "autumn",
		Description: "Warm browns and golds",
		Entries: []Entry{
			{Name: "918 Red Copper Dark", Color: "#82340a"},
			{Name: "720 Orange Spice Dark", Color: "#e55c1f"},
			{Name: "728 Topaz", Color: "#e4b044"},
			{Name: "3822 Straw Light", Color: "#f6dc98"},
		},
	},
	"sea": {
		Name:        "sea",
		Description: "Cool teals and deep blues",
		Entries: []Entry{
			{Name: "3808 Turquoise Ultra Very Dark", Color: "#366970"},
			{Name: "597 Turquoise", Color: "#5ba3b3"},
			{Name: "747 Sky Blue Very Light", Color: "#e5fcfd"},
			{Name: "823 Navy Blue Dark", Color: "#213063"},
		},
	},
}

// All returns every built-in palette, sorted by name.
func All() []Palette {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)

	palettes := make([]Palette, len(names))
	for i, name := range names {
		palettes[i] = builtin[name]
	}
	return palettes
}

// Lookup returns the built-in palette with the given name.
func Lookup(name string) (Palette, error) {
	p, ok := builtin[name]
	if !ok {
		return Palette{}, errors.New(errors.ErrCodePaletteNotFound, "unknown palette %q", name)
	}
	return p, nil
}

// Default returns the default palette.
func Default() Palette {
	return builtin[DefaultName]
}

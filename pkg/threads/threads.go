// Package threads converts a pattern's color histogram into thread-usage
// estimates: stitch counts, floss length and skein counts per color.
//
// The numbers are planning estimates, not guarantees. They assume full
// cross stitches and include a configurable waste allowance for anchoring
// and thread changes.
package threads

import (
	"sort"

	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
)

// Fabric and floss constants used by the estimator.
const (
	// DefaultFabricCount is stitches per inch of aida fabric.
	DefaultFabricCount = 14

	// DefaultStrands is the number of floss strands per stitch.
	DefaultStrands = 2

	// DefaultWaste is the fraction of extra thread for anchoring and
	// thread changes.
	DefaultWaste = 0.15

	// skeinLengthCM is the length of one six-strand skein (8.7 yd).
	skeinLengthCM = 795.0

	// skeinStrands is the number of strands in a skein as sold.
	skeinStrands = 6

	// stitchLengthFactor approximates the thread consumed by one full
	// cross stitch as a multiple of the stitch cell size: two diagonals
	// plus the travel between holes.
	stitchLengthFactor = 4.8

	cmPerInch = 2.54
)

// Options configures an estimate. The zero value selects the defaults.
type Options struct {
	// FabricCount is the fabric's stitches per inch (aida count).
	FabricCount int

	// Strands is the number of floss strands stitched together.
	Strands int

	// Waste is the extra-thread fraction added on top of the raw length.
	Waste float64
}

func (o *Options) setDefaults() {
	if o.FabricCount <= 0 {
		o.FabricCount = DefaultFabricCount
	}
	if o.Strands <= 0 {
		o.Strands = DefaultStrands
	}
	if o.Waste < 0 {
		o.Waste = DefaultWaste
	}
}

// ColorUsage is the estimated thread usage for one palette color.
type ColorUsage struct {
	Color    pattern.Color `json:"color"`
	Stitches int           `json:"stitches"`
	LengthCM float64       `json:"lengthCm"`
	Skeins   float64       `json:"skeins"`
}

// Summary is a complete usage estimate for a pattern.
type Summary struct {
	Colors        []ColorUsage `json:"colors"`
	TotalStitches int          `json:"totalStitches"`
	TotalLengthCM float64      `json:"totalLengthCm"`
}

// Estimate converts a color histogram (see pattern.Histogram) into
// per-color thread usage. Colors are sorted by descending stitch count,
// ties broken by color value for deterministic output.
func Estimate(hist map[pattern.Color]int, opts Options) Summary {
	opts.setDefaults()

	stitchCM := cmPerInch / float64(opts.FabricCount)
	perStitchCM := stitchCM * stitchLengthFactor * (1 + opts.Waste)

	// One skein as sold yields skeinStrands/Strands working lengths.
	usableSkeinCM := skeinLengthCM * float64(skeinStrands) / float64(opts.Strands)

	var s Summary
	s.Colors = make([]ColorUsage, 0, len(hist))
	for color, stitches := range hist {
		length := float64(stitches) * perStitchCM
		s.Colors = append(s.Colors, ColorUsage{
			Color:    color,
			Stitches: stitches,
			LengthCM: length,
			Skeins:   length / usableSkeinCM,
		})
		s.TotalStitches += stitches
		s.TotalLengthCM += length
	}

	sort.Slice(s.Colors, func(i, j int) bool {
		if s.Colors[i].Stitches != s.Colors[j].Stitches {
			return s.Colors[i].Stitches > s.Colors[j].Stitches
		}
		return s.Colors[i].Color < s.Colors[j].Color
	})

	return s
}

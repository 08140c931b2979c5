package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/HamletDuFromage/x-stitch/pkg/errors"
	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
)

// PNG renders the grid as a raster image. Cell colors must be hex values
// ("#RGB" or "#RRGGBB"); anything else fails with INVALID_COLOR.
func PNG(g pattern.Grid, opts ...Option) ([]byte, error) {
	r := newRenderer(opts)
	cs := int(r.cellSize)
	if cs < 1 {
		cs = 1
	}

	// Resolve each distinct palette color once.
	resolved := make(map[pattern.Color]color.RGBA)
	for _, row := range g {
		for _, cell := range row {
			if _, ok := resolved[cell.Color]; ok {
				continue
			}
			c, err := ParseHexColor(string(cell.Color))
			if err != nil {
				return nil, err
			}
			resolved[cell.Color] = c
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, g.Width()*cs, g.Height()*cs))
	for y, row := range g {
		for x, cell := range row {
			c := resolved[cell.Color]
			for py := y * cs; py < (y+1)*cs; py++ {
				for px := x * cs; px < (x+1)*cs; px++ {
					img.SetRGBA(px, py, c)
				}
			}
		}
	}

	if r.gridLines {
		line, err := ParseHexColor(r.lineColor)
		if err != nil {
			line = color.RGBA{A: 0x33}
		}
		for x := 0; x <= g.Width(); x++ {
			px := min(x*cs, img.Rect.Max.X-1)
			for py := 0; py < img.Rect.Max.Y; py++ {
				img.SetRGBA(px, py, blend(img.RGBAAt(px, py), line))
			}
		}
		for y := 0; y <= g.Height(); y++ {
			py := min(y*cs, img.Rect.Max.Y-1)
			for px := 0; px < img.Rect.Max.X; px++ {
				img.SetRGBA(px, py, blend(img.RGBAAt(px, py), line))
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" into an RGBA color.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "not a hex color: %q", s)
	}
	hex := s[1:]

	var vals []uint8
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			v, ok := hexNibble(hex[i])
			if !ok {
				return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "not a hex color: %q", s)
			}
			vals = append(vals, v<<4|v)
		}
		vals = append(vals, 0xff)
	case 6, 8:
		for i := 0; i+1 < len(hex); i += 2 {
			hi, ok1 := hexNibble(hex[i])
			lo, ok2 := hexNibble(hex[i+1])
			if !ok1 || !ok2 {
				return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "not a hex color: %q", s)
			}
			vals = append(vals, hi<<4|lo)
		}
		if len(vals) == 3 {
			vals = append(vals, 0xff)
		}
	default:
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "not a hex color: %q", s)
	}

	return color.RGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// blend composites src over dst using src's alpha.
func blend(dst, src color.RGBA) color.RGBA {
	a := uint16(src.A)
	inv := 255 - a
	return color.RGBA{
		R: uint8((uint16(src.R)*a + uint16(dst.R)*inv) / 255),
		G: uint8((uint16(src.G)*a + uint16(dst.G)*inv) / 255),
		B: uint8((uint16(src.B)*a + uint16(dst.B)*inv) / 255),
		A: 255,
	}
}

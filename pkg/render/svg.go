package render

import (
	"bytes"
	"fmt"

	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
)

// DefaultCellSize is the rendered size of one grid cell in pixels.
const DefaultCellSize = 10

// Option configures the SVG and PNG sinks.
type Option func(*renderer)

type renderer struct {
	cellSize  float64
	gridLines bool
	lineColor string
}

func newRenderer(opts []Option) renderer {
	r := renderer{cellSize: DefaultCellSize, lineColor: "#00000033"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithCellSize sets the rendered cell size in pixels.
func WithCellSize(px float64) Option {
	return func(r *renderer) {
		if px > 0 {
			r.cellSize = px
		}
	}
}

// WithGridLines draws the stitch grid on top of the cells.
func WithGridLines() Option {
	return func(r *renderer) { r.gridLines = true }
}

// WithGridLineColor sets the grid line color (implies grid lines).
func WithGridLineColor(color string) Option {
	return func(r *renderer) {
		r.gridLines = true
		r.lineColor = color
	}
}

// SVG renders the grid as an SVG document, one rectangle per cell.
func SVG(g pattern.Grid, opts ...Option) []byte {
	r := newRenderer(opts)
	cs := r.cellSize
	w := float64(g.Width()) * cs
	h := float64(g.Height()) * cs

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n", w, h, w, h)

	for y, row := range g {
		for x, cell := range row {
			fmt.Fprintf(&buf, `  <rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>`+"\n",
				float64(x)*cs, float64(y)*cs, cs, cs, cell.Color)
		}
	}

	if r.gridLines {
		fmt.Fprintf(&buf, `  <g stroke="%s" stroke-width="1">`+"\n", r.lineColor)
		for x := 0; x <= g.Width(); x++ {
			fx := float64(x) * cs
			fmt.Fprintf(&buf, `    <line x1="%g" y1="0" x2="%g" y2="%g"/>`+"\n", fx, fx, h)
		}
		for y := 0; y <= g.Height(); y++ {
			fy := float64(y) * cs
			fmt.Fprintf(&buf, `    <line x1="0" y1="%g" x2="%g" y2="%g"/>`+"\n", fy, w, fy)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

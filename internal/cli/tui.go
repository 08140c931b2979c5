package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
	"github.com/HamletDuFromage/x-stitch/pkg/render"
)

// Editor styles
var (
	tuiLabelStyle = lipgloss.NewStyle().Foreground(colorGray)
	tuiValueStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	tuiErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// shapeCycle is the order shapes rotate through in the editor.
var shapeCycle = []string{
	pattern.ShapeRectangles,
	pattern.ShapeCircles,
	pattern.ShapePolygons,
	pattern.ShapeStripes,
	pattern.ShapeIsometricCubes,
}

const (
	tiltStep   = 5.0
	offsetStep = 0.5
)

// previewModel is the bubbletea model for the interactive pattern editor.
// Every parameter change regenerates the grid; generation is fast enough
// that no debouncing is needed at terminal sizes.
type previewModel struct {
	cfg      pattern.Config
	shapeIdx int
	layers   int
	sides    int

	rendered string
	resolved int
	err      error
}

func newPreviewModel(cfg pattern.Config) (previewModel, error) {
	m := previewModel{cfg: cfg, layers: defaultLayers, sides: 6}

	// Recover the starting point from the incoming shape so the editor
	// resumes where the flags left off.
	name := pattern.ShapeName(cfg.Shape)
	for i, s := range shapeCycle {
		if s == name {
			m.shapeIdx = i
		}
	}
	switch s := cfg.Shape.(type) {
	case pattern.Rectangles:
		if s.Size.Mode == pattern.SizeByCount {
			m.layers = s.Size.LayerCount
		}
	case pattern.Circles:
		if s.Size.Mode == pattern.SizeByCount {
			m.layers = s.Size.LayerCount
		}
	case pattern.Polygons:
		if s.Size.Mode == pattern.SizeByCount {
			m.layers = s.Size.LayerCount
		}
		m.sides = s.Sides
	}

	m.regenerate()
	if m.err != nil {
		return m, m.err
	}
	return m, nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left":
		m.cfg.Tilt -= tiltStep
	case "right":
		m.cfg.Tilt += tiltStep
	case "up":
		m.layers++
	case "down":
		if m.layers > 1 {
			m.layers--
		}
	case "h":
		m.cfg.OffsetX -= offsetStep
	case "l":
		m.cfg.OffsetX += offsetStep
	case "k":
		m.cfg.OffsetY -= offsetStep
	case "j":
		m.cfg.OffsetY += offsetStep
	case "s":
		m.shapeIdx = (m.shapeIdx + 1) % len(shapeCycle)
	case "+":
		m.sides++
	case "-":
		if m.sides > 3 {
			m.sides--
		}
	default:
		return m, nil
	}

	m.regenerate()
	return m, nil
}

// regenerate rebuilds the shape from the editor state and re-renders.
func (m *previewModel) regenerate() {
	sizing := pattern.Layers(m.layers)
	switch shapeCycle[m.shapeIdx] {
	case pattern.ShapeRectangles:
		m.cfg.Shape = pattern.Rectangles{Size: sizing}
	case pattern.ShapeCircles:
		m.cfg.Shape = pattern.Circles{Size: sizing}
	case pattern.ShapePolygons:
		m.cfg.Shape = pattern.Polygons{Size: sizing, Sides: m.sides}
	case pattern.ShapeStripes:
		m.cfg.Shape = pattern.Stripes{StripeWidth: 2}
	case pattern.ShapeIsometricCubes:
		m.cfg.Shape = pattern.IsometricCubes{CubeSize: 4}
	}

	p, err := pattern.Generate(m.cfg)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.rendered = render.Text(p.Grid)
	m.resolved = p.ResolvedLayerCount
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("xstitch preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ tilt  ↑/↓ layers  hjkl offset  s shape  +/- sides  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(tuiErrorStyle.Render(iconError + " " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.rendered)
	b.WriteString("\n")

	params := []string{
		param("shape", shapeCycle[m.shapeIdx]),
		param("layers", fmt.Sprintf("%d", m.resolved)),
		param("tilt", fmt.Sprintf("%.0f°", m.cfg.Tilt)),
		param("offset", fmt.Sprintf("%.1f, %.1f", m.cfg.OffsetX, m.cfg.OffsetY)),
	}
	if shapeCycle[m.shapeIdx] == pattern.ShapePolygons {
		params = append(params, param("sides", fmt.Sprintf("%d", m.sides)))
	}
	b.WriteString(strings.Join(params, StyleDim.Render("  ·  ")))
	b.WriteString("\n")

	return b.String()
}

func param(label, value string) string {
	return tuiLabelStyle.Render(label+" ") + tuiValueStyle.Render(value)
}

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
)

// cellBlock is two full-block runes, approximating a square cell in a
// typical terminal font.
const cellBlock = "██"

// Text renders the grid as ANSI terminal blocks, one line per grid row.
// Colors pass straight through to lipgloss, so hex values and ANSI
// palette indices both work.
func Text(g pattern.Grid) string {
	styles := make(map[pattern.Color]lipgloss.Style)
	var b strings.Builder

	for _, row := range g {
		for _, cell := range row {
			style, ok := styles[cell.Color]
			if !ok {
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(cell.Color))
				styles[cell.Color] = style
			}
			b.WriteString(style.Render(cellBlock))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

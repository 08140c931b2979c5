package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/HamletDuFromage/x-stitch/pkg/palette"
)

// paletteCommand creates the palette command for listing built-in palettes.
func (c *CLI) paletteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the built-in color palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range palette.All() {
				name := p.Name
				if name == palette.DefaultName {
					name += StyleDim.Render(" (default)")
				}
				fmt.Println(StyleTitle.Render(name))
				printDetail("%s", p.Description)

				line := "  "
				for _, e := range p.Entries {
					swatch := lipgloss.NewStyle().
						Foreground(lipgloss.Color(string(e.Color))).
						Render("██")
					line += swatch + " " + StyleDim.Render(fmt.Sprintf("%-8s", string(e.Color))) + " "
				}
				fmt.Println(line)

				names := "  "
				for _, e := range p.Entries {
					names += StyleValue.Render(e.Name) + StyleDim.Render(" · ")
				}
				fmt.Println(names)
				printNewline()
			}

			printNextStep("Use a palette", "xstitch generate -p sea")
			return nil
		},
	}
}

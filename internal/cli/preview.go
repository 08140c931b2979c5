package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
	"github.com/HamletDuFromage/x-stitch/pkg/render"
)

// previewCommand creates the preview command for terminal rendering.
func (c *CLI) previewCommand() *cobra.Command {
	opts := configOpts{}
	var interactive bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show a pattern in the terminal",
		Long: `Render a pattern as colored blocks in the terminal. With --interactive,
open a live editor where tilt, layers, offset and shape can be adjusted
with the keyboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.buildConfig()
			if err != nil {
				return err
			}
			if interactive {
				return c.runInteractivePreview(cfg)
			}
			return c.runPreview(cfg)
		},
	}

	opts.addConfigFlags(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the interactive editor")

	return cmd
}

func (c *CLI) runPreview(cfg pattern.Config) error {
	p, err := pattern.Generate(cfg)
	if err != nil {
		return err
	}
	fmt.Print(render.Text(p.Grid))
	printNewline()
	printStats(cfg.Width, cfg.Height, p.ResolvedLayerCount, false)
	return nil
}

func (c *CLI) runInteractivePreview(cfg pattern.Config) error {
	model, err := newPreviewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

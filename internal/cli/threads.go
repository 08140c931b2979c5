package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/HamletDuFromage/x-stitch/pkg/pattern"
	"github.com/HamletDuFromage/x-stitch/pkg/threads"
)

// threadsCommand creates the threads command for floss estimation.
func (c *CLI) threadsCommand() *cobra.Command {
	opts := configOpts{}
	var fabricCount, strands int

	cmd := &cobra.Command{
		Use:   "threads",
		Short: "Estimate floss usage for a pattern",
		Long: `Generate a pattern and estimate how much embroidery floss each color
needs, in centimeters and standard skeins.

Examples:
  xstitch threads --shape circles --layers 6
  xstitch threads -c mandala.json --fabric-count 18`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.buildConfig()
			if err != nil {
				return err
			}
			return c.runThreads(cfg, threads.Options{
				FabricCount: fabricCount,
				Strands:     strands,
			})
		},
	}

	opts.addConfigFlags(cmd)
	cmd.Flags().IntVar(&fabricCount, "fabric-count", threads.DefaultFabricCount, "fabric count (stitches per inch)")
	cmd.Flags().IntVar(&strands, "strands", threads.DefaultStrands, "floss strands per stitch")

	return cmd
}

func (c *CLI) runThreads(cfg pattern.Config, opts threads.Options) error {
	p, err := pattern.Generate(cfg)
	if err != nil {
		return err
	}

	summary := threads.Estimate(pattern.Histogram(p.Grid), opts)

	rows := make([][]string, 0, len(summary.Colors))
	for _, u := range summary.Colors {
		rows = append(rows, []string{
			string(u.Color),
			fmt.Sprintf("%d", u.Stitches),
			fmt.Sprintf("%.0f cm", u.LengthCM),
			fmt.Sprintf("%.2f", u.Skeins),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Color", "Stitches", "Length", "Skeins").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				r := rows[row][0]
				return lipgloss.NewStyle().Foreground(lipgloss.Color(r))
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	printKeyValue("Stitches", fmt.Sprintf("%d", summary.TotalStitches))
	printKeyValue("Floss", fmt.Sprintf("%.0f cm", summary.TotalLengthCM))
	printKeyValue("Fabric", fmt.Sprintf("%d-count, %d strands", opts.FabricCount, opts.Strands))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HamletDuFromage/x-stitch/pkg/errors"
	xio "github.com/HamletDuFromage/x-stitch/pkg/io"
	"github.com/HamletDuFromage/x-stitch/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	configOpts

	output    string // output file (single format) or base path (multiple)
	formats   []string
	cellSize  float64
	gridLines bool
	noCache   bool
	export    string // write the configuration JSON to this path
}

// generateCommand creates the generate command.
//
// Default settings:
//   - format: svg
//   - cell size: 10px
//   - caching: enabled (file cache under ~/.cache/xstitch/)
func (c *CLI) generateCommand() *cobra.Command {
	var formatsStr string
	opts := generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a pattern and write it to disk",
		Long: `Generate a cross-stitch pattern from flags or a configuration file and
write it in one or more formats.

Examples:
  xstitch generate --shape circles --layers 6 -o rings.svg
  xstitch generate --shape polygons --sides 5 --tilt 18 -f svg,png
  xstitch generate -c mandala.json -f png -o mandala.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runGenerate(cmd.Context(), &opts)
		},
	}

	opts.addConfigFlags(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, text (comma-separated)")
	cmd.Flags().Float64Var(&opts.cellSize, "cell-size", 0, "rendered cell size in pixels")
	cmd.Flags().BoolVar(&opts.gridLines, "grid-lines", false, "draw the stitch grid in SVG/PNG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&opts.export, "export", "", "also write the configuration JSON to this path")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts) error {
	cfg, err := opts.buildConfig()
	if err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	result, err := newRunner(logger, opts.noCache).Execute(ctx, pipeline.Options{
		Config:    cfg,
		Formats:   opts.formats,
		CellSize:  opts.cellSize,
		GridLines: opts.gridLines,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %dx%d pattern", cfg.Width, cfg.Height))

	printSuccess("Pattern ready")
	printStats(cfg.Width, cfg.Height, result.Pattern.ResolvedLayerCount, result.Stats.CacheHits > 0)

	for _, format := range opts.formats {
		data := result.Artifacts[format]

		// Text previews go to the terminal unless an output path is set.
		if format == pipeline.FormatText && opts.output == "" {
			fmt.Print(string(data))
			continue
		}

		path := outputPath(opts.output, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	if opts.export != "" {
		if err := errors.ValidateOutputPath(opts.export); err != nil {
			return err
		}
		if err := xio.ExportFile(cfg, opts.export); err != nil {
			return err
		}
		printFile(opts.export)
	}

	printNewline()
	printNextStep("Estimate thread usage", "xstitch threads "+flagEcho(opts))
	return nil
}

// outputPath derives the file path for one format. With multiple formats
// the output flag acts as a base path and the format extension is
// appended.
func outputPath(output, format string, multiple bool) string {
	if output == "" {
		return "pattern." + extension(format)
	}
	if !multiple {
		return output
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	return base + "." + extension(format)
}

func extension(format string) string {
	if format == pipeline.FormatText {
		return "txt"
	}
	return format
}

// flagEcho reproduces the config source flags for the next-step hint.
func flagEcho(opts *generateOpts) string {
	if opts.config != "" {
		return "-c " + opts.config
	}
	return fmt.Sprintf("-s %s -W %d -H %d", opts.shape, opts.width, opts.height)
}

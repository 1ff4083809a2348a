package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	gfaerrors "github.com/matzehuels/gfagraph/pkg/errors"
	"github.com/matzehuels/gfagraph/pkg/graph"
	"github.com/matzehuels/gfagraph/pkg/render"
	"github.com/matzehuels/gfagraph/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple outputs)
	formats  []string // output formats: "svg", "dot", "pdf", "png"
	detailed bool     // show lengths, tags and overlaps
	scale    float64  // PNG resolution factor

	status io.Writer // progress and written paths, usually stderr
}

func (o *renderOpts) statusWriter() io.Writer {
	if o.status == nil {
		return io.Discard
	}
	return o.status
}

// renderCommand creates the render command. Defaults for format, detail and
// scale come from the config file.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Draw a GFA graph as a node-link diagram",
		Long: `Draw segments as boxes and links, containments, edges and gaps as arrows.
Referenced but undefined segments are drawn dashed.`,
		Example: `  gfagraph render assembly.gfa
  gfagraph render -f svg,png --detailed assembly.gfa -o out/assembly`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGFAFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("format") {
				formatsStr = c.Config.Render.Format
			}
			if !flags.Changed("detailed") {
				opts.detailed = c.Config.Render.Detailed
			}
			if !flags.Changed("scale") {
				opts.scale = c.Config.Render.Scale
			}
			opts.status = cmd.ErrOrStderr()
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show segment lengths, tags and overlaps")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "PNG resolution factor")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	return strings.Split(s, ",")
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !render.ValidFormat(f) {
			return gfaerrors.New(gfaerrors.ErrCodeInvalidInput,
				"invalid format: %s (must be one of %s)", f, strings.Join(render.Formats(), ", "))
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinPath {
			return "graph"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if render.ValidFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where one format is written.
func outputPath(opts *renderOpts, input, format string) string {
	if opts.output != "" && len(opts.formats) == 1 && filepath.Ext(opts.output) != "" {
		return opts.output
	}
	return basePath(opts.output, input) + "." + format
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	g, err := c.loadGraph(ctx, input, false)
	if err != nil {
		return err
	}
	if n := len(g.Placeholders()); n > 0 {
		logger.Warnf("%d unresolved reference(s) drawn as placeholders", n)
	}

	for _, format := range opts.formats {
		path := outputPath(opts, input, format)
		if err := renderTo(ctx, g, format, path, opts); err != nil {
			return err
		}
		printFile(opts.statusWriter(), path)
	}
	return nil
}

func renderTo(ctx context.Context, g *graph.Graph, format, path string, opts *renderOpts) error {
	timer := startTimer(loggerFromContext(ctx))
	var data []byte
	err := spin(ctx, opts.statusWriter(), fmt.Sprintf("Rendering %s...", format), func() error {
		var err error
		data, err = nodelink.Render(ctx, g, format, nodelink.Options{Detailed: opts.detailed, Scale: opts.scale})
		return err
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	timer.done("rendered", "format", format, "path", path, "bytes", len(data))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathplay/pkg/pipeline"
	"github.com/matzehuels/pathplay/pkg/render"
)

// renderCommand creates the render command, which draws one frame of the
// playback to a file.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		source     string
		step       int
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph-file]",
		Short: "Render a playback frame to SVG, PNG, PDF or DOT",
		Long: `Render a playback frame to SVG, PNG, PDF or DOT.

The frame is the one the player shows after --step ticks; the default
renders the completed run with the shortest paths highlighted. PNG and PDF
output needs rsvg-convert on the PATH.

Rendered frames are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			for _, f := range formats {
				if err := render.ValidateFormat(f); err != nil {
					return err
				}
			}
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), renderParams{
				input:   input,
				output:  output,
				source:  source,
				step:    step,
				formats: formats,
				noCache: noCache,
				refresh: refresh,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().StringVarP(&source, "source", "s", "", "source node label (overrides the file)")
	cmd.Flags().IntVar(&step, "step", pipeline.FinalStep, "playback step to render (-1 renders the completed run)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if cached")

	return cmd
}

type renderParams struct {
	input   string
	output  string
	source  string
	step    int
	formats []string
	noCache bool
	refresh bool
}

func (c *CLI) runRender(ctx context.Context, w io.Writer, p renderParams) error {
	doc, err := c.loadDocument(p.input, p.source)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(p.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := newSpinner(ctx, os.Stderr, "Rendering frame...")
	spin.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Document: *doc,
		Step:     p.step,
		Formats:  p.formats,
		Refresh:  p.refresh,
	})
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()

	printSuccess(w, "Rendered %s", render.StatusLine(result.Frame))
	printStats(w, doc.Graph.NodeCount(), doc.Graph.EdgeCount(), result.CacheHit)

	base := basePath(p.output, p.input)
	for _, format := range p.formats {
		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(w, path)
	}
	return nil
}

// basePath derives the output path without extension. Known format
// extensions are stripped from output; without output the input name is
// used, or "graph" for a generated graph.
func basePath(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if render.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input == "" {
		return "graph"
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

package render

import (
	"context"

	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/playback"
)

// Render draws frame f of g in the given format.
func Render(ctx context.Context, g *graph.Graph, f playback.Frame, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	dot := FrameDOT(g, f, opts)
	if format == FormatDOT {
		return []byte(dot), nil
	}

	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatPNG:
		return ToPNG(ctx, svg, 2)
	case FormatPDF:
		return ToPDF(ctx, svg)
	}
	return svg, nil
}

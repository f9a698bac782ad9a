package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/pathfind"
	"github.com/matzehuels/pathplay/pkg/playback"
)

// Colours used for frames.
const (
	ColorSource   = "#2ecc71"
	ColorVisited  = "#e74c3c"
	ColorDefault  = "#3498db"
	ColorPathEdge = "#2ecc71"
	ColorEdge     = "#bdc3c7"
	ColorWeight   = "#e74c3c"
	ColorDistance = "#2c3e50"
	ColorPending  = "#3498db"
)

// Infinity is the text shown for unreachable distances.
const Infinity = "∞"

// Options configures [FrameDOT].
type Options struct {
	// Source is the node drawn as the source when the frame carries no
	// trace, i.e. the editor's current selection. A frame with a trace
	// always uses the trace's source.
	Source int

	// PendingFrom and PendingTo draw a dashed edge that is being created.
	// Negative values mean none; a negative PendingTo with a valid
	// PendingFrom highlights just the first endpoint.
	PendingFrom, PendingTo int

	// PixelsPerInch converts canvas pixels to Graphviz inches. Zero means 96.
	PixelsPerInch float64

	// CanvasHeight is used to flip the y axis. Zero means
	// graph.DefaultCanvasHeight.
	CanvasHeight float64
}

// NoPending is a convenience for Options without an edge in progress.
func NoPending(source int) Options {
	return Options{Source: source, PendingFrom: -1, PendingTo: -1}
}

func (o *Options) setDefaults() {
	if o.PixelsPerInch == 0 {
		o.PixelsPerInch = 96
	}
	if o.CanvasHeight == 0 {
		o.CanvasHeight = graph.DefaultCanvasHeight
	}
}

// FrameDOT converts g, styled for frame f, to Graphviz DOT. Node positions
// are pinned, so the result must be laid out with neato (as [RenderSVG]
// does) or with `neato -n`.
func FrameDOT(g *graph.Graph, f playback.Frame, opts Options) string {
	opts.setDefaults()
	source := opts.Source
	if f.Source != playback.NoSource {
		source = f.Source
	}
	active := f.State == playback.Running || f.State == playback.Completed

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  outputorder=\"edgesfirst\";\n")
	buf.WriteString("  forcelabels=true;\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, width=0.52, penwidth=0, fontname=\"Helvetica-Bold\", fontsize=14, fontcolor=white];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=12, fontcolor=\"" + ColorWeight + "\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{
			fmt.Sprintf("label=%q", n.Label),
			fmt.Sprintf("pos=\"%s,%s!\"", inches(n.Pos.X, opts.PixelsPerInch), inches(opts.CanvasHeight-n.Pos.Y, opts.PixelsPerInch)),
		}

		switch {
		case n.ID == source:
			attrs = append(attrs, "fillcolor=\""+ColorSource+"\"", "width=0.62")
		case active && f.IsVisited(n.ID):
			attrs = append(attrs, "fillcolor=\""+ColorVisited+"\"")
		default:
			attrs = append(attrs, "fillcolor=\""+ColorDefault+"\"")
		}
		if n.ID == opts.PendingFrom || n.ID == opts.PendingTo {
			attrs = append(attrs, "penwidth=3", "color=\""+ColorPending+"\"")
		}
		if active && f.ShowDistances && n.ID < len(f.Distances) {
			attrs = append(attrs, fmt.Sprintf("xlabel=<<FONT COLOR=\"%s\" POINT-SIZE=\"12\">%s</FONT>>", ColorDistance, DistanceText(f.Distances[n.ID])))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	completed := f.State == playback.Completed
	for _, e := range g.Edges() {
		attrs := []string{fmt.Sprintf("label=\"%d\"", e.Weight)}
		if completed && f.OnPath(e.A, e.B) {
			attrs = append(attrs, "color=\""+ColorPathEdge+"\"", "penwidth=3")
		} else {
			attrs = append(attrs, "color=\""+ColorEdge+"\"", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  n%d -- n%d [%s];\n", e.A, e.B, strings.Join(attrs, ", "))
	}

	if g.HasNode(opts.PendingFrom) && g.HasNode(opts.PendingTo) {
		fmt.Fprintf(&buf, "  n%d -- n%d [style=dashed, color=\"%s\", penwidth=2];\n", opts.PendingFrom, opts.PendingTo, ColorPending)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// DistanceText formats a distance for display.
func DistanceText(d int) string {
	if d == pathfind.Unreachable {
		return Infinity
	}
	return strconv.Itoa(d)
}

func inches(px, ppi float64) string {
	return strconv.FormatFloat(px/ppi, 'f', 3, 64)
}

// Package render draws playback frames.
//
// # Overview
//
// A frame is drawn as a Graphviz graph: [FrameDOT] emits DOT with every node
// pinned at its canvas position and styled for the current step, and
// [RenderSVG] lays it out with the neato engine in-process via
// [github.com/goccy/go-graphviz]. [ToPDF] and [ToPNG] convert the SVG with
// rsvg-convert.
//
//	dot := render.FrameDOT(g, frame, render.Options{Source: src})
//	svg, err := render.RenderSVG(ctx, dot)
//
// The colours follow the original playground: the source is green, visited
// nodes red, other nodes blue. Once a run completes, edges on a shortest
// path turn green.
//
// # Text
//
// [StatusLine] and [Results] produce the status bar and results panel shown
// by the terminal player and `pathplay run`.
package render

// Package pkg provides the core libraries for pathplay, a step-by-step
// shortest-path visualizer for small undirected weighted graphs.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [graph] - Nodes, weighted edges, random generation and graph files
//  2. [pathfind] - The shortest-path engine and its recorded trace
//  3. [playback] - The playback state machine, frames and the timed player
//  4. [editor] - Interactive edge creation and source selection
//  5. [render] - DOT, SVG, PNG and PDF frames plus textual results
//  6. [pipeline] - Orchestration (compute → frame → render) with caching
//  7. [server] - The HTTP workspace API
//
// Supporting packages: [cache] (file and Redis frame caches), [config]
// (the TOML config file), [errors] (error codes and validation),
// [observability] (engine, playback and cache hooks) and [buildinfo].
//
// # Data Flow
//
//	graph file / editor / random
//	         ↓
//	    [pathfind] (visit order + distance snapshots)
//	         ↓
//	    [playback] (frame at a step)
//	         ↓
//	    [render] (DOT → SVG → PNG/PDF)
//
// # Quick Start
//
//	g, _ := graph.Random(6, graph.RandomOptions{Seed: 42})
//	tr, _ := pathfind.Compute(g, 0)
//
//	frame, _ := playback.FrameAt(tr, g.EdgeCount(), 3)
//	svg, _ := render.Render(ctx, g, frame, render.FormatSVG, render.NoPending(0))
//
//	for _, r := range render.Results(g, frame) {
//	    fmt.Println(r.Target, r.PathText(), r.Distance)
//	}
//
// [graph]: github.com/matzehuels/pathplay/pkg/graph
// [pathfind]: github.com/matzehuels/pathplay/pkg/pathfind
// [playback]: github.com/matzehuels/pathplay/pkg/playback
// [editor]: github.com/matzehuels/pathplay/pkg/editor
// [render]: github.com/matzehuels/pathplay/pkg/render
// [pipeline]: github.com/matzehuels/pathplay/pkg/pipeline
// [server]: github.com/matzehuels/pathplay/pkg/server
// [cache]: github.com/matzehuels/pathplay/pkg/cache
// [config]: github.com/matzehuels/pathplay/pkg/config
// [errors]: github.com/matzehuels/pathplay/pkg/errors
// [observability]: github.com/matzehuels/pathplay/pkg/observability
// [buildinfo]: github.com/matzehuels/pathplay/pkg/buildinfo
package pkg

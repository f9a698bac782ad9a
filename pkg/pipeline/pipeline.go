// Package pipeline runs the compute → play → render pipeline shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Compute: run the path engine over a graph document
//  2. Position: replay the trace to a given step with a fresh controller
//  3. Render: draw the frame in one or more formats, through the cache
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	defer runner.Close()
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Document: doc,
//	    Step:     pipeline.FinalStep,
//	    Formats:  []string{render.FormatSVG},
//	})
//	svg := result.Artifacts["svg"]
//
// Rendered frames are cached under a hash of the graph document, so the
// same frame of the same graph is drawn once.
package pipeline

import (
	"time"

	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/pathfind"
	"github.com/matzehuels/pathplay/pkg/playback"
	"github.com/matzehuels/pathplay/pkg/render"
)

// FinalStep asks for the completed frame.
const FinalStep = -1

// DefaultFrameTTL is how long rendered frames stay cached.
const DefaultFrameTTL = 24 * time.Hour

// Options configures [Runner.Execute].
type Options struct {
	// Document is the graph and source to run.
	Document graph.Document

	// Step is the playback step to render. FinalStep renders the completed
	// frame.
	Step int

	// Formats lists output formats. Empty means SVG only.
	Formats []string

	// Refresh bypasses cached artifacts.
	Refresh bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	for _, f := range o.Formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.Document.Graph == nil {
		return errNoGraph
	}
	return o.Document.Graph.Validate()
}

// Result holds every stage's output.
type Result struct {
	Trace     *pathfind.Trace
	Frame     playback.Frame
	Artifacts map[string][]byte
	GraphHash string
	Stats     Stats
	CacheHit  bool
}

// Stats records stage timings.
type Stats struct {
	ComputeTime time.Duration
	RenderTime  time.Duration
	Visited     int
	Relaxations int
}

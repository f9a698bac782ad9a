package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/playback"
)

// Status texts.
const (
	IdleHint      = "Pick a source node, add edges or generate a random graph."
	CompletedText = "Algorithm completed!"
)

// StatusLine returns the status bar text for f.
func StatusLine(f playback.Frame) string {
	switch f.State {
	case playback.Running:
		return fmt.Sprintf("Step %d/%d", f.Step, f.Total)
	case playback.Completed:
		return CompletedText
	}
	return IdleHint
}

// Result is one row of the results panel.
type Result struct {
	Target   string   `json:"target"`
	Path     []string `json:"path"`
	Distance int      `json:"distance"`
}

// PathText joins path labels with arrows, e.g. "A → B → C".
func (r Result) PathText() string { return strings.Join(r.Path, " → ") }

// Results lists the shortest path to every reachable target of a completed
// frame, ordered by node ID. Other frames have no results.
func Results(g *graph.Graph, f playback.Frame) []Result {
	if f.State != playback.Completed {
		return nil
	}
	var out []Result
	for _, n := range g.Nodes() {
		path, ok := f.Paths[n.ID]
		if !ok {
			continue
		}
		labels := make([]string, len(path))
		for i, id := range path {
			labels[i] = g.LabelOf(id)
		}
		r := Result{Target: n.Label, Path: labels}
		if n.ID < len(f.Distances) {
			r.Distance = f.Distances[n.ID]
		}
		out = append(out, r)
	}
	return out
}

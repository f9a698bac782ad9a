package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/pathfind"
	"github.com/matzehuels/pathplay/pkg/playback"
	"github.com/matzehuels/pathplay/pkg/render"
)

// runCommand creates the run command, which computes the trace without
// animating it.
func (c *CLI) runCommand() *cobra.Command {
	var (
		source    string
		asJSON    bool
		snapshots bool
	)

	cmd := &cobra.Command{
		Use:   "run [graph-file]",
		Short: "Compute shortest paths and print the trace",
		Long: `Compute shortest paths from the source node and print the visit order,
the final distances and the path to every reachable node.

Graph files may be JSON, TOML or YAML. Without a file a random graph is
generated from the configured node count and density.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runRun(cmd.Context(), cmd.OutOrStdout(), path, source, asJSON, snapshots)
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "source node label (overrides the file)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the trace as JSON")
	cmd.Flags().BoolVar(&snapshots, "snapshots", false, "print every distance snapshot")

	return cmd
}

func (c *CLI) runRun(ctx context.Context, w io.Writer, path, source string, asJSON, snapshots bool) error {
	doc, err := c.loadDocument(path, source)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	tr, err := pathfind.ComputeContext(ctx, doc.Graph, doc.Source)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Computed %d steps", tr.Len()))

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tr)
	}

	g := doc.Graph
	fmt.Fprintln(w, StyleTitle.Render("Shortest paths from "+g.LabelOf(doc.Source)))
	printDetail(w, "%d nodes · %d edges", g.NodeCount(), g.EdgeCount())
	fmt.Fprintln(w)

	printKeyValue(w, "Visit order", labels(g, tr.VisitOrder()))
	printKeyValue(w, "Snapshots", fmt.Sprint(tr.SnapshotCount()))
	if snapshots {
		for i, d := range tr.DistanceStates() {
			printDetail(w, "%2d  %s", i, distanceRow(d))
		}
	}

	if unreachable := unreachableNodes(g, tr.Final()); len(unreachable) > 0 {
		printKeyValue(w, "Unreachable", labels(g, unreachable))
	}

	if g.EdgeCount() == 0 {
		fmt.Fprintln(w)
		printInfo(w, "The graph has no edges")
		return nil
	}
	frame, err := playback.FrameAt(tr, g.EdgeCount(), -1)
	if err != nil {
		return err
	}
	if results := render.Results(g, frame); len(results) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, resultsTable(results))
	}
	return nil
}

// labels joins node labels with arrows.
func labels(g *graph.Graph, ids []int) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = g.LabelOf(id)
	}
	return strings.Join(out, " "+iconArrow+" ")
}

func distanceRow(d pathfind.DistanceTable) string {
	out := make([]string, len(d))
	for i, v := range d {
		out[i] = fmt.Sprintf("%3s", distanceText(v))
	}
	return strings.Join(out, " ")
}

func unreachableNodes(g *graph.Graph, final pathfind.DistanceTable) []int {
	var out []int
	for _, n := range g.Nodes() {
		if !final.Reachable(n.ID) {
			out = append(out, n.ID)
		}
	}
	return out
}

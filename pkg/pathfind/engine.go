package pathfind

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rhartert/sparsesets"

	apperrors "github.com/matzehuels/pathplay/pkg/errors"
	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/observability"
)

// noPredecessor marks nodes whose shortest path has not been found.
const noPredecessor = -1

// arc is one traversable direction of an undirected edge.
type arc struct {
	to     int
	weight int
}

// Compute runs the shortest-path algorithm from source over g and returns
// the recorded trace. It is shorthand for [ComputeContext] with a
// background context.
func Compute(g *graph.Graph, source int) (*Trace, error) {
	return ComputeContext(context.Background(), g, source)
}

// ComputeContext runs the shortest-path algorithm from source over g.
//
// Nodes are finalized one at a time by picking the unvisited node with the
// smallest finite distance, ties going to the lowest node ID. After each
// pick, strictly shorter distances to unvisited neighbours are recorded and
// every such relaxation appends a full snapshot of the distance table. Equal
// candidates are ignored, so the first shortest path discovered wins.
//
// Returns an INVALID_INPUT error if g is nil or empty, or if source is not a
// node of g. The context is only used for observability hooks; the
// computation itself never blocks.
func ComputeContext(ctx context.Context, g *graph.Graph, source int) (*Trace, error) {
	if g == nil || g.NodeCount() == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "graph has no nodes")
	}
	if !g.HasNode(source) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "source %d is not a node of the graph (0..%d)", source, g.NodeCount()-1)
	}

	hooks := observability.Engine()
	hooks.OnComputeStart(ctx, g.NodeCount(), g.EdgeCount(), source)
	start := time.Now()

	r := newRunner(g, source)
	r.process()
	t := &Trace{
		id:         uuid.New(),
		source:     source,
		nodeCount:  r.n,
		visitOrder: r.order,
		states:     r.states,
		paths:      r.paths(),
	}

	hooks.OnComputeComplete(ctx, len(t.visitOrder), len(t.states)-1, time.Since(start), nil)
	return t, nil
}

// runner holds the mutable state of a single computation.
type runner struct {
	n       int
	source  int
	adj     [][]arc         // node -> arcs, in edge insertion order
	dist    DistanceTable   // current best distances
	prev    []int           // node -> predecessor on the best known path
	visited *sparsesets.Set // finalized nodes
	order   []int           // finalized nodes in order
	states  []DistanceTable // snapshots, initial table first
}

func newRunner(g *graph.Graph, source int) *runner {
	n := g.NodeCount()
	r := &runner{
		n:       n,
		source:  source,
		adj:     make([][]arc, n),
		dist:    make(DistanceTable, n),
		prev:    make([]int, n),
		visited: sparsesets.New(n),
		order:   make([]int, 0, n),
	}

	for _, e := range g.Edges() {
		r.adj[e.A] = append(r.adj[e.A], arc{to: e.B, weight: e.Weight})
		r.adj[e.B] = append(r.adj[e.B], arc{to: e.A, weight: e.Weight})
	}

	for i := range r.dist {
		r.dist[i] = Unreachable
		r.prev[i] = noPredecessor
	}
	r.dist[source] = 0
	r.states = append(r.states, r.dist.Clone())
	return r
}

// process finalizes up to n nodes, stopping early once every remaining
// node is unreachable.
func (r *runner) process() {
	for range r.n {
		u, ok := r.closest()
		if !ok {
			return
		}
		r.visited.Insert(u)
		r.order = append(r.order, u)
		r.relax(u)
	}
}

// closest returns the unvisited node with the smallest finite distance.
// The ascending scan with a strict comparison gives ties to the lowest ID.
func (r *runner) closest() (int, bool) {
	best, bestDist := -1, Unreachable
	for v := 0; v < r.n; v++ {
		if !r.visited.Contains(v) && r.dist[v] < bestDist {
			best, bestDist = v, r.dist[v]
		}
	}
	return best, best >= 0
}

// relax improves distances to the unvisited neighbours of u and records a
// snapshot after each improvement.
func (r *runner) relax(u int) {
	for _, a := range r.adj[u] {
		if r.visited.Contains(a.to) {
			continue
		}
		if cand := r.dist[u] + a.weight; cand < r.dist[a.to] {
			r.dist[a.to] = cand
			r.prev[a.to] = u
			r.states = append(r.states, r.dist.Clone())
		}
	}
}

// paths walks predecessor links back from every non-source node. Walks that
// do not end at the source belong to unreachable nodes and are dropped.
func (r *runner) paths() map[int][]int {
	out := make(map[int][]int)
	for v := 0; v < r.n; v++ {
		if v == r.source {
			continue
		}
		var rev []int
		for cur := v; cur != noPredecessor; cur = r.prev[cur] {
			rev = append(rev, cur)
		}
		if rev[len(rev)-1] != r.source {
			continue
		}
		path := make([]int, len(rev))
		for i, id := range rev {
			path[len(rev)-1-i] = id
		}
		out[v] = path
	}
	return out
}

// PathWeight sums the edge weights along path in g. It returns an
// INVALID_INPUT error if two consecutive nodes are not joined by an edge.
func PathWeight(g *graph.Graph, path []int) (int, error) {
	total := 0
	for i := 1; i < len(path); i++ {
		w, ok := g.Weight(path[i-1], path[i])
		if !ok {
			return 0, apperrors.New(apperrors.ErrCodeInvalidInput, "no edge %s-%s on path", g.LabelOf(path[i-1]), g.LabelOf(path[i]))
		}
		total += w
	}
	return total, nil
}

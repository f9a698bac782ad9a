package graph

import (
	"errors"
	"slices"

	apperrors "github.com/matzehuels/pathplay/pkg/errors"
)

var (
	// ErrUnknownNode is returned by [Graph.AddEdge] when an endpoint is not a
	// node of the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same node. Self loops never shorten a path and the editor rejects them.
	ErrSelfLoop = errors.New("self loop")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when an edge between the
	// same unordered pair already exists. (a, b) and (b, a) are the same edge.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Point is a position on the drawing canvas. Only renderers look at it.
type Point struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
}

// Node is a vertex of the graph. ID is the node's index and stays stable for
// the lifetime of the graph; Label is derived from it with [Label].
type Node struct {
	ID    int
	Label string
	Pos   Point
}

// Edge is an undirected weighted edge. A and B are node IDs; the pair is
// unordered, so traversal may go A→B or B→A at the same cost.
type Edge struct {
	A      int
	B      int
	Weight int
}

// Connects reports whether e joins a and b in either direction.
func (e Edge) Connects(a, b int) bool {
	return (e.A == a && e.B == b) || (e.A == b && e.B == a)
}

// Other returns the endpoint of e opposite to id, and false if id is not an
// endpoint of e.
func (e Edge) Other(id int) (int, bool) {
	switch id {
	case e.A:
		return e.B, true
	case e.B:
		return e.A, true
	}
	return 0, false
}

type pair [2]int

func pairOf(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// Graph is a small undirected weighted graph as built by the editing layer.
//
// Nodes are indexed 0..n-1. Edges are kept in insertion order, which is also
// the order the path engine explores neighbours in. The zero value is an
// empty graph with no nodes; use [New] to create one with nodes.
//
// Graph is not safe for concurrent use. Callers that keep editing while a
// trace references the graph should hand the engine a [Graph.Clone].
type Graph struct {
	nodes []Node
	edges []Edge
	index map[pair]int // unordered pair -> position in edges
}

// New creates a graph with n nodes labelled A, B, C, ... and positioned on a
// circle by [CircularLayout] for a default canvas. It returns an
// INVALID_INPUT error if n is outside the editor's [2, 15] range.
func New(n int) (*Graph, error) {
	if err := apperrors.ValidateNodeCount(n); err != nil {
		return nil, err
	}
	return newGraph(n), nil
}

func newGraph(n int) *Graph {
	g := &Graph{
		nodes: make([]Node, n),
		index: make(map[pair]int),
	}
	pos := CircularLayout(n, DefaultCanvasWidth, DefaultCanvasHeight)
	for i := range g.nodes {
		g.nodes[i] = Node{ID: i, Label: Label(i), Pos: pos[i]}
	}
	return g
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id int) bool { return id >= 0 && id < len(g.nodes) }

// Node returns the node with the given ID and true, or the zero Node and
// false if the ID is out of range.
func (g *Graph) Node(id int) (Node, bool) {
	if !g.HasNode(id) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Nodes returns a copy of all nodes ordered by ID.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// LabelOf returns the label of node id, or "?" if the node does not exist.
func (g *Graph) LabelOf(id int) string {
	if n, ok := g.Node(id); ok {
		return n.Label
	}
	return "?"
}

// AddEdge adds an undirected edge between a and b with the given weight.
//
// Errors carry the INVALID_EDGE code and wrap one of [ErrUnknownNode],
// [ErrSelfLoop] or [ErrDuplicateEdge]; weights outside [1, 99] are rejected
// by [apperrors.ValidateWeight].
func (g *Graph) AddEdge(a, b, weight int) error {
	if !g.HasNode(a) || !g.HasNode(b) {
		return apperrors.Wrap(apperrors.ErrCodeInvalidEdge, ErrUnknownNode, "edge %d-%d", a, b)
	}
	if a == b {
		return apperrors.Wrap(apperrors.ErrCodeInvalidEdge, ErrSelfLoop, "edge %s-%s", g.nodes[a].Label, g.nodes[b].Label)
	}
	if g.HasEdge(a, b) {
		return apperrors.Wrap(apperrors.ErrCodeInvalidEdge, ErrDuplicateEdge, "edge %s-%s", g.nodes[a].Label, g.nodes[b].Label)
	}
	if err := apperrors.ValidateWeight(weight); err != nil {
		return err
	}
	if g.index == nil {
		g.index = make(map[pair]int)
	}
	g.index[pairOf(a, b)] = len(g.edges)
	g.edges = append(g.edges, Edge{A: a, B: b, Weight: weight})
	return nil
}

// RemoveEdge removes the edge between a and b if it exists and reports
// whether an edge was removed.
func (g *Graph) RemoveEdge(a, b int) bool {
	i, ok := g.index[pairOf(a, b)]
	if !ok {
		return false
	}
	g.edges = slices.Delete(g.edges, i, i+1)
	g.reindex()
	return true
}

// ClearEdges removes every edge, keeping the nodes.
func (g *Graph) ClearEdges() {
	g.edges = nil
	g.index = make(map[pair]int)
}

// HasEdge reports whether a and b are joined by an edge.
func (g *Graph) HasEdge(a, b int) bool {
	_, ok := g.index[pairOf(a, b)]
	return ok
}

// Weight returns the weight of the edge between a and b.
func (g *Graph) Weight(a, b int) (int, bool) {
	i, ok := g.index[pairOf(a, b)]
	if !ok {
		return 0, false
	}
	return g.edges[i].Weight, true
}

// SetPositions replaces node positions, e.g. after [CircularLayout] for a
// different canvas size. Extra points are ignored; missing ones keep the
// current position.
func (g *Graph) SetPositions(pos []Point) {
	for i := range g.nodes {
		if i < len(pos) {
			g.nodes[i].Pos = pos[i]
		}
	}
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes: slices.Clone(g.nodes),
		edges: slices.Clone(g.edges),
	}
	c.reindex()
	return c
}

// Validate checks every editor invariant: node IDs match their index, edges
// reference existing nodes, no self loops, no duplicate pairs, and weights
// in range. Graphs built through [New] and [Graph.AddEdge] always pass;
// Validate exists for graphs assembled by decoders.
func (g *Graph) Validate() error {
	if err := apperrors.ValidateNodeCount(len(g.nodes)); err != nil {
		return err
	}
	for i, n := range g.nodes {
		if n.ID != i {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "node %q has id %d at index %d", n.Label, n.ID, i)
		}
	}
	seen := make(map[pair]bool, len(g.edges))
	for _, e := range g.edges {
		if !g.HasNode(e.A) || !g.HasNode(e.B) {
			return apperrors.Wrap(apperrors.ErrCodeInvalidEdge, ErrUnknownNode, "edge %d-%d", e.A, e.B)
		}
		if e.A == e.B {
			return apperrors.Wrap(apperrors.ErrCodeInvalidEdge, ErrSelfLoop, "edge %s-%s", g.nodes[e.A].Label, g.nodes[e.B].Label)
		}
		p := pairOf(e.A, e.B)
		if seen[p] {
			return apperrors.Wrap(apperrors.ErrCodeInvalidEdge, ErrDuplicateEdge, "edge %s-%s", g.nodes[e.A].Label, g.nodes[e.B].Label)
		}
		seen[p] = true
		if err := apperrors.ValidateWeight(e.Weight); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) reindex() {
	g.index = make(map[pair]int, len(g.edges))
	for i, e := range g.edges {
		g.index[pairOf(e.A, e.B)] = i
	}
}

// Label returns the display label for node index i: A..Z, then AA, AB, ...
func Label(i int) string {
	if i < 0 {
		return "?"
	}
	var b []byte
	for i >= 0 {
		b = append([]byte{byte('A' + i%26)}, b...)
		i = i/26 - 1
	}
	return string(b)
}

// LabelIndex is the inverse of [Label]. It returns false for strings that
// are not upper-case letter labels.
func LabelIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return 0, false
		}
		n = n*26 + int(r-'A') + 1
	}
	return n - 1, true
}

// Package graph provides the small undirected weighted graph that users build
// in the editor and hand to the path engine.
//
// # Model
//
//   - [Node]: an index-stable vertex with a derived label (A, B, C, ...) and a
//     canvas position used only by renderers
//   - [Edge]: an unordered pair of node IDs with a positive integer weight
//   - [Graph]: 2 to 15 nodes plus edges, with no self loops and no duplicate
//     pairs; [Graph.AddEdge] enforces these invariants as edges arrive
//
// # Building Graphs
//
//	g, err := graph.New(4)          // nodes A..D on a circle
//	err = g.AddEdge(0, 1, 1)        // A-B, weight 1
//	err = g.AddEdge(1, 0, 3)        // INVALID_EDGE: duplicate pair
//
// [Random] reproduces the editor's "random graph" button: every pair is
// joined with probability 0.4 and a weight between 1 and 9.
//
// # Files
//
// Graphs are stored with the source node as a [Document] in JSON, TOML or
// YAML, chosen by file extension:
//
//	nodes = 4
//	source = "A"
//
//	[[edges]]
//	from = "A"
//	to = "B"
//	weight = 1
//
// See [ReadFile], [WriteFile], [Encode] and [Decode].
package graph

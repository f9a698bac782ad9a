// Package pathfind computes single-source shortest paths over a
// [graph.Graph] and records every intermediate step so the run can be
// replayed.
//
// # Overview
//
// [Compute] runs Dijkstra's algorithm with a plain O(V²) scan for the next
// node. Graphs handled by pathplay have at most 15 nodes, so a priority
// queue would only make the recorded order harder to reason about. The
// scan visits node IDs in ascending order and keeps the first minimum, so
// ties always go to the lowest ID and two runs over the same graph produce
// identical traces.
//
// # Trace
//
// The result is a [Trace]:
//
//   - VisitOrder: nodes in the order they were finalized
//   - DistanceStates: the initial distance table followed by one full copy
//     per successful relaxation
//   - Paths: the shortest path from the source to every reachable node
//
// Unreachable nodes keep the distance [Unreachable] in every snapshot and
// have no entry in Paths. They are not an error.
//
//	tr, err := pathfind.Compute(g, 0)
//	if err != nil {
//	    return err
//	}
//	for _, id := range tr.VisitOrder() {
//	    fmt.Println(g.LabelOf(id), tr.Final()[id])
//	}
//
// Traces never change after [Compute] returns and every accessor hands out
// a copy, so one trace may be shared by the playback controller, the
// renderer and the HTTP server.
package pathfind

package pathfind

import (
	"encoding/json"
	"maps"
	"math"
	"slices"

	"github.com/google/uuid"
)

// Unreachable is the distance recorded for nodes with no known path from the
// source. It compares greater than every finite distance.
const Unreachable = math.MaxInt

// DistanceTable maps node ID (the slice index) to its current distance from
// the source, or [Unreachable].
type DistanceTable []int

// Reachable reports whether node id has a finite distance.
func (d DistanceTable) Reachable(id int) bool {
	return id >= 0 && id < len(d) && d[id] != Unreachable
}

// Clone returns a copy of the table.
func (d DistanceTable) Clone() DistanceTable { return slices.Clone(d) }

// MarshalJSON encodes unreachable entries as null.
func (d DistanceTable) MarshalJSON() ([]byte, error) {
	out := make([]*int, len(d))
	for i := range d {
		if d[i] != Unreachable {
			v := d[i]
			out[i] = &v
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes null entries as [Unreachable].
func (d *DistanceTable) UnmarshalJSON(data []byte) error {
	var in []*int
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	t := make(DistanceTable, len(in))
	for i, v := range in {
		if v == nil {
			t[i] = Unreachable
		} else {
			t[i] = *v
		}
	}
	*d = t
	return nil
}

// Trace is the immutable record of one run of the path engine. It is
// produced by [Compute] and only read afterwards; accessors hand out copies
// so no consumer can change what another one sees.
//
// The zero value is not usable.
type Trace struct {
	id         uuid.UUID
	source     int
	nodeCount  int
	visitOrder []int
	states     []DistanceTable
	paths      map[int][]int
}

// ID identifies the run that produced the trace. Two runs over the same
// graph produce equal traces with different IDs.
func (t *Trace) ID() uuid.UUID { return t.id }

// Source returns the source node of the run.
func (t *Trace) Source() int { return t.source }

// NodeCount returns the number of nodes in the graph the trace was computed on.
func (t *Trace) NodeCount() int { return t.nodeCount }

// Len returns the number of finalized nodes, i.e. len(VisitOrder()).
func (t *Trace) Len() int { return len(t.visitOrder) }

// VisitOrder returns the nodes in the order they were finalized.
func (t *Trace) VisitOrder() []int { return slices.Clone(t.visitOrder) }

// Visited returns the first n entries of the visit order, clamped to
// [0, Len()].
func (t *Trace) Visited(n int) []int {
	n = min(max(n, 0), len(t.visitOrder))
	return slices.Clone(t.visitOrder[:n])
}

// SnapshotCount returns the number of distance snapshots: one for the
// initial table plus one per relaxation.
func (t *Trace) SnapshotCount() int { return len(t.states) }

// DistanceStates returns a deep copy of every snapshot in recording order.
func (t *Trace) DistanceStates() []DistanceTable {
	out := make([]DistanceTable, len(t.states))
	for i, s := range t.states {
		out[i] = s.Clone()
	}
	return out
}

// DistanceAt returns the snapshot shown at playback step: index
// min(step, SnapshotCount()-1), with negative steps clamped to 0. Once
// step passes the number of relaxations the final table is returned.
func (t *Trace) DistanceAt(step int) DistanceTable {
	i := min(max(step, 0), len(t.states)-1)
	return t.states[i].Clone()
}

// Final returns the last snapshot, which holds the shortest distances.
func (t *Trace) Final() DistanceTable { return t.states[len(t.states)-1].Clone() }

// PathTo returns the shortest path from the source to target, source first.
// It returns false for the source itself and for unreachable nodes.
func (t *Trace) PathTo(target int) ([]int, bool) {
	p, ok := t.paths[target]
	if !ok {
		return nil, false
	}
	return slices.Clone(p), true
}

// Paths returns a copy of the path map keyed by target node.
func (t *Trace) Paths() map[int][]int {
	out := make(map[int][]int, len(t.paths))
	for k, v := range t.paths {
		out[k] = slices.Clone(v)
	}
	return out
}

// Targets returns the reachable non-source nodes in ascending order.
func (t *Trace) Targets() []int {
	return slices.Sorted(maps.Keys(t.paths))
}

// Equal reports whether t and o record the same computation. The run ID is
// ignored.
func (t *Trace) Equal(o *Trace) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.source != o.source || t.nodeCount != o.nodeCount {
		return false
	}
	if !slices.Equal(t.visitOrder, o.visitOrder) {
		return false
	}
	if !slices.EqualFunc(t.states, o.states, func(a, b DistanceTable) bool { return slices.Equal(a, b) }) {
		return false
	}
	return maps.EqualFunc(t.paths, o.paths, func(a, b []int) bool { return slices.Equal(a, b) })
}

// traceJSON is the wire form of a Trace.
type traceJSON struct {
	ID             string          `json:"id"`
	Source         int             `json:"source"`
	NodeCount      int             `json:"node_count"`
	VisitOrder     []int           `json:"visit_order"`
	DistanceStates []DistanceTable `json:"distance_states"`
	Paths          map[int][]int   `json:"paths"`
}

// MarshalJSON encodes the trace for API responses and `run --json`.
func (t *Trace) MarshalJSON() ([]byte, error) {
	return json.Marshal(traceJSON{
		ID:             t.id.String(),
		Source:         t.source,
		NodeCount:      t.nodeCount,
		VisitOrder:     t.visitOrder,
		DistanceStates: t.states,
		Paths:          t.paths,
	})
}

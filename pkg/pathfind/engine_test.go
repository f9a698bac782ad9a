package pathfind

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/matzehuels/pathplay/pkg/errors"
	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/observability"
)

const inf = Unreachable

// build returns a graph with n nodes and the given edges.
func build(t *testing.T, n int, edges ...graph.Edge) *graph.Graph {
	t.Helper()
	g, err := graph.New(n)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range edges {
		if err := g.AddEdge(e.A, e.B, e.Weight); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

// classic is A-B(1), B-C(2), A-C(4), C-D(1).
func classic(t *testing.T, n int) *graph.Graph {
	return build(t, n,
		graph.Edge{A: 0, B: 1, Weight: 1},
		graph.Edge{A: 1, B: 2, Weight: 2},
		graph.Edge{A: 0, B: 2, Weight: 4},
		graph.Edge{A: 2, B: 3, Weight: 1},
	)
}

func TestComputeClassic(t *testing.T) {
	tr, err := Compute(classic(t, 4), 0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if diff := cmp.Diff([]int{0, 1, 2, 3}, tr.VisitOrder()); diff != "" {
		t.Errorf("visit order (-want +got):\n%s", diff)
	}

	wantStates := []DistanceTable{
		{0, inf, inf, inf},
		{0, 1, inf, inf},
		{0, 1, 4, inf},
		{0, 1, 3, inf},
		{0, 1, 3, 4},
	}
	if diff := cmp.Diff(wantStates, tr.DistanceStates()); diff != "" {
		t.Errorf("distance states (-want +got):\n%s", diff)
	}

	wantPaths := map[int][]int{
		1: {0, 1},
		2: {0, 1, 2},
		3: {0, 1, 2, 3},
	}
	if diff := cmp.Diff(wantPaths, tr.Paths()); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, tr.Targets()); diff != "" {
		t.Errorf("targets (-want +got):\n%s", diff)
	}
}

func TestComputeDisconnectedNode(t *testing.T) {
	tr, err := Compute(classic(t, 5), 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := tr.PathTo(4); ok {
		t.Error("disconnected node E should have no path")
	}
	for i, s := range tr.DistanceStates() {
		if s[4] != Unreachable {
			t.Errorf("snapshot %d: E = %d, want Unreachable", i, s[4])
		}
	}
	if tr.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tr.Len())
	}
	if tr.Final().Reachable(4) {
		t.Error("Final().Reachable(E) = true")
	}
}

func TestComputeTieBreakOnLowestID(t *testing.T) {
	g := build(t, 3,
		graph.Edge{A: 0, B: 2, Weight: 1},
		graph.Edge{A: 0, B: 1, Weight: 1},
	)
	tr, err := Compute(g, 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, tr.VisitOrder()); diff != "" {
		t.Errorf("visit order (-want +got):\n%s", diff)
	}
}

func TestComputeEqualCandidateKeepsFirstPath(t *testing.T) {
	// A-B(1), A-C(2), B-C(1): the route A-B-C ties A-C and must not replace it.
	g := build(t, 3,
		graph.Edge{A: 0, B: 1, Weight: 1},
		graph.Edge{A: 0, B: 2, Weight: 2},
		graph.Edge{A: 1, B: 2, Weight: 1},
	)
	tr, err := Compute(g, 0)
	if err != nil {
		t.Fatal(err)
	}
	if tr.SnapshotCount() != 3 {
		t.Errorf("SnapshotCount() = %d, want 3 (initial + two relaxations)", tr.SnapshotCount())
	}
	if p, _ := tr.PathTo(2); !cmp.Equal(p, []int{0, 2}) {
		t.Errorf("PathTo(C) = %v, want [0 2]", p)
	}
}

func TestComputeIsolatedSource(t *testing.T) {
	g := build(t, 3, graph.Edge{A: 1, B: 2, Weight: 3})
	tr, err := Compute(g, 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{0}, tr.VisitOrder()); diff != "" {
		t.Errorf("visit order (-want +got):\n%s", diff)
	}
	if tr.SnapshotCount() != 1 {
		t.Errorf("SnapshotCount() = %d, want 1", tr.SnapshotCount())
	}
	if len(tr.Paths()) != 0 {
		t.Errorf("Paths() = %v, want empty", tr.Paths())
	}
}

func TestComputeNonZeroSource(t *testing.T) {
	tr, err := Compute(classic(t, 4), 3)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DistanceTable{4, 3, 1, 0}, tr.Final()); diff != "" {
		t.Errorf("final distances (-want +got):\n%s", diff)
	}
	if p, _ := tr.PathTo(0); !cmp.Equal(p, []int{3, 2, 1, 0}) {
		t.Errorf("PathTo(A) = %v, want [3 2 1 0]", p)
	}
}

func TestComputeInvalidInput(t *testing.T) {
	g := classic(t, 4)
	tests := []struct {
		name   string
		g      *graph.Graph
		source int
	}{
		{"nil graph", nil, 0},
		{"empty graph", &graph.Graph{}, 0},
		{"negative source", g, -1},
		{"source out of range", g, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Compute(tt.g, tt.source)
			if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("Compute() error = %v, want INVALID_INPUT", err)
			}
			if tr != nil {
				t.Error("Compute() returned a partial trace")
			}
		})
	}
}

func TestComputeProperties(t *testing.T) {
	for seed := uint64(1); seed <= 60; seed++ {
		n := 2 + int(seed%14)
		g, err := graph.Random(n, graph.RandomOptions{Seed: seed, Density: 0.35, MaxWeight: 20})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		source := int(seed) % n

		tr, err := Compute(g, source)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		final := tr.Final()

		if final[source] != 0 {
			t.Errorf("seed %d: final[source] = %d", seed, final[source])
		}
		if tr.SnapshotCount() < 1 {
			t.Errorf("seed %d: no snapshots", seed)
		}

		order := tr.VisitOrder()
		if len(order) > n {
			t.Errorf("seed %d: visit order longer than node count", seed)
		}
		if len(order) == 0 || order[0] != source {
			t.Errorf("seed %d: visit order %v does not start at source %d", seed, order, source)
		}
		seen := map[int]bool{}
		last := 0
		for _, v := range order {
			if seen[v] {
				t.Errorf("seed %d: node %d visited twice", seed, v)
			}
			seen[v] = true
			if final[v] < last {
				t.Errorf("seed %d: finalized distances decrease at node %d", seed, v)
			}
			last = final[v]
		}
		// Visited nodes are exactly the reachable ones.
		for v := 0; v < n; v++ {
			if seen[v] != final.Reachable(v) {
				t.Errorf("seed %d: node %d visited=%v reachable=%v", seed, v, seen[v], final.Reachable(v))
			}
		}

		// Every snapshot after the first lowers exactly one entry.
		states := tr.DistanceStates()
		for i := 1; i < len(states); i++ {
			changed := 0
			for v := range states[i] {
				if states[i][v] != states[i-1][v] {
					changed++
					if states[i][v] > states[i-1][v] {
						t.Errorf("seed %d: snapshot %d raised node %d", seed, i, v)
					}
				}
			}
			if changed != 1 {
				t.Errorf("seed %d: snapshot %d changed %d entries", seed, i, changed)
			}
		}

		for target, path := range tr.Paths() {
			if path[0] != source || path[len(path)-1] != target {
				t.Errorf("seed %d: path %v does not run %d -> %d", seed, path, source, target)
			}
			w, err := PathWeight(g, path)
			if err != nil {
				t.Errorf("seed %d: %v", seed, err)
				continue
			}
			if w != final[target] {
				t.Errorf("seed %d: path to %d weighs %d, final distance %d", seed, target, w, final[target])
			}
		}

		again, _ := Compute(g, source)
		if !tr.Equal(again) {
			t.Errorf("seed %d: recomputation differs", seed)
		}
		if tr.ID() == again.ID() {
			t.Errorf("seed %d: runs share an ID", seed)
		}
	}
}

func TestTraceAccessorsReturnCopies(t *testing.T) {
	tr, _ := Compute(classic(t, 4), 0)

	order := tr.VisitOrder()
	order[0] = 99
	states := tr.DistanceStates()
	states[0][0] = 99
	paths := tr.Paths()
	paths[3][0] = 99
	final := tr.Final()
	final[1] = 99

	if tr.VisitOrder()[0] != 0 || tr.DistanceStates()[0][0] != 0 || tr.Final()[1] != 1 {
		t.Error("mutating a returned copy changed the trace")
	}
	if p, _ := tr.PathTo(3); p[0] != 0 {
		t.Error("mutating Paths() changed the trace")
	}
}

func TestDistanceAtClamps(t *testing.T) {
	tr, _ := Compute(classic(t, 4), 0)

	tests := []struct {
		step int
		want DistanceTable
	}{
		{-3, DistanceTable{0, inf, inf, inf}},
		{0, DistanceTable{0, inf, inf, inf}},
		{2, DistanceTable{0, 1, 4, inf}},
		{4, DistanceTable{0, 1, 3, 4}},
		{5, DistanceTable{0, 1, 3, 4}},
		{50, DistanceTable{0, 1, 3, 4}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tr.DistanceAt(tt.step)); diff != "" {
			t.Errorf("DistanceAt(%d) (-want +got):\n%s", tt.step, diff)
		}
	}

	if diff := cmp.Diff([]int{0, 1}, tr.Visited(2)); diff != "" {
		t.Errorf("Visited(2) (-want +got):\n%s", diff)
	}
	if got := tr.Visited(10); len(got) != 4 {
		t.Errorf("Visited(10) = %v", got)
	}
	if got := tr.Visited(-1); len(got) != 0 {
		t.Errorf("Visited(-1) = %v", got)
	}
}

func TestPathWeightMissingEdge(t *testing.T) {
	g := classic(t, 4)
	if _, err := PathWeight(g, []int{0, 3}); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("PathWeight(A, D) error = %v, want INVALID_INPUT", err)
	}
	if w, err := PathWeight(g, []int{2}); err != nil || w != 0 {
		t.Errorf("PathWeight(single) = %d, %v", w, err)
	}
}

func TestDistanceTableJSON(t *testing.T) {
	in := DistanceTable{0, 3, Unreachable}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[0,3,null]" {
		t.Errorf("Marshal = %s, want [0,3,null]", data)
	}

	var out DistanceTable
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestTraceJSON(t *testing.T) {
	tr, _ := Compute(classic(t, 5), 0)
	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		ID             string           `json:"id"`
		Source         int              `json:"source"`
		VisitOrder     []int            `json:"visit_order"`
		DistanceStates []DistanceTable  `json:"distance_states"`
		Paths          map[string][]int `json:"paths"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != tr.ID().String() {
		t.Errorf("id = %q, want %q", got.ID, tr.ID())
	}
	if diff := cmp.Diff(tr.DistanceStates(), got.DistanceStates); diff != "" {
		t.Errorf("distance states (-want +got):\n%s", diff)
	}
	if _, ok := got.Paths["4"]; ok {
		t.Error("unreachable node E serialized with a path")
	}
}

type recordingEngineHooks struct {
	observability.NoopEngineHooks
	visited, relaxations int
}

func (h *recordingEngineHooks) OnComputeComplete(_ context.Context, visited, relaxations int, _ time.Duration, _ error) {
	h.visited, h.relaxations = visited, relaxations
}

func TestComputeEmitsHooks(t *testing.T) {
	h := &recordingEngineHooks{}
	observability.SetEngineHooks(h)
	defer observability.Reset()

	if _, err := Compute(classic(t, 4), 0); err != nil {
		t.Fatal(err)
	}
	if h.visited != 4 || h.relaxations != 4 {
		t.Errorf("hooks saw visited=%d relaxations=%d, want 4 and 4", h.visited, h.relaxations)
	}
}

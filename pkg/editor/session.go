// Package editor implements the interactive graph editing flow shared by
// the terminal player and the HTTP server.
//
// A [Session] owns the graph being edited and the selected source node. Edge
// creation is a small state machine:
//
//	Idle ──ToggleEdgeMode──▶ PickingSource ──Select(a)──▶ PickingTarget
//	                              ▲                            │ Select(b), b != a
//	                              │                            ▼
//	                              └──────Confirm────── ConfirmingWeight
//
// Edge mode stays on after an edge is added so several edges can be drawn
// in a row. ToggleEdgeMode or Cancel from any editing state returns to Idle
// and drops the half-built edge.
package editor

import (
	"fmt"

	apperrors "github.com/matzehuels/pathplay/pkg/errors"
	"github.com/matzehuels/pathplay/pkg/graph"
)

// DefaultWeight is the weight proposed for a new edge.
const DefaultWeight = 1

// Mode is the edge-creation phase of a [Session].
type Mode int

const (
	// Idle means clicks select the source node.
	Idle Mode = iota
	// PickingSource waits for the first endpoint of a new edge.
	PickingSource
	// PickingTarget waits for the second endpoint.
	PickingTarget
	// ConfirmingWeight waits for the weight of the new edge.
	ConfirmingWeight
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case PickingSource:
		return "picking-source"
	case PickingTarget:
		return "picking-target"
	case ConfirmingWeight:
		return "confirming-weight"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Session is one editing session over a graph. It is not safe for
// concurrent use.
type Session struct {
	g      *graph.Graph
	source int
	locked bool

	mode   Mode
	from   int
	to     int
	weight int
}

// NewSession starts editing g with node 0 as the source.
func NewSession(g *graph.Graph) *Session {
	return &Session{g: g, from: -1, to: -1, weight: DefaultWeight}
}

// FromDocument starts editing a loaded graph document.
func FromDocument(doc *graph.Document) *Session {
	s := NewSession(doc.Graph)
	s.source = doc.Source
	return s
}

// Graph returns the graph being edited. Callers that hand it to the path
// engine while editing continues should pass a clone.
func (s *Session) Graph() *graph.Graph { return s.g }

// Document returns the graph and source for saving.
func (s *Session) Document() graph.Document {
	return graph.Document{Graph: s.g, Source: s.source}
}

// Source returns the selected source node.
func (s *Session) Source() int { return s.source }

// Mode returns the edge-creation phase.
func (s *Session) Mode() Mode { return s.mode }

// Weight returns the weight proposed for the pending edge.
func (s *Session) Weight() int { return s.weight }

// Pending returns the endpoints picked so far. ok is false in Idle and
// PickingSource; to is only meaningful in ConfirmingWeight.
func (s *Session) Pending() (from, to int, ok bool) {
	switch s.mode {
	case PickingTarget:
		return s.from, -1, true
	case ConfirmingWeight:
		return s.from, s.to, true
	}
	return -1, -1, false
}

// SetLocked disables source selection and graph changes while a playback is
// running.
func (s *Session) SetLocked(locked bool) { s.locked = locked }

// Locked reports whether the session is locked.
func (s *Session) Locked() bool { return s.locked }

// ToggleEdgeMode enters edge mode from Idle, or cancels edge creation from
// any other mode.
func (s *Session) ToggleEdgeMode() {
	if s.mode == Idle {
		s.mode = PickingSource
		return
	}
	s.Cancel()
}

// Cancel drops the pending edge and returns to Idle.
func (s *Session) Cancel() {
	s.mode = Idle
	s.clearPending()
}

// Select handles a click on node id.
//
// In Idle it selects the source, which fails with PRECONDITION_FAILED while
// the session is locked. In PickingSource it picks the first endpoint. In
// PickingTarget and ConfirmingWeight it picks (or re-picks) the second
// endpoint; selecting the first endpoint again is ignored.
func (s *Session) Select(id int) error {
	if !s.g.HasNode(id) {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, graph.ErrUnknownNode, "node %d", id)
	}

	switch s.mode {
	case Idle:
		return s.SetSource(id)
	case PickingSource:
		s.from = id
		s.mode = PickingTarget
	case PickingTarget, ConfirmingWeight:
		if id == s.from {
			return nil
		}
		s.to = id
		s.mode = ConfirmingWeight
	}
	return nil
}

// SetSource selects the source node directly.
func (s *Session) SetSource(id int) error {
	if s.locked {
		return apperrors.New(apperrors.ErrCodePreconditionFailed, "cannot change the source while the algorithm runs")
	}
	if !s.g.HasNode(id) {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, graph.ErrUnknownNode, "node %d", id)
	}
	s.source = id
	return nil
}

// SetWeight sets the weight of the pending edge. Weights outside [1, 99]
// are rejected with INVALID_EDGE and leave the current weight unchanged.
func (s *Session) SetWeight(w int) error {
	if err := apperrors.ValidateWeight(w); err != nil {
		return err
	}
	s.weight = w
	return nil
}

// AdjustWeight adds delta to the pending weight, clamped to [1, 99].
func (s *Session) AdjustWeight(delta int) {
	s.weight = min(max(s.weight+delta, apperrors.MinWeight), apperrors.MaxWeight)
}

// Confirm adds the pending edge and returns to PickingSource.
//
// The pending edge is consumed even when adding fails, so a duplicate pair
// simply ends the attempt. Confirm outside ConfirmingWeight returns
// PRECONDITION_FAILED.
func (s *Session) Confirm() (graph.Edge, error) {
	if s.mode != ConfirmingWeight {
		return graph.Edge{}, apperrors.New(apperrors.ErrCodePreconditionFailed, "no edge waiting for a weight")
	}
	e := graph.Edge{A: s.from, B: s.to, Weight: s.weight}
	s.mode = PickingSource
	s.clearPending()

	if s.locked {
		return graph.Edge{}, apperrors.New(apperrors.ErrCodePreconditionFailed, "cannot edit the graph while the algorithm runs")
	}
	if err := s.g.AddEdge(e.A, e.B, e.Weight); err != nil {
		return graph.Edge{}, err
	}
	return e, nil
}

// Resize replaces the graph with n fresh nodes and no edges. The source
// moves back to node 0.
func (s *Session) Resize(n int) error {
	if s.locked {
		return apperrors.New(apperrors.ErrCodePreconditionFailed, "cannot edit the graph while the algorithm runs")
	}
	g, err := graph.New(n)
	if err != nil {
		return err
	}
	s.g = g
	s.source = 0
	s.Cancel()
	return nil
}

// ClearEdges removes every edge and keeps the nodes.
func (s *Session) ClearEdges() error {
	if s.locked {
		return apperrors.New(apperrors.ErrCodePreconditionFailed, "cannot edit the graph while the algorithm runs")
	}
	s.g.ClearEdges()
	s.Cancel()
	return nil
}

// Randomize replaces every edge with a random set over the same nodes.
// Node positions and the source are kept.
func (s *Session) Randomize(opts graph.RandomOptions) error {
	if s.locked {
		return apperrors.New(apperrors.ErrCodePreconditionFailed, "cannot edit the graph while the algorithm runs")
	}
	g, err := graph.Random(s.g.NodeCount(), opts)
	if err != nil {
		return err
	}
	pos := make([]graph.Point, 0, s.g.NodeCount())
	for _, n := range s.g.Nodes() {
		pos = append(pos, n.Pos)
	}
	g.SetPositions(pos)
	s.g = g
	s.Cancel()
	return nil
}

func (s *Session) clearPending() {
	s.from, s.to = -1, -1
	s.weight = DefaultWeight
}

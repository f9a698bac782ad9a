package graph

import (
	"math"
	"testing"
)

func TestCircularLayout(t *testing.T) {
	pos := CircularLayout(4, 800, 600)
	if len(pos) != 4 {
		t.Fatalf("len = %d, want 4", len(pos))
	}

	cx, cy, r := 400.0, 240.0, 210.0
	for i, p := range pos {
		if d := math.Hypot(p.X-cx, p.Y-cy); math.Abs(d-r) > 1e-9 {
			t.Errorf("node %d at distance %.3f from centre, want %.3f", i, d, r)
		}
	}
	// First node sits at angle zero, the second a quarter turn later.
	if math.Abs(pos[0].X-(cx+r)) > 1e-9 || math.Abs(pos[0].Y-cy) > 1e-9 {
		t.Errorf("pos[0] = %v", pos[0])
	}
	if math.Abs(pos[1].X-cx) > 1e-9 || math.Abs(pos[1].Y-(cy+r)) > 1e-9 {
		t.Errorf("pos[1] = %v", pos[1])
	}

	if CircularLayout(0, 800, 600) != nil {
		t.Error("CircularLayout(0) should be nil")
	}
}

func TestNodeAt(t *testing.T) {
	g, _ := New(5)
	n, _ := g.Node(3)

	id, ok := g.NodeAt(Point{X: n.Pos.X + 3, Y: n.Pos.Y - 4}, 25)
	if !ok || id != 3 {
		t.Errorf("NodeAt near node 3 = %d, %v", id, ok)
	}
	if _, ok := g.NodeAt(Point{X: -500, Y: -500}, 25); ok {
		t.Error("NodeAt far away should miss")
	}
}

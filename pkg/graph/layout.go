package graph

import "math"

// Default canvas used when a graph is created without a known viewport.
const (
	DefaultCanvasWidth  = 800.0
	DefaultCanvasHeight = 600.0
)

// CircularLayout places n nodes evenly on a circle, starting at angle zero
// and going clockwise in screen coordinates. The radius is 35% of the
// smaller canvas side and the centre sits slightly above the middle
// (height / 2.5) to leave room for a results panel underneath.
func CircularLayout(n int, width, height float64) []Point {
	if n <= 0 {
		return nil
	}
	radius := math.Min(width, height) * 0.35
	cx, cy := width/2, height/2.5

	pos := make([]Point, n)
	for i := range pos {
		angle := float64(i) * 2 * math.Pi / float64(n)
		pos[i] = Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return pos
}

// NodeAt returns the ID of the first node whose centre lies within radius of
// p, and false if none does. It backs click-to-select in pointer-driven
// editors.
func (g *Graph) NodeAt(p Point, radius float64) (int, bool) {
	for _, n := range g.nodes {
		if math.Hypot(n.Pos.X-p.X, n.Pos.Y-p.Y) < radius {
			return n.ID, true
		}
	}
	return 0, false
}

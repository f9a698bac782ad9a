package pathfind_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pathplay/pkg/graph"
	"github.com/matzehuels/pathplay/pkg/pathfind"
)

func ExampleCompute() {
	g, _ := graph.New(5)
	_ = g.AddEdge(0, 1, 1) // A-B
	_ = g.AddEdge(1, 2, 2) // B-C
	_ = g.AddEdge(0, 2, 4) // A-C
	_ = g.AddEdge(2, 3, 1) // C-D

	tr, err := pathfind.Compute(g, 0)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	var order []string
	for _, id := range tr.VisitOrder() {
		order = append(order, g.LabelOf(id))
	}
	fmt.Println("order:", strings.Join(order, " "))
	fmt.Println("snapshots:", tr.SnapshotCount())

	final := tr.Final()
	for _, target := range tr.Targets() {
		path, _ := tr.PathTo(target)
		var hops []string
		for _, id := range path {
			hops = append(hops, g.LabelOf(id))
		}
		fmt.Printf("%s: %s (%d)\n", g.LabelOf(target), strings.Join(hops, " → "), final[target])
	}
	fmt.Println("E reachable:", final.Reachable(4))
	// Output:
	// order: A B C D
	// snapshots: 5
	// B: A → B (1)
	// C: A → B → C (3)
	// D: A → B → C → D (4)
	// E reachable: false
}

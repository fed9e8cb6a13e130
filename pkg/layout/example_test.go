package layout_test

import (
	"fmt"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/layout"
)

func ExampleCompute() {
	// Small reporting tree: one manager, two reports
	nodes := []chart.Node{
		{ID: "ceo"},
		{ID: "cto", ParentID: "ceo"},
		{ID: "cfo", ParentID: "ceo"},
	}

	result := layout.Compute(nodes, nil)
	pos := result.Positions

	fmt.Println("all placed:", len(pos) == 3)
	fmt.Println("reports share a row:", pos["cto"].Y == pos["cfo"].Y)
	fmt.Println("manager centered above:", pos["ceo"].X > pos["cto"].X && pos["ceo"].X < pos["cfo"].X)
	// Output:
	// all placed: true
	// reports share a row: true
	// manager centered above: true
}

func ExampleCompute_cyclicFallback() {
	// Two nodes managing each other: no roots, so the grid fallback kicks in
	nodes := []chart.Node{
		{ID: "a", ParentID: "b"},
		{ID: "b", ParentID: "a"},
	}

	result := layout.Compute(nodes, nil)

	fmt.Println("all placed:", len(result.Positions) == 2)
	fmt.Println("same row:", result.Positions["a"].Y == result.Positions["b"].Y)
	// Output:
	// all placed: true
	// same row: true
}

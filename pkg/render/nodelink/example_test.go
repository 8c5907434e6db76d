package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/render/nodelink"
	"github.com/matzehuels/mindmap/pkg/theme"
)

func ExampleToDOT() {
	l := mapfile.Layout{
		Width: 200, Height: 40,
		Theme: theme.Default(),
		Nodes: []mapfile.PlacedNode{
			{ID: "root", Text: "Plan", Width: 60, Height: 40, Expand: true},
			{ID: "a", Parent: "root", Text: "Build", Depth: 1, Left: 150, Top: 10, Width: 50, Height: 20, Expand: true},
		},
	}

	dot := nodelink.ToDOT(l, nodelink.Options{Free: true})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "root" -> "a";
}

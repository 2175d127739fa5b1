package partition_test

import (
	"fmt"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/partition"
)

func ExamplePartition() {
	root := &hierarchy.Node{Name: "root", Children: []*hierarchy.Node{
		{Name: "a", Value: 3},
		{Name: "b", Value: 1},
	}}

	nodes, err := partition.Partition(root, partition.Options{Value: hierarchy.Declared, Span: 1})
	if err != nil {
		panic(err)
	}
	for _, n := range nodes {
		fmt.Printf("%s depth=%d x=%.2f dx=%.2f y=%.2f dy=%.2f\n", n.Name(), n.Depth, n.X, n.DX, n.Y, n.DY)
	}
	// Output:
	// root depth=0 x=0.00 dx=1.00 y=0.00 dy=0.50
	// a depth=1 x=0.00 dx=0.75 y=0.50 dy=0.50
	// b depth=1 x=0.75 dx=0.25 y=0.50 dy=0.50
}

func ExampleAncestors() {
	nodes, _ := partition.Partition(hierarchy.Sample(), partition.Options{})
	for _, a := range partition.Ancestors(nodes[3]) {
		fmt.Println(a.Name())
	}
	// Output:
	// a
	// b
}

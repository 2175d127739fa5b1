package hierarchy

// Node is one element of a hierarchy. Children are ordered; the order is
// preserved by the partitioner and drives colour assignment downstream.
type Node struct {
	Name     string         `json:"name" yaml:"name" toml:"name"`
	Value    float64        `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Children []*Node        `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
	Meta     map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the subtree below the visited node. Walk does not guard against
// cycles; validate with the partition package first if the tree is untrusted.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	count := 0
	Walk(n, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Height returns the number of levels in the tree rooted at n: 1 for a
// single node, 0 for nil.
func Height(n *Node) int {
	height := 0
	Walk(n, func(_ *Node, depth int) bool {
		if depth+1 > height {
			height = depth + 1
		}
		return true
	})
	return height
}

// Find returns the first node in pre-order whose name equals name.
func Find(root *Node, name string) (*Node, bool) {
	var found *Node
	Walk(root, func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// Sample returns the small demonstration tree rendered when no input is given.
func Sample() *Node {
	return &Node{
		Name: "a",
		Children: []*Node{
			{Name: "b", Children: []*Node{
				{Name: "c", Value: 3938},
				{Name: "d", Value: 3812},
			}},
			{Name: "e", Children: []*Node{
				{Name: "f", Value: 3938},
			}},
			{Name: "f", Value: 5000},
		},
	}
}

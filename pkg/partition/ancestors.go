package partition

// Ancestors returns the strict ancestors of n, root first. The root and a nil
// node both yield an empty slice.
func Ancestors(n *Node) []*Node {
	if n == nil {
		return []*Node{}
	}
	path := make([]*Node, n.Depth)
	i := n.Depth
	for p := n.Parent; p != nil && i > 0; p = p.Parent {
		i--
		path[i] = p
	}
	return path[i:]
}

// Path returns the ancestors of n followed by n itself: the selection path
// highlighted when n is hovered.
func Path(n *Node) []*Node {
	if n == nil {
		return []*Node{}
	}
	return append(Ancestors(n), n)
}

// Descendants returns n's descendants in pre-order, excluding n.
func Descendants(n *Node) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(m *Node) {
		for _, c := range m.Children {
			out = append(out, c)
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// InPath reports whether candidate lies on the selection path of selected.
func InPath(selected, candidate *Node) bool {
	for p := selected; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

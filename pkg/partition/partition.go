package partition

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// FullCircle is the default angular span of the root node.
const FullCircle = 2 * math.Pi

// ValueMode controls how internal nodes obtain their weight.
type ValueMode int

const (
	// SumLeaves recomputes every internal node's weight as the sum of its
	// children, ignoring the value function for non-leaves.
	SumLeaves ValueMode = iota
	// Declared uses an internal node's own value when it is positive and
	// falls back to the children's sum otherwise.
	Declared
)

// String returns the mode name used in configuration.
func (m ValueMode) String() string {
	if m == Declared {
		return "declared"
	}
	return "sum"
}

// ParseValueMode maps "sum" and "declared" to a ValueMode. Unknown names
// return SumLeaves and false.
func ParseValueMode(s string) (ValueMode, bool) {
	switch s {
	case "", "sum":
		return SumLeaves, true
	case "declared":
		return Declared, true
	}
	return SumLeaves, false
}

// Options configures [Partition]. The zero value is usable.
type Options struct {
	// Value extracts node weights. Defaults to hierarchy.Constant(1).
	Value hierarchy.ValueFunc
	// Mode selects internal node weighting. Defaults to SumLeaves.
	Mode ValueMode
	// Span is the angular measure covered by the root. Defaults to FullCircle.
	Span float64
	// RingUnit is the radial thickness of one level. Zero means 1/levels so
	// the outermost ring ends at y = 1.
	RingUnit float64
}

func (o Options) withDefaults() Options {
	if o.Value == nil {
		o.Value = hierarchy.Constant(1)
	}
	if o.Span <= 0 || math.IsNaN(o.Span) || math.IsInf(o.Span, 0) {
		o.Span = FullCircle
	}
	return o
}

// Node is one partitioned hierarchy node.
type Node struct {
	Source   *hierarchy.Node // input node, not copied
	Parent   *Node           // non-owning back reference; nil for the root
	Children []*Node         // non-owning, in sibling order
	Index    int             // position in pre-order output
	Depth    int

	X, DX float64 // angular start and width in the Span measure
	Y, DY float64 // radial start and thickness, normalized

	Value float64 // aggregate weight used for sizing
}

// Name returns the source node's name.
func (n *Node) Name() string {
	if n == nil || n.Source == nil {
		return ""
	}
	return n.Source.Name
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Partition lays out the tree rooted at root and returns its nodes in
// pre-order. A nil root yields an empty result. Input that is not a tree
// fails with *InvalidHierarchyError and no partial output.
//
// The input is never modified and the returned nodes share no state with
// previous calls.
func Partition(root *hierarchy.Node, opts Options) ([]*Node, error) {
	if root == nil {
		return nil, nil
	}
	opts = opts.withDefaults()

	b := builder{
		opts:  opts,
		state: make(map[*hierarchy.Node]visitState),
	}
	top, err := b.build(root, nil, 0)
	if err != nil {
		return nil, err
	}

	unit := opts.RingUnit
	if unit <= 0 {
		unit = 1 / float64(b.levels)
	}
	position(top, 0, opts.Span, unit)
	return b.out, nil
}

type visitState int

const (
	unvisited visitState = iota
	active
	done
)

type builder struct {
	opts   Options
	state  map[*hierarchy.Node]visitState
	out    []*Node
	levels int
}

func (b *builder) build(src *hierarchy.Node, parent *Node, depth int) (*Node, error) {
	switch b.state[src] {
	case active:
		return nil, &InvalidHierarchyError{Node: src.Name, Parent: parent.Name(), Reason: ReasonCycle}
	case done:
		return nil, &InvalidHierarchyError{Node: src.Name, Parent: parent.Name(), Reason: ReasonSharedChild}
	}
	b.state[src] = active

	n := &Node{Source: src, Parent: parent, Index: len(b.out), Depth: depth}
	b.out = append(b.out, n)
	if depth+1 > b.levels {
		b.levels = depth + 1
	}

	weights := make([]float64, 0, len(src.Children))
	for _, c := range src.Children {
		if c == nil {
			continue
		}
		child, err := b.build(c, n, depth+1)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
		weights = append(weights, child.Value)
	}

	b.state[src] = done
	n.Value = b.weigh(n, weights)
	return n, nil
}

func (b *builder) weigh(n *Node, childWeights []float64) float64 {
	if n.IsLeaf() {
		return sanitize(b.opts.Value(n.Source))
	}
	sum := floats.Sum(childWeights)
	if b.opts.Mode == Declared {
		if own := sanitize(b.opts.Value(n.Source)); own > 0 {
			return own
		}
	}
	return sum
}

// position assigns spans top-down. The last child absorbs rounding so the
// siblings end exactly at the parent's x+dx.
func position(n *Node, x, dx, unit float64) {
	n.X, n.DX = x, dx
	n.Y, n.DY = float64(n.Depth)*unit, unit

	count := len(n.Children)
	if count == 0 {
		return
	}

	var total float64
	for _, c := range n.Children {
		total += c.Value
	}

	end := x + dx
	cursor := x
	for i, c := range n.Children {
		var share float64
		switch {
		case i == count-1:
			share = end - cursor
		case total > 0:
			share = dx * c.Value / total
		default:
			share = dx / float64(count)
		}
		if share < 0 {
			share = 0
		}
		position(c, cursor, share, unit)
		cursor += share
	}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

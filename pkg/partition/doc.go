// Package partition assigns every node of a hierarchy an angular span and a
// radial band, producing the flat node list a sunburst is drawn from.
//
// # Algorithm
//
// [Partition] walks the tree twice. The first walk validates that the input
// is a tree, emits nodes in pre-order and aggregates values bottom-up. The
// second walk positions nodes top-down:
//
//   - The root spans the whole measure: x = 0, dx = [Options].Span (2π by default).
//   - Children tile their parent's [x, x+dx) interval in sibling order, each
//     taking a share proportional to its aggregate value. When every sibling
//     weighs zero they share the interval equally.
//   - Radial bands are uniform: a node at depth d has y = d·unit and dy = unit,
//     where unit = 1/levels unless [Options].RingUnit overrides it.
//
// # Values
//
// Weights come from a [hierarchy.ValueFunc]. Negative, NaN and infinite
// results are read as zero so one malformed leaf cannot poison the layout.
// [ValueMode] selects whether an internal node's weight is always the sum of
// its children ([SumLeaves]) or its own declared value when positive
// ([Declared]).
//
// # Ordering
//
// Output order is pre-order: root first, then each child subtree in original
// sibling order. Renderers colour slices by position in this list, so the
// order is part of the contract.
//
// # Ancestors
//
// Every [Node] carries a non-owning Parent pointer into the same result.
// [Ancestors] walks those pointers to recover the root-first selection path
// used for highlighting.
package partition

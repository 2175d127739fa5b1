// Package hierarchy defines the input shape for sunburst layouts: a rooted
// tree of named nodes with optional numeric weights.
//
// # Overview
//
// A [Node] is plain data. It knows its name, an optional declared
// value, its ordered children and free-form metadata. Nothing else about the
// tree is assumed, so callers can build nodes by hand or decode them with the
// readers in the io package.
//
// # Value Functions
//
// The weight used for angular sizing is not read from the node directly.
// Instead a [ValueFunc] extracts it, which lets the same tree be rendered by
// leaf count ([Constant]) or by declared size ([Declared]):
//
//	root := &hierarchy.Node{Name: "root", Children: []*hierarchy.Node{
//	    {Name: "a", Value: 3},
//	    {Name: "b", Value: 1},
//	}}
//	count := hierarchy.Constant(1) // a and b get equal angles
//	size := hierarchy.Declared     // a gets three times the angle of b
//
// # Ownership
//
// The tree owns its children; there are no parent pointers on [Node]. Parent
// links exist only on the partition output, where they are non-owning.
package hierarchy

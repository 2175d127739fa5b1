package sunburst

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/sunburst/pkg/arc"
	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/partition"
)

// NoParent is the parent index of the root slice.
const NoParent = -1

// Slice is the render record for one node.
type Slice struct {
	Index    int            `json:"index"`
	Name     string         `json:"name"`
	Parent   int            `json:"parent"`
	Depth    int            `json:"depth"`
	Value    float64        `json:"value"`
	X        float64        `json:"x"`
	DX       float64        `json:"dx"`
	Y        float64        `json:"y"`
	DY       float64        `json:"dy"`
	Geometry arc.Geometry   `json:"geometry"`
	Meta     map[string]any `json:"meta,omitempty"`

	// Node is the partition node this slice was built from. It is nil for
	// layouts decoded from JSON.
	Node *partition.Node `json:"-"`
}

// Layout is a computed sunburst: frame metrics plus ordered slices.
type Layout struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Radius      float64 `json:"radius"`
	InnerRadius float64 `json:"inner_radius"`
	CenterX     float64 `json:"center_x"`
	CenterY     float64 `json:"center_y"`
	StartAngle  float64 `json:"start_angle"`
	EndAngle    float64 `json:"end_angle"`
	PadAngle    float64 `json:"pad_angle"`
	Slices      []Slice `json:"slices"`
}

// Build partitions root and maps every node to geometry. Hierarchy errors are
// returned with code INVALID_HIERARCHY.
func Build(root *hierarchy.Node, cfg Config) (Layout, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Layout{}, err
	}
	nodes, err := partition.Partition(root, cfg.PartitionOptions())
	if err != nil {
		return Layout{}, serrors.Wrap(serrors.ErrCodeInvalidHierarchy, err, "partition")
	}
	return FromNodes(nodes, cfg), nil
}

// FromNodes maps already partitioned nodes without re-partitioning them.
// nodes must be in pre-order with parents preceding children.
func FromNodes(nodes []*partition.Node, cfg Config) Layout {
	cfg = cfg.WithDefaults()
	cx, cy := cfg.Center()
	m := cfg.Mapper()

	l := Layout{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Radius:      cfg.Radius(),
		InnerRadius: cfg.InnerRadius,
		CenterX:     cx,
		CenterY:     cy,
		StartAngle:  arc.Radians(cfg.StartAngle),
		EndAngle:    arc.Radians(cfg.EndAngle),
		PadAngle:    arc.Radians(cfg.PadAngle),
		Slices:      make([]Slice, len(nodes)),
	}

	index := make(map[*partition.Node]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
		parent := NoParent
		if p, ok := index[n.Parent]; ok && n.Parent != nil {
			parent = p
		}
		s := Slice{
			Index:    i,
			Name:     n.Name(),
			Parent:   parent,
			Depth:    n.Depth,
			Value:    n.Value,
			X:        n.X,
			DX:       n.DX,
			Y:        n.Y,
			DY:       n.DY,
			Geometry: m.Map(n),
			Node:     n,
		}
		if n.Source != nil {
			s.Meta = n.Source.Meta
		}
		l.Slices[i] = s
	}
	return l
}

// Ancestors returns the indices of slice i's strict ancestors, root first.
// Out-of-range indices yield an empty slice.
func (l Layout) Ancestors(i int) []int {
	if i < 0 || i >= len(l.Slices) {
		return []int{}
	}
	var rev []int
	for p := l.Slices[i].Parent; p >= 0 && p < len(l.Slices) && len(rev) < len(l.Slices); p = l.Slices[p].Parent {
		rev = append(rev, p)
	}
	out := make([]int, len(rev))
	for j, p := range rev {
		out[len(rev)-1-j] = p
	}
	return out
}

// Path returns the ancestors of slice i followed by i.
func (l Layout) Path(i int) []int {
	if i < 0 || i >= len(l.Slices) {
		return []int{}
	}
	return append(l.Ancestors(i), i)
}

// Find returns the index of the first slice named name.
func (l Layout) Find(name string) (int, bool) {
	for i, s := range l.Slices {
		if s.Name == name {
			return i, true
		}
	}
	return -1, false
}

// MaxDepth returns the deepest slice depth, or -1 for an empty layout.
func (l Layout) MaxDepth() int {
	d := -1
	for _, s := range l.Slices {
		d = max(d, s.Depth)
	}
	return d
}

// Marshal encodes the layout as indented JSON.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal decodes a layout produced by [Marshal] and checks its parent
// indices point backwards, as pre-order requires.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	for i, s := range l.Slices {
		if s.Parent != NoParent && (s.Parent < 0 || s.Parent >= i) {
			return Layout{}, serrors.New(serrors.ErrCodeInvalidHierarchy, "slice %d has parent %d, want an earlier slice", i, s.Parent)
		}
	}
	return l, nil
}

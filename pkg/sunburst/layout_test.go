package sunburst

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/partition"
)

func TestBuildSample(t *testing.T) {
	l, err := Build(hierarchy.Sample(), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, l.Slices, 7)

	assert.Equal(t, 170.0, l.Radius)
	assert.Equal(t, 200.0, l.CenterX)

	root := l.Slices[0]
	assert.Equal(t, NoParent, root.Parent)
	assert.Equal(t, "a", root.Name)
	assert.InDelta(t, 0, root.Geometry.StartAngle, 1e-9)
	assert.InDelta(t, 2*math.Pi, root.Geometry.EndAngle, 1e-9)
	assert.Equal(t, 0.0, root.Geometry.InnerRadius)

	for i, s := range l.Slices {
		assert.Equal(t, i, s.Index)
		assert.NotNil(t, s.Node)
		assert.LessOrEqual(t, s.Geometry.OuterRadius, l.Radius+1e-9)
		if s.Parent != NoParent {
			assert.Less(t, s.Parent, i)
			assert.Equal(t, l.Slices[s.Parent].Depth+1, s.Depth)
		}
	}
	assert.Equal(t, 2, l.MaxDepth())
}

func TestBuildPartialSunburst(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartAngle, cfg.EndAngle = 0, 180
	cfg.InnerRadius = 20

	l, err := Build(hierarchy.Sample(), cfg)
	require.NoError(t, err)
	for _, s := range l.Slices {
		assert.LessOrEqual(t, s.Geometry.EndAngle, math.Pi+1e-9)
		assert.GreaterOrEqual(t, s.Geometry.InnerRadius, 20.0)
	}
	assert.InDelta(t, math.Pi, l.EndAngle, 1e-9)
}

func TestBuildInvalidHierarchy(t *testing.T) {
	root := &hierarchy.Node{Name: "r"}
	root.Children = []*hierarchy.Node{root}

	_, err := Build(root, DefaultConfig())
	require.Error(t, err)
	assert.True(t, serrors.Is(err, serrors.ErrCodeInvalidHierarchy))
	assert.ErrorIs(t, err, partition.ErrInvalidHierarchy)
}

func TestBuildInvalidConfig(t *testing.T) {
	_, err := Build(hierarchy.Sample(), Config{Width: -5})
	assert.True(t, serrors.Is(err, serrors.ErrCodeInvalidConfig))
}

func TestFromNodesKeepsPartition(t *testing.T) {
	nodes, err := partition.Partition(hierarchy.Sample(), partition.Options{Value: hierarchy.Declared})
	require.NoError(t, err)

	l := FromNodes(nodes, DefaultConfig())
	for i, s := range l.Slices {
		assert.Same(t, nodes[i], s.Node)
		assert.Equal(t, nodes[i].DX, s.DX)
	}
}

func TestLayoutAncestors(t *testing.T) {
	l, err := Build(hierarchy.Sample(), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []int{}, l.Ancestors(0))
	assert.Equal(t, []int{0, 1}, l.Ancestors(3))
	assert.Equal(t, []int{0, 1, 3}, l.Path(3))
	assert.Equal(t, []int{}, l.Ancestors(99))
	assert.Equal(t, []int{}, l.Path(-1))

	for i, s := range l.Slices {
		assert.Len(t, l.Ancestors(i), s.Depth)
	}
}

func TestLayoutFind(t *testing.T) {
	l, err := Build(hierarchy.Sample(), DefaultConfig())
	require.NoError(t, err)

	i, ok := l.Find("e")
	assert.True(t, ok)
	assert.Equal(t, 4, i)

	_, ok = l.Find("zzz")
	assert.False(t, ok)
}

func TestMarshalRoundTrip(t *testing.T) {
	l, err := Build(hierarchy.Sample(), DefaultConfig())
	require.NoError(t, err)

	data, err := Marshal(l)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, decoded.Slices, len(l.Slices))
	for i := range l.Slices {
		assert.Nil(t, decoded.Slices[i].Node)
		assert.Equal(t, l.Slices[i].Geometry, decoded.Slices[i].Geometry)
		assert.Equal(t, l.Slices[i].Parent, decoded.Slices[i].Parent)
	}
	assert.Equal(t, l.Ancestors(5), decoded.Ancestors(5))
}

func TestUnmarshalRejectsForwardParents(t *testing.T) {
	_, err := Unmarshal([]byte(`{"slices":[{"index":0,"parent":1},{"index":1,"parent":-1}]}`))
	assert.True(t, serrors.Is(err, serrors.ErrCodeInvalidHierarchy))

	_, err = Unmarshal([]byte(`{not json`))
	assert.Error(t, err)
}

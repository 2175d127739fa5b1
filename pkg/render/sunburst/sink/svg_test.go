package sink

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/partition"
	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/render/sunburst/styles"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

func sampleLayout(t *testing.T) sunburst.Layout {
	t.Helper()
	l, err := sunburst.Build(hierarchy.Sample(), sunburst.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, l.Slices, 7)
	return l
}

func TestRenderSVGDocument(t *testing.T) {
	out := string(RenderSVG(sampleLayout(t)))

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400.0 400.0"`))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Contains(t, out, `transform="translate(200.00,200.00)"`)
	assert.Equal(t, 7, strings.Count(out, "<path "))
	assert.Equal(t, 7, strings.Count(out, `opacity="1"`))
	assert.Contains(t, out, `fill="#75C776"`)
	assert.Contains(t, out, `stroke="white" stroke-width="1"`)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<text")
}

func TestRenderSVGPaletteByIndex(t *testing.T) {
	out := string(RenderSVG(sampleLayout(t), WithPalette([]string{"#111", "#222"})))
	assert.Equal(t, 4, strings.Count(out, `fill="#111"`))
	assert.Equal(t, 3, strings.Count(out, `fill="#222"`))
}

func TestRenderSVGSelection(t *testing.T) {
	l := sampleLayout(t)
	c, ok := l.Find("c")
	require.True(t, ok)

	out := string(RenderSVG(l, WithSelected(c)))
	assert.Equal(t, 3, strings.Count(out, `opacity="1"`))
	assert.Equal(t, 4, strings.Count(out, `opacity="0.5"`))
	assert.Contains(t, out, `id="slice-2"`)
	assert.Contains(t, out, `data-trail="0 1 2"`)
}

func TestRenderSVGSelectionOutOfRange(t *testing.T) {
	out := string(RenderSVG(sampleLayout(t), WithSelected(99)))
	assert.NotContains(t, out, `opacity="0.5"`)
}

func TestRenderSVGHideRoot(t *testing.T) {
	out := string(RenderSVG(sampleLayout(t), WithHideRoot()))
	assert.Equal(t, 1, strings.Count(out, `style="display:none"`))
	assert.Contains(t, out, `id="slice-0" class="slice"`)
}

func TestRenderSVGFragment(t *testing.T) {
	out := string(RenderSVG(sampleLayout(t), WithFragment(), WithInteraction()))
	assert.True(t, strings.HasPrefix(out, `  <g class="sunburst"`))
	assert.NotContains(t, out, "<svg")
	assert.NotContains(t, out, "<script")
}

func TestRenderSVGInteraction(t *testing.T) {
	out := string(RenderSVG(sampleLayout(t), WithInteraction()))
	assert.Contains(t, out, "<style>")
	assert.Contains(t, out, "<![CDATA[")
}

func TestRenderSVGLabels(t *testing.T) {
	cfg := sunburst.DefaultConfig()
	cfg.Width, cfg.Height = 800, 800
	l, err := sunburst.Build(hierarchy.Sample(), cfg)
	require.NoError(t, err)

	out := string(RenderSVG(l, WithLabels(), WithFont("monospace", 12)))
	assert.Contains(t, out, `font-family="monospace" font-size="12"`)
	assert.Contains(t, out, ">a</text>")
}

func TestRenderSVGOutlineStyle(t *testing.T) {
	out := string(RenderSVG(sampleLayout(t), WithStyle(styles.Outline{})))
	assert.Equal(t, 7, strings.Count(out, `fill="none"`))
}

func TestRenderSVGSkipsEmptySlices(t *testing.T) {
	root := &hierarchy.Node{Name: "r", Children: []*hierarchy.Node{
		{Name: "x", Value: 1}, {Name: "zero", Value: 0},
	}}
	cfg := sunburst.DefaultConfig()
	cfg.ValueMode = partition.SumLeaves
	cfg.Value = hierarchy.Declared
	l, err := sunburst.Build(root, cfg)
	require.NoError(t, err)

	out := string(RenderSVG(l))
	assert.Equal(t, 2, strings.Count(out, "<path "))
	assert.NotContains(t, out, `id="slice-2"`)
}

func TestRenderJSON(t *testing.T) {
	l := sampleLayout(t)
	data, err := RenderJSON(l, WithJSONPalette(styles.DefaultPalette), WithJSONPaths(), WithJSONStyle("simple"))
	require.NoError(t, err)

	var doc struct {
		Width  float64 `json:"width"`
		Style  string  `json:"style"`
		Slices []struct {
			Name  string `json:"name"`
			Fill  string `json:"fill"`
			Path  string `json:"path"`
			Trail []int  `json:"trail"`
		} `json:"slices"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 400.0, doc.Width)
	assert.Equal(t, "simple", doc.Style)
	require.Len(t, doc.Slices, 7)
	assert.Equal(t, "d", doc.Slices[3].Name)
	assert.Equal(t, []int{0, 1, 3}, doc.Slices[3].Trail)
	assert.Equal(t, styles.DefaultPalette[3], doc.Slices[3].Fill)
	assert.NotEmpty(t, doc.Slices[3].Path)
}

func TestRenderJSONMinimal(t *testing.T) {
	data, err := RenderJSON(sampleLayout(t))
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"fill"`)
	assert.NotContains(t, string(data), `"path"`)
	assert.Contains(t, string(data), `"trail": [`)
}

func TestRenderPNG(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	out, err := RenderPNG(context.Background(), sampleLayout(t), WithScale(1), WithSVGOptions(WithFragment()))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "\x89PNG"))
}

func TestRenderPDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	out, err := RenderPDF(context.Background(), sampleLayout(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

package styles

import (
	"slices"
	"sort"
	"strings"

	serrors "github.com/matzehuels/sunburst/pkg/errors"
)

// DefaultPalette is used when no colour scale is configured.
var DefaultPalette = []string{
	"#75C776", "#39B6C5", "#78CCC4", "#62C3A4", "#64A8D1", "#8C95C8", "#3BAF74",
}

// namedPalettes are the built-in colour scales.
var namedPalettes = map[string][]string{
	"greyscale":   {"#cccccc", "#969696", "#636363", "#252525"},
	"qualitative": {"#334D5C", "#45B29D", "#EFC94C", "#E27A3F", "#DF5A49", "#4F7DA1", "#55DBC1", "#EFDA97", "#E2A37F", "#DF948A"},
	"heatmap":     {"#428517", "#77D200", "#D6D305", "#EC8E19", "#C92B05"},
	"warm":        {"#940031", "#C43343", "#DC5429", "#FF821D", "#FFAF55"},
	"cool":        {"#2746B9", "#0B69D4", "#2794DB", "#31BB76", "#60E83B"},
	"red":         {"#FCAE91", "#FB6A4A", "#DE2D26", "#A50F15", "#750B0E"},
	"green":       {"#354722", "#466631", "#649146", "#8AB25C", "#A9C97E"},
	"blue":        {"#002C61", "#004B8F", "#006BC9", "#3795E5", "#65B4F4"},
}

// PaletteNames returns the built-in scale names, sorted.
func PaletteNames() []string {
	names := make([]string, 0, len(namedPalettes))
	for n := range namedPalettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Palette resolves expr to a list of colours. An empty expr yields
// DefaultPalette; a known name yields that scale; anything else is parsed
// as comma-separated colours.
func Palette(expr string) ([]string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || expr == "default" {
		return slices.Clone(DefaultPalette), nil
	}
	if p, ok := namedPalettes[expr]; ok {
		return slices.Clone(p), nil
	}
	if !strings.ContainsAny(expr, ",#(") {
		return nil, serrors.New(serrors.ErrCodeInvalidPalette,
			"unknown palette %q (must be a colour list or one of: %s)", expr, strings.Join(PaletteNames(), ", "))
	}
	return Colors(strings.Split(expr, ","))
}

// Colors validates an explicit colour list.
func Colors(list []string) ([]string, error) {
	out := make([]string, 0, len(list))
	for _, c := range list {
		c = strings.TrimSpace(c)
		if err := serrors.ValidateColor(c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, serrors.New(serrors.ErrCodeInvalidPalette, "palette is empty")
	}
	return out, nil
}

// ColorAt returns the colour for slice index i.
func ColorAt(palette []string, i int) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

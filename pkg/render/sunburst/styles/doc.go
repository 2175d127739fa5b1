// Package styles defines visual styles for sunburst rendering.
//
// # Overview
//
// A [Style] decides how each slice and its label are drawn. Two styles ship
// with the package:
//
//   - [Simple]: solid palette fills separated by a thin stroke
//   - [Outline]: unfilled rings stroked in the palette colour
//
// # Palettes
//
// Slices are coloured by position: slice i takes palette[i % len(palette)].
// [Palette] resolves either a named scale (greyscale, qualitative, heatmap,
// warm, cool, red, green, blue) or a comma-separated list of CSS colours.
// Reordering siblings therefore changes colours; that is intended.
package styles

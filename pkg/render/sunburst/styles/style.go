package styles

import (
	"bytes"
	"fmt"
	"strings"
)

// Style defines the visual appearance of a sunburst.
type Style interface {
	// RenderDefs writes SVG <defs> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderSlice writes the SVG for one slice.
	RenderSlice(buf *bytes.Buffer, s Slice)
	// RenderLabel writes the label of one slice.
	RenderLabel(buf *bytes.Buffer, s Slice)
}

// Slice contains everything a style needs to draw one slice.
type Slice struct {
	ID          string  // element id, "slice-<index>"
	Index       int     // position in pre-order
	Label       string  // display text
	Path        string  // SVG path data
	Fill        string  // palette colour
	Stroke      string  // separator colour
	StrokeWidth float64 // separator width
	Opacity     float64 // 1 unless highlighting dims the slice
	Hidden      bool    // drawn with display:none
	Trail       []int   // selection path indices, root first, self last
	LabelX      float64 // label anchor relative to chart centre
	LabelY      float64
	MidRadius   float64 // radius at the middle of the ring
	Sweep       float64 // absolute angular extent in radians
	Thickness   float64 // ring thickness in pixels
	Value       float64
	FontSize    float64
	FontFamily  string
	TextColor   string
}

// ByName returns the style registered under name.
func ByName(name string) (Style, bool) {
	switch name {
	case "", StyleSimple:
		return Simple{}, true
	case StyleOutline:
		return Outline{}, true
	}
	return nil, false
}

// Style names.
const (
	StyleSimple  = "simple"
	StyleOutline = "outline"
)

// Simple draws solid slices separated by a stroke.
type Simple struct{}

// RenderDefs writes nothing; Simple needs no definitions.
func (Simple) RenderDefs(*bytes.Buffer) {}

// RenderSlice draws a filled path.
func (Simple) RenderSlice(buf *bytes.Buffer, s Slice) {
	writePath(buf, s, s.Fill, s.Stroke, s.StrokeWidth)
}

// RenderLabel draws centred text.
func (Simple) RenderLabel(buf *bytes.Buffer, s Slice) {
	writeLabel(buf, s)
}

// Outline draws unfilled slices stroked in their palette colour.
type Outline struct{}

// RenderDefs writes nothing.
func (Outline) RenderDefs(*bytes.Buffer) {}

// RenderSlice draws a stroked path.
func (Outline) RenderSlice(buf *bytes.Buffer, s Slice) {
	width := s.StrokeWidth * 2
	if width <= 0 {
		width = 2
	}
	writePath(buf, s, "none", s.Fill, width)
}

// RenderLabel draws text in the slice colour.
func (Outline) RenderLabel(buf *bytes.Buffer, s Slice) {
	s.TextColor = s.Fill
	writeLabel(buf, s)
}

func writePath(buf *bytes.Buffer, s Slice, fill, stroke string, width float64) {
	trail := make([]string, len(s.Trail))
	for i, t := range s.Trail {
		trail[i] = fmt.Sprint(t)
	}
	fmt.Fprintf(buf, `    <path id="%s" class="slice" d="%s" fill="%s" stroke="%s" stroke-width="%g" opacity="%g" data-trail="%s"`,
		s.ID, s.Path, EscapeXML(fill), EscapeXML(stroke), width, s.Opacity, strings.Join(trail, " "))
	if s.Hidden {
		buf.WriteString(` style="display:none"`)
	}
	fmt.Fprintf(buf, "><title>%s (%g)</title></path>\n", EscapeXML(s.Label), s.Value)
}

func writeLabel(buf *bytes.Buffer, s Slice) {
	size := s.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	if !LabelFits(s, s.Label, size) {
		return
	}
	family := s.FontFamily
	if family == "" {
		family = DefaultFontFamily
	}
	color := s.TextColor
	if color == "" {
		color = "black"
	}
	fmt.Fprintf(buf, `    <text class="slice-label" data-slice="%s" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%g" fill="%s" opacity="%g" pointer-events="none">%s</text>`+"\n",
		s.ID, s.LabelX, s.LabelY, EscapeXML(family), size, EscapeXML(color), s.Opacity, EscapeXML(s.Label))
}

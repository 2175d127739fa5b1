package styles

import (
	"bytes"
	"encoding/xml"
)

// Label defaults.
const (
	DefaultFontFamily = `'Helvetica Neue', Helvetica, Arial, sans-serif`
	DefaultFontSize   = 10.0

	fontCharWidth = 0.55
	labelPadding  = 4.0
)

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// LabelFits reports whether label, set at fontSize, fits inside the slice's
// arc at its mid radius and inside its radial thickness.
func LabelFits(s Slice, label string, fontSize float64) bool {
	if label == "" || s.Hidden {
		return false
	}
	width := float64(len([]rune(label)))*fontSize*fontCharWidth + labelPadding
	arcLen := s.MidRadius * s.Sweep
	if s.Sweep >= 6.283 {
		arcLen = 2 * s.MidRadius
	}
	return arcLen >= width && s.Thickness >= fontSize+labelPadding/2
}

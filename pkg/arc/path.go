package arc

import (
	"math"
	"strconv"
	"strings"
)

const epsilon = 1e-6

// Path returns SVG path data for g centred on the origin. padAngle (radians)
// is removed from the sweep, half on each side, while room remains. Empty
// geometry yields an empty string.
func Path(g Geometry, padAngle float64) string {
	r0, r1 := g.InnerRadius, g.OuterRadius
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	a0, a1 := g.StartAngle, g.EndAngle
	if a1 < a0 {
		a0, a1 = a1, a0
	}
	da := a1 - a0
	if da <= 0 || r1 <= 0 || r1 == r0 {
		return ""
	}

	var b strings.Builder
	if da >= 2*math.Pi-epsilon && padAngle <= 0 {
		ring(&b, r1, true)
		if r0 > 0 {
			ring(&b, r0, false)
		}
		b.WriteString("Z")
		return b.String()
	}

	if padAngle > 0 && da > padAngle {
		a0 += padAngle / 2
		a1 -= padAngle / 2
		da = a1 - a0
	}
	large := "0"
	if da > math.Pi {
		large = "1"
	}

	b.WriteString("M")
	point(&b, r1, a0)
	b.WriteString("A" + num(r1) + "," + num(r1) + " 0 " + large + ",1 ")
	point(&b, r1, a1)
	if r0 > 0 {
		b.WriteString("L")
		point(&b, r0, a1)
		b.WriteString("A" + num(r0) + "," + num(r0) + " 0 " + large + ",0 ")
		point(&b, r0, a0)
	} else {
		b.WriteString("L0,0")
	}
	b.WriteString("Z")
	return b.String()
}

// ring draws a full circle of radius r as two half arcs.
func ring(b *strings.Builder, r float64, clockwise bool) {
	sweep := "1"
	if !clockwise {
		sweep = "0"
	}
	rs := num(r)
	b.WriteString("M0," + rs)
	b.WriteString("A" + rs + "," + rs + " 0 1," + sweep + " 0," + num(-r))
	b.WriteString("A" + rs + "," + rs + " 0 1," + sweep + " 0," + rs)
}

func point(b *strings.Builder, r, a float64) {
	b.WriteString(num(r*math.Sin(a)) + "," + num(-r*math.Cos(a)))
}

// num formats v with at most three decimals and no negative zero.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

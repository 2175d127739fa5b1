// Package arc maps partitioned nodes onto annular-sector geometry.
//
// An [AngleScale] maps the partition's angular measure linearly onto a
// configured angle range (a full circle by default, a sub-range for partial
// sunbursts). A [RadiusScale] maps normalized depth onto pixels; the default
// [Sqrt] kind makes ring area grow linearly with depth so equal values cover
// equal area wherever they sit.
//
// [Mapper.Map] combines both and clamps the result: angles stay inside the
// configured range and never sweep backwards, radii never go negative, and
// non-finite input collapses to a zero-area slice rather than an error.
//
// [Path] turns a [Geometry] into SVG path data centred on the origin, with
// angles measured clockwise from twelve o'clock.
package arc

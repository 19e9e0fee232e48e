package geom

import "math"

// IntervalsOverlap reports whether [aStart, aEnd) and [bStart, bEnd) share
// more than eps of length.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd, eps float64) bool {
	return max(aStart, bStart) < min(aEnd, bEnd)-eps
}

// EdgesTouch reports whether two edge coordinates lie closer than tol.
func EdgesTouch(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// RectsOverlap reports whether a and b intersect with strictly positive area.
// Rectangles that only share an edge or a corner do not overlap.
func RectsOverlap(a, b Bounds) bool {
	return IntervalsOverlap(a.MinX, a.MaxX, b.MinX, b.MaxX, 0) &&
		IntervalsOverlap(a.MinY, a.MaxY, b.MinY, b.MaxY, 0)
}

// Adjacent reports whether a and b are direct neighbors: a vertical edge of
// one lies within eps of a vertical edge of the other while their vertical
// extents overlap by more than eps, or the same with axes swapped.
// Corner contact alone is not adjacency.
func Adjacent(a, b Bounds, eps float64) bool {
	vOverlap := IntervalsOverlap(a.MinY, a.MaxY, b.MinY, b.MaxY, eps)
	hOverlap := IntervalsOverlap(a.MinX, a.MaxX, b.MinX, b.MaxX, eps)

	touchLeft := EdgesTouch(a.MinX, b.MaxX, eps)
	touchRight := EdgesTouch(a.MaxX, b.MinX, eps)
	touchTop := EdgesTouch(a.MinY, b.MaxY, eps)
	touchBottom := EdgesTouch(a.MaxY, b.MinY, eps)

	return (vOverlap && (touchLeft || touchRight)) || (hOverlap && (touchTop || touchBottom))
}

// Diamond is the lozenge inscribed in a canvas: the set of points whose L1
// distance from the center is at most Radius.
type Diamond struct {
	CX, CY float64
	Radius float64
}

// NewDiamond returns the diamond inscribed in a w×h canvas.
func NewDiamond(w, h float64) Diamond {
	return Diamond{CX: w / 2, CY: h / 2, Radius: min(w, h) / 2}
}

// ContainsPoint reports whether (x, y) lies inside or on the diamond.
func (d Diamond) ContainsPoint(x, y float64) bool {
	return math.Abs(x-d.CX)+math.Abs(y-d.CY) <= d.Radius
}

// ContainsBounds reports whether all four corners of b lie inside the diamond.
func (d Diamond) ContainsBounds(b Bounds) bool {
	return d.ContainsPoint(b.MinX, b.MinY) &&
		d.ContainsPoint(b.MaxX, b.MinY) &&
		d.ContainsPoint(b.MinX, b.MaxY) &&
		d.ContainsPoint(b.MaxX, b.MaxY)
}

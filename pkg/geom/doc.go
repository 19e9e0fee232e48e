// Package geom provides the axis-aligned geometry predicates used by the
// augmentation rules.
//
// # Overview
//
// Scene shapes are reduced to a [Bounds] rectangle before any spatial
// reasoning happens. Rects map directly, circles use their enclosing square,
// and paths use [PathBounds], a deliberately crude estimate that treats the
// numeric tokens of the path data as alternating x/y coordinates.
//
// On top of bounds the package offers three families of predicates:
//
//   - [IntervalsOverlap] and [EdgesTouch]: one-dimensional building blocks
//   - [Adjacent]: two rectangles share an edge with positive perpendicular overlap
//   - [RectsOverlap]: two rectangles intersect with strictly positive area
//
// [Diamond] models the lozenge-shaped canvas of the source painting and
// answers containment queries in the L1 norm.
package geom

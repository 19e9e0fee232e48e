package scene

import (
	"math"
	"slices"

	"github.com/matzehuels/boogie/pkg/geom"
)

// Type discriminates shape variants.
type Type string

// Supported shape types.
const (
	TypeRect   Type = "rect"
	TypePath   Type = "path"
	TypeCircle Type = "circle"
)

// Document is a parsed illustration: canvas extents plus shapes in paint order.
type Document struct {
	Width  float64
	Height float64

	// Shapes is nil when the source carried no shape list at all; rules
	// treat that as nothing to do.
	Shapes []*Shape
}

// Transform is a raw SVG transform attribute, replayed by the renderer.
type Transform struct {
	Raw string
}

// Decoration is a filled sub-rectangle drawn on top of its parent rect.
// Coordinates are offsets from the parent's origin.
type Decoration struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	Fill string  `json:"fill"`
}

// Shape is one primitive of the scene.
type Shape struct {
	Type   Type
	Fill   string
	Stroke string

	ParentTransforms []Transform
	Transform        *Transform

	Opacity     *float64
	FillOpacity *float64

	// Rect geometry.
	X, Y, Width, Height float64

	// Path data.
	D string

	// Circle geometry.
	CX, CY, R float64

	Decorations []Decoration

	// IsControlledStripe marks shapes appended by the stripe rule.
	IsControlledStripe bool

	// missing records the geometry fields absent on decode.
	missing fields
}

// fields is a set of geometry fields.
type fields uint8

const (
	fieldX fields = 1 << iota
	fieldY
	fieldWidth
	fieldHeight
	fieldD
	fieldCX
	fieldCY
	fieldR
)

func (f fields) has(x fields) bool { return f&x != 0 }

// missingIf returns x when p is nil.
func missingIf[T any](p *T, x fields) fields {
	if p == nil {
		return x
	}
	return 0
}

// NewRect returns a rect shape.
func NewRect(x, y, w, h float64, fill string) *Shape {
	return &Shape{Type: TypeRect, X: x, Y: y, Width: w, Height: h, Fill: fill}
}

// NewPath returns a path shape.
func NewPath(d, fill string) *Shape {
	return &Shape{Type: TypePath, D: d, Fill: fill}
}

// NewCircle returns a circle shape.
func NewCircle(cx, cy, r float64, fill string) *Shape {
	return &Shape{Type: TypeCircle, CX: cx, CY: cy, R: r, Fill: fill}
}

// IsRect reports whether s is a rect.
func (s *Shape) IsRect() bool { return s.Type == TypeRect }

// Bounds returns the axis-aligned bounds of s in its local coordinates.
// It reports false when the geometry is unavailable: missing numeric fields,
// negative extents, path data with too few numbers, or an unknown type.
func (s *Shape) Bounds() (geom.Bounds, bool) {
	if s.missing&^fieldD != 0 {
		return geom.Bounds{}, false
	}
	switch s.Type {
	case TypeRect:
		if s.Width < 0 || s.Height < 0 {
			return geom.Bounds{}, false
		}
		return geom.RectBounds(s.X, s.Y, s.Width, s.Height), true
	case TypePath:
		return geom.PathBounds(s.D)
	case TypeCircle:
		if s.R < 0 {
			return geom.Bounds{}, false
		}
		return geom.CircleBounds(s.CX, s.CY, s.R), true
	}
	return geom.Bounds{}, false
}

// Area is the paint-order sort key: w*h for rects, πr² for circles, and 0
// for paths and unknown types.
func (s *Shape) Area() float64 {
	switch s.Type {
	case TypeRect:
		return s.Width * s.Height
	case TypeCircle:
		return math.Pi * s.R * s.R
	}
	return 0
}

// Clone returns a deep copy of s.
func (s *Shape) Clone() *Shape {
	c := *s
	c.ParentTransforms = slices.Clone(s.ParentTransforms)
	c.Decorations = slices.Clone(s.Decorations)
	if s.Transform != nil {
		t := *s.Transform
		c.Transform = &t
	}
	if s.Opacity != nil {
		v := *s.Opacity
		c.Opacity = &v
	}
	if s.FillOpacity != nil {
		v := *s.FillOpacity
		c.FillOpacity = &v
	}
	return &c
}

// Clone returns a deep copy of d. A nil shape list stays nil.
func (d *Document) Clone() *Document {
	c := &Document{Width: d.Width, Height: d.Height}
	if d.Shapes != nil {
		c.Shapes = make([]*Shape, len(d.Shapes))
		for i, s := range d.Shapes {
			c.Shapes[i] = s.Clone()
		}
	}
	return c
}

// Append adds shapes on top of the current paint order.
func (d *Document) Append(shapes ...*Shape) {
	d.Shapes = append(d.Shapes, shapes...)
}

// Summary counts the shapes of a document.
type Summary struct {
	Rects       int `json:"rects"`
	Paths       int `json:"paths"`
	Circles     int `json:"circles"`
	Stripes     int `json:"stripes"`
	Decorations int `json:"decorations"`
}

// Total returns the number of top-level shapes.
func (s Summary) Total() int { return s.Rects + s.Paths + s.Circles }

// Summarize counts shapes by type, stripe segments, and decorations.
// Shapes of unknown type are not counted.
func Summarize(d *Document) Summary {
	var s Summary
	for _, sh := range d.Shapes {
		switch sh.Type {
		case TypeRect:
			s.Rects++
		case TypePath:
			s.Paths++
		case TypeCircle:
			s.Circles++
		}
		if sh.IsControlledStripe {
			s.Stripes++
		}
		s.Decorations += len(sh.Decorations)
	}
	return s
}

package geom

import (
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

// Bounds is an axis-aligned bounding rectangle in scene coordinates.
type Bounds struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// RectBounds returns the bounds of a rectangle given by origin and size.
func RectBounds(x, y, w, h float64) Bounds {
	return Bounds{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// CircleBounds returns the square enclosing a circle.
func CircleBounds(cx, cy, r float64) Bounds {
	return Bounds{MinX: cx - r, MinY: cy - r, MaxX: cx + r, MaxY: cy + r}
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Area returns Width*Height.
func (b Bounds) Area() float64 { return b.Width() * b.Height() }

// HasArea reports whether both extents are strictly positive.
func (b Bounds) HasArea() bool { return b.Width() > 0 && b.Height() > 0 }

// minPathTokens is the fewest numeric tokens that still describe two points.
const minPathTokens = 4

// PathBounds estimates the bounds of SVG path data.
//
// Every run of digits and dots in d is a token; signs, exponents and command
// letters act as separators. Tokens are read positionally, even indices as x
// and odd indices as y, without interpreting the path commands. Relative
// commands and negative coordinates therefore produce wrong boxes; callers
// only need a rough footprint.
//
// It returns false when fewer than four tokens can be parsed.
func PathBounds(d string) (Bounds, bool) {
	coords := pathNumbers(d)
	if len(coords) < minPathTokens {
		return Bounds{}, false
	}

	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for i, v := range coords {
		if i%2 == 0 {
			b.MinX = min(b.MinX, v)
			b.MaxX = max(b.MaxX, v)
		} else {
			b.MinY = min(b.MinY, v)
			b.MaxY = max(b.MaxY, v)
		}
	}
	return b, true
}

// pathNumbers extracts the numeric tokens of d. A token such as "1.5.5" has
// prefix semantics and parses as 1.5; a token without any digits is dropped.
func pathNumbers(d string) []float64 {
	buf := []byte(d)
	var out []float64
	for i := 0; i < len(buf); {
		if !isNumberByte(buf[i]) {
			i++
			continue
		}
		j := i
		for j < len(buf) && isNumberByte(buf[j]) {
			j++
		}
		if f, n := strconv.ParseFloat(buf[i:j]); n > 0 {
			out = append(out, f)
		}
		i = j
	}
	return out
}

func isNumberByte(c byte) bool {
	return c == '.' || ('0' <= c && c <= '9')
}

package scene

import (
	"slices"
	"strings"

	"github.com/matzehuels/boogie/pkg/palette"
)

// backdropFills are the exact fills sorted to the bottom. Other greys and
// white sort by area like any other shape.
var backdropFills = []string{palette.HexLightGrey, palette.HexMidGrey}

func isBackdrop(fill string) bool {
	return slices.Contains(backdropFills, strings.ToUpper(fill))
}

// SortPaintOrder reorders shapes so the two backdrop greys paint first and
// larger shapes paint beneath smaller ones. The sort is stable: shapes with
// equal keys keep their source order.
func SortPaintOrder(d *Document) {
	slices.SortStableFunc(d.Shapes, func(a, b *Shape) int {
		bgA, bgB := isBackdrop(a.Fill), isBackdrop(b.Fill)
		switch {
		case bgA && !bgB:
			return -1
		case !bgA && bgB:
			return 1
		}
		areaA, areaB := a.Area(), b.Area()
		switch {
		case areaA > areaB:
			return -1
		case areaA < areaB:
			return 1
		}
		return 0
	})
}

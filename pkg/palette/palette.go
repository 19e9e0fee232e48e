package palette

import (
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/boogie/pkg/random"
)

// Palette is an ordered list of hex colors. Repeating an entry weights it:
// uniform sampling over the list favors colors that appear more often.
type Palette []string

// Named palettes used by the rule presets.
var (
	// Ink holds the four ink families.
	Ink = Palette{HexRed, HexBlue, HexYellow, HexBlack}

	// InkTan replaces near-black with a muted tan.
	InkTan = Palette{HexRed, HexBlue, HexYellow, HexTan}

	// StripeWeighted mirrors the frequency of the painting: yellow most
	// common, black sparse.
	StripeWeighted = Palette{
		HexYellow, HexYellow, HexYellow,
		HexRed, HexRed,
		HexBlue, HexBlue,
		HexBlack,
	}

	// Dot is the ink families plus light grey.
	Dot = Palette{HexRed, HexBlue, HexYellow, HexBlack, HexLightGrey}
)

var named = map[string]Palette{
	"ink":     Ink,
	"ink-tan": InkTan,
	"stripe":  StripeWeighted,
	"dot":     Dot,
}

// Named returns a copy of the palette registered under name.
func Named(name string) (Palette, bool) {
	p, ok := named[name]
	return slices.Clone(p), ok
}

// Names returns the registered palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Pick draws one entry uniformly. It panics on an empty palette; callers
// validate palettes before running rules.
func (p Palette) Pick(r *random.Source) string {
	return random.Pick(r, p)
}

// Contains reports whether color is an entry, compared case-insensitively.
func (p Palette) Contains(color string) bool {
	return slices.ContainsFunc(p, func(c string) bool { return SameHex(c, color) })
}

// Validate checks that the palette is non-empty and every entry is a
// well-formed #RRGGBB color.
func Validate(p Palette) error {
	if len(p) == 0 {
		return fmt.Errorf("palette is empty")
	}
	for _, c := range p {
		if _, err := colorful.Hex(c); err != nil {
			return fmt.Errorf("invalid color %q: %w", c, err)
		}
	}
	return nil
}

// Lightness returns the CIE L* of a hex color in [0, 1].
func Lightness(hex string) (float64, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, err
	}
	l, _, _ := c.Lab()
	return l, nil
}

// PickContrasting draws uniformly among the canonical ink colors whose
// family is not in avoid. When avoid covers every ink family, the result is
// near-black: the sparsest color in the painting and the least disruptive
// forced choice. One random value is still drawn in that case, so the
// stream position does not depend on which families were avoided.
func PickContrasting(avoid FamilySet, r *random.Source) string {
	allowed := make([]string, 0, len(InkFamilies))
	for _, f := range InkFamilies {
		if !avoid[f] {
			allowed = append(allowed, Canonical(f))
		}
	}
	if len(allowed) == 0 {
		r.Float()
		return HexBlack
	}
	return random.Pick(r, allowed)
}

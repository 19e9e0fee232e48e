package palette

import (
	"strings"
)

// Family is a hue group of the source palette.
type Family int

// Families in classification order. [FamilyOf] returns the first match.
const (
	None Family = iota
	Yellow
	Red
	Blue
	Black
	LightGrey
	MidGrey
	White
)

// Canonical hex values per family.
const (
	HexYellow    = "#F0CF00"
	HexRed       = "#C53018"
	HexBlue      = "#1A56A4"
	HexBlack     = "#131533"
	HexLightGrey = "#EAECEC"
	HexMidGrey   = "#CBD5DD"
	HexWhite     = "#FFFFFF"
	HexTan       = "#D2CDA3"
)

var familyNames = map[Family]string{
	None:      "none",
	Yellow:    "yellow",
	Red:       "red",
	Blue:      "blue",
	Black:     "black",
	LightGrey: "light-grey",
	MidGrey:   "mid-grey",
	White:     "white",
}

// String returns the family name.
func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return "unknown"
}

type family struct {
	id        Family
	canonical string
	aliases   []string
}

// families is ordered; white is matched exactly, not by substring.
var families = []family{
	{Yellow, HexYellow, []string{"F0CF", "E8BF", "FCF", "FFCC"}},
	{Red, HexRed, []string{"C530", "3018", "FF0000"}},
	{Blue, HexBlue, []string{"1A56", "56A4", "0000FF"}},
	{Black, HexBlack, []string{"1315", "3153", "000000"}},
	{LightGrey, HexLightGrey, []string{"EAEC"}},
	{MidGrey, HexMidGrey, []string{"CBD5"}},
}

// InkFamilies are the foreground families, in pick order.
var InkFamilies = []Family{Yellow, Red, Blue, Black}

// Canonical returns the canonical hex of f, or "" for None.
func Canonical(f Family) string {
	if f == White {
		return HexWhite
	}
	for _, fam := range families {
		if fam.id == f {
			return fam.canonical
		}
	}
	return ""
}

// IsUnset reports whether color carries no paint: empty or "none".
func IsUnset(color string) bool {
	return color == "" || strings.EqualFold(color, "none")
}

// FamiliesOf returns every family whose aliases occur in color. A color
// such as "#C5301315" matches several families.
func FamiliesOf(color string) []Family {
	if IsUnset(color) {
		return nil
	}
	c := strings.ToUpper(color)
	if c == HexWhite {
		return []Family{White}
	}
	var out []Family
	for _, fam := range families {
		for _, alias := range fam.aliases {
			if strings.Contains(c, alias) {
				out = append(out, fam.id)
				break
			}
		}
	}
	return out
}

// FamilyOf returns the first family matching color, or None.
func FamilyOf(color string) Family {
	if fams := FamiliesOf(color); len(fams) > 0 {
		return fams[0]
	}
	return None
}

// IsBackground reports whether color belongs to a grey family or is white.
func IsBackground(color string) bool {
	for _, f := range FamiliesOf(color) {
		if f == LightGrey || f == MidGrey || f == White {
			return true
		}
	}
	return false
}

// IsPaintable reports whether a shape with this fill may be recolored or
// decorated: it carries paint and is not part of the backdrop.
func IsPaintable(color string) bool {
	return !IsUnset(color) && !IsBackground(color)
}

// SameHex compares two hex strings case-insensitively.
func SameHex(a, b string) bool {
	return strings.EqualFold(a, b)
}

// FamilySet is a set of families to avoid.
type FamilySet map[Family]bool

// AvoidSet builds the union of the families of colors.
func AvoidSet(colors ...string) FamilySet {
	set := FamilySet{}
	for _, c := range colors {
		for _, f := range FamiliesOf(c) {
			set[f] = true
		}
	}
	return set
}

// Disjoint reports whether color shares no family with s.
func (s FamilySet) Disjoint(color string) bool {
	for _, f := range FamiliesOf(color) {
		if s[f] {
			return false
		}
	}
	return true
}

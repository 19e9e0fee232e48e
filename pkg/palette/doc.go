// Package palette classifies fill colors into the hue families of the source
// painting and picks contrasting replacements.
//
// Classification is substring based: a color belongs to a family when its
// upper-cased string contains one of the family's aliases. This tolerates
// the near-variant hex codes the extractor produces ("#F0CF01", "#e8bf00")
// without any color-space math.
//
// The four ink families (yellow, red, blue, near-black) are the colors the
// rules paint with. The two grey families and pure white form the backdrop
// and are never recolored or decorated.
package palette

package rules

import (
	"strings"

	"github.com/matzehuels/boogie/pkg/geom"
	"github.com/matzehuels/boogie/pkg/palette"
	"github.com/matzehuels/boogie/pkg/random"
	"github.com/matzehuels/boogie/pkg/scene"
)

// Stripe fills the gaps named by the configured stripe specs with runs of
// colored segments. The segments at either end contrast with the shapes
// the stripe abuts.
type Stripe struct {
	cfg  StripeConfig
	grid float64
}

// NewStripe returns the rule for cfg snapping segments to grid.
func NewStripe(cfg StripeConfig, grid float64) *Stripe {
	return &Stripe{cfg: cfg, grid: grid}
}

func (*Stripe) Name() string { return NameStripe }

// Span is one segment of a stripe along its axis.
type Span struct {
	Start  float64
	Length float64
}

// End returns the exclusive end of the span.
func (s Span) End() float64 { return s.Start + s.Length }

// resolved is a stripe spec with its random geometry drawn.
type resolved struct {
	StripeSpec
	pos, thickness float64
	active         bool
	startColors    []string
	endColors      []string
}

func (s *Stripe) Apply(doc *scene.Document, env *Env) Report {
	rep := Report{Rule: s.Name()}
	if doc == nil || len(s.cfg.Specs) == 0 {
		return rep
	}
	logger := env.logger()

	stripes := make([]resolved, len(s.cfg.Specs))
	for i, spec := range s.cfg.Specs {
		stripes[i] = resolved{StripeSpec: spec}
		stripes[i].pos = spec.Pos.Resolve(env.Rand)
		stripes[i].thickness = spec.Thickness.Resolve(env.Rand)
	}
	for i := range stripes {
		stripes[i].active = env.Rand.Float() < s.cfg.Probability
	}

	// Boundaries are read against the document as it stood before any
	// stripe was added.
	for i := range stripes {
		st := &stripes[i]
		if !st.active {
			continue
		}
		st.startColors, st.endColors = s.boundaries(doc.Shapes, st)
		logger.Debug("stripe active",
			"index", i, "orientation", st.Orientation,
			"start", st.Start, "end", st.End, "pos", st.pos, "thickness", st.thickness,
			"startColors", st.startColors, "endColors", st.endColors)
	}

	var clip *geom.Diamond
	if s.cfg.ClipToDiamond && doc.Width > 0 && doc.Height > 0 {
		d := geom.NewDiamond(doc.Width, doc.Height)
		clip = &d
	}

	for i := range stripes {
		st := &stripes[i]
		if !st.active {
			continue
		}
		spans := s.segment(st.Start, st.End, st.Orientation, env.Rand)
		for j, span := range spans {
			seg := st.rect(span)
			seg.Fill = s.color(st, j, len(spans), env.Rand)
			if clip != nil {
				if b, _ := seg.Bounds(); !clip.ContainsBounds(b) {
					rep.Skipped++
					continue
				}
			}
			doc.Append(seg)
			rep.Added++
		}
	}
	return rep
}

// segment partitions [start, end) greedily into grid-multiple lengths.
// A reversed span yields nothing.
func (s *Stripe) segment(start, end float64, o Orientation, r *random.Source) []Span {
	base := s.cfg.HorizontalBase
	if o == Vertical {
		base = s.cfg.VerticalBase
	}
	final := s.grid * float64(s.cfg.FinalUnits)

	var spans []Span
	pos := start
	for iter := 0; pos < end && iter < s.cfg.MaxIterations; iter++ {
		remaining := end - pos
		if remaining <= final {
			if remaining >= s.cfg.MinSegment {
				spans = append(spans, Span{Start: pos, Length: remaining})
			}
			break
		}
		length := min(s.grid*float64(base+r.IntN(s.cfg.Spread)), remaining)
		if length >= s.cfg.MinSegment {
			spans = append(spans, Span{Start: pos, Length: length})
		}
		pos += length
	}
	return spans
}

// color picks the fill of segment j of n. The first segment contrasts
// with the start boundary, the last with the end boundary, and a lone
// segment with both.
func (s *Stripe) color(st *resolved, j, n int, r *random.Source) string {
	var avoid []string
	if j == 0 {
		avoid = append(avoid, st.startColors...)
	}
	if j == n-1 {
		avoid = append(avoid, st.endColors...)
	}
	if len(avoid) == 0 {
		return s.cfg.Palette.Pick(r)
	}
	return palette.PickContrasting(palette.AvoidSet(avoid...), r)
}

func (st *resolved) rect(span Span) *scene.Shape {
	var seg *scene.Shape
	if st.Orientation == Horizontal {
		seg = scene.NewRect(span.Start, st.pos, span.Length, st.thickness, "")
	} else {
		seg = scene.NewRect(st.pos, span.Start, st.thickness, span.Length, "")
	}
	seg.IsControlledStripe = true
	return seg
}

// boundaries returns the distinct fills of the shapes abutting the start
// and end anchors of st, in order of discovery.
func (s *Stripe) boundaries(shapes []*scene.Shape, st *resolved) (start, end []string) {
	lo, hi := st.pos, st.pos+st.thickness
	tol := s.cfg.Tolerance
	seenStart, seenEnd := map[string]bool{}, map[string]bool{}

	for _, sh := range shapes {
		if sh.Type != scene.TypeRect && sh.Type != scene.TypePath {
			continue
		}
		if !palette.IsPaintable(sh.Fill) {
			continue
		}
		b, ok := sh.Bounds()
		if !ok {
			continue
		}

		var atStart, atEnd bool
		if st.Orientation == Horizontal {
			if geom.IntervalsOverlap(b.MinY, b.MaxY, lo, hi, 0) {
				atStart = geom.EdgesTouch(b.MaxX, st.Start, tol)
				atEnd = geom.EdgesTouch(b.MinX, st.End, tol)
			}
		} else {
			if geom.IntervalsOverlap(b.MinX, b.MaxX, lo, hi, 0) {
				atStart = geom.EdgesTouch(b.MaxY, st.Start, tol)
				atEnd = geom.EdgesTouch(b.MinY, st.End, tol)
			}
		}

		key := strings.ToUpper(sh.Fill)
		if atStart && !seenStart[key] {
			seenStart[key] = true
			start = append(start, sh.Fill)
		}
		if atEnd && !seenEnd[key] {
			seenEnd[key] = true
			end = append(end, sh.Fill)
		}
	}
	return start, end
}

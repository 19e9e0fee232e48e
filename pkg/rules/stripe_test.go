package rules

import (
	"testing"

	"github.com/matzehuels/boogie/pkg/palette"
	"github.com/matzehuels/boogie/pkg/random"
	"github.com/matzehuels/boogie/pkg/scene"
)

func stripeRule(specs ...StripeSpec) *Stripe {
	cfg := DefaultConfig()
	cfg.Stripe.Probability = 1
	cfg.Stripe.Specs = specs
	return NewStripe(cfg.Stripe, cfg.Grid)
}

func stripes(doc *scene.Document) []*scene.Shape {
	var out []*scene.Shape
	for _, s := range doc.Shapes {
		if s.IsControlledStripe {
			out = append(out, s)
		}
	}
	return out
}

func TestStripe_SegmentTiling(t *testing.T) {
	s := stripeRule()
	tests := []struct {
		name       string
		start, end float64
		o          Orientation
	}{
		{"horizontal 200", 0, 200, Horizontal},
		{"vertical 200", 0, 200, Vertical},
		{"offset span", 1515, 2305, Horizontal},
		{"short span", 0, 40, Vertical},
		{"one unit", 0, 10, Horizontal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := uint64(1); seed <= 25; seed++ {
				spans := s.segment(tt.start, tt.end, tt.o, random.New(seed))
				if len(spans) == 0 {
					t.Fatalf("seed %d: no segments", seed)
				}
				if spans[0].Start != tt.start {
					t.Fatalf("seed %d: first segment starts at %v", seed, spans[0].Start)
				}
				for i := 1; i < len(spans); i++ {
					if spans[i].Start != spans[i-1].End() {
						t.Fatalf("seed %d: gap between %v and %v", seed, spans[i-1], spans[i])
					}
				}
				if last := spans[len(spans)-1]; last.End() != tt.end {
					t.Fatalf("seed %d: last segment ends at %v, want %v", seed, last.End(), tt.end)
				}
			}
		})
	}
}

func TestStripe_SegmentLengths(t *testing.T) {
	s := stripeRule()
	for seed := uint64(1); seed <= 25; seed++ {
		for _, tt := range []struct {
			o      Orientation
			lo, hi float64
		}{
			{Horizontal, 20, 50},
			{Vertical, 30, 60},
		} {
			spans := s.segment(0, 1000, tt.o, random.New(seed))
			for _, sp := range spans[:len(spans)-1] {
				if sp.Length < tt.lo || sp.Length > tt.hi || int(sp.Length)%10 != 0 {
					t.Errorf("seed %d %s: segment length %v outside [%v, %v]", seed, tt.o, sp.Length, tt.lo, tt.hi)
				}
			}
			if last := spans[len(spans)-1]; last.Length > tt.hi {
				t.Errorf("seed %d %s: final segment %v too long", seed, tt.o, last.Length)
			}
		}
	}
}

func TestStripe_SegmentEdgeCases(t *testing.T) {
	s := stripeRule()
	r := random.New(1)

	if got := s.segment(0, 3, Horizontal, r); len(got) != 0 {
		t.Errorf("span shorter than the minimum segment: got %v", got)
	}
	if got := s.segment(2158, 1578, Vertical, r); len(got) != 0 {
		t.Errorf("reversed span: got %v", got)
	}
	if got := s.segment(0, 35, Horizontal, r); len(got) != 1 || got[0].Length != 35 {
		t.Errorf("final remainder: got %v, want one segment of 35", got)
	}
	if r.Draws() != 0 {
		t.Errorf("remainder-only spans consumed %d draws", r.Draws())
	}

	capped := stripeRule()
	capped.cfg.MaxIterations = 3
	if got := capped.segment(0, 10000, Horizontal, random.New(1)); len(got) > 3 {
		t.Errorf("iteration cap: got %d segments", len(got))
	}
}

func TestStripe_UnconstrainedScenario(t *testing.T) {
	doc := newDoc(0, 0)
	rule := stripeRule(StripeSpec{
		Orientation: Horizontal, Start: 0, End: 200, Pos: Fixed(0), Thickness: Fixed(10),
	})

	rep := rule.Apply(doc, NewEnv(1, nil))
	segs := stripes(doc)
	if rep.Added != len(segs) || len(segs) == 0 {
		t.Fatalf("added %d, found %d stripe shapes", rep.Added, len(segs))
	}

	pos := 0.0
	for _, s := range segs {
		if !s.IsRect() || s.X != pos || s.Y != 0 || s.Height != 10 {
			t.Errorf("segment %+v does not continue at x=%v", s, pos)
		}
		if s.Stroke != "" {
			t.Errorf("segment has stroke %q", s.Stroke)
		}
		if !palette.StripeWeighted.Contains(s.Fill) {
			t.Errorf("segment color %s not in the stripe palette", s.Fill)
		}
		pos += s.Width
	}
	if pos != 200 {
		t.Errorf("segments cover [0, %v), want [0, 200)", pos)
	}
}

func TestStripe_NoSameFamilySeam(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		doc := newDoc(400, 10,
			scene.NewRect(0, 0, 100, 10, palette.HexYellow),
			scene.NewRect(300, 0, 50, 10, "#c53018"),
			scene.NewRect(90, 0, 10, 10, palette.HexLightGrey),
		)
		rule := stripeRule(StripeSpec{
			Orientation: Horizontal, Start: 100, End: 300, Pos: Fixed(0), Thickness: Fixed(10),
		})
		rule.Apply(doc, NewEnv(seed, nil))

		segs := stripes(doc)
		if len(segs) < 2 {
			t.Fatalf("seed %d: %d segments", seed, len(segs))
		}
		if !palette.AvoidSet(palette.HexYellow).Disjoint(segs[0].Fill) {
			t.Errorf("seed %d: first segment %s matches the yellow start", seed, segs[0].Fill)
		}
		if last := segs[len(segs)-1]; !palette.AvoidSet(palette.HexRed).Disjoint(last.Fill) {
			t.Errorf("seed %d: last segment %s matches the red end", seed, last.Fill)
		}
	}
}

func TestStripe_Boundaries(t *testing.T) {
	rule := stripeRule()
	st := &resolved{
		StripeSpec: StripeSpec{Orientation: Vertical, Start: 100, End: 300},
		pos:        50, thickness: 20,
	}
	shapes := []*scene.Shape{
		// Above the start, overlapping the stripe's columns.
		scene.NewRect(40, 0, 40, 100, palette.HexBlue),
		// Same fill in another case, within tolerance.
		scene.NewRect(40, 0, 40, 110, "#1a56a4"),
		// Above the start but beside the stripe.
		scene.NewRect(0, 0, 30, 100, palette.HexRed),
		scene.NewRect(55, 300, 5, 50, palette.HexYellow),
		scene.NewRect(55, 300, 5, 50, palette.HexMidGrey),
		scene.NewPath("M 50 320 L 70 320 L 70 400", "#131533"),
		scene.NewCircle(60, 90, 5, palette.HexRed),
	}

	start, end := rule.boundaries(shapes, st)
	if len(start) != 1 || start[0] != palette.HexBlue {
		t.Errorf("start = %v, want [%s]", start, palette.HexBlue)
	}
	if len(end) != 2 || end[0] != palette.HexYellow || end[1] != "#131533" {
		t.Errorf("end = %v, want [%s #131533]", end, palette.HexYellow)
	}
}

func TestStripe_SingleSegmentAvoidsBothEnds(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		doc := newDoc(0, 0,
			scene.NewRect(0, 0, 100, 10, palette.HexYellow),
			scene.NewRect(130, 0, 50, 10, palette.HexBlue),
		)
		rule := stripeRule(StripeSpec{
			Orientation: Horizontal, Start: 100, End: 130, Pos: Fixed(0), Thickness: Fixed(10),
		})
		rule.Apply(doc, NewEnv(seed, nil))

		segs := stripes(doc)
		if len(segs) != 1 {
			t.Fatalf("seed %d: %d segments, want 1", seed, len(segs))
		}
		if !palette.AvoidSet(palette.HexYellow, palette.HexBlue).Disjoint(segs[0].Fill) {
			t.Errorf("seed %d: lone segment %s touches a boundary family", seed, segs[0].Fill)
		}
	}
}

func TestStripe_ActivationDraws(t *testing.T) {
	cfg := DefaultConfig().Stripe
	cfg.Probability = 0
	rule := NewStripe(cfg, 10)

	doc := boogieDoc()
	n := len(doc.Shapes)
	env := NewEnv(5, nil)
	rep := rule.Apply(doc, env)

	if rep.Added != 0 || len(doc.Shapes) != n {
		t.Errorf("inactive stripes added %d shapes", len(doc.Shapes)-n)
	}
	// Eight ranged coordinates and seven activation draws.
	if got := env.Rand.Draws(); got != 15 {
		t.Errorf("draws = %d, want 15", got)
	}
}

func TestStripe_ClipToDiamond(t *testing.T) {
	rule := stripeRule(
		StripeSpec{Orientation: Horizontal, Start: 0, End: 100, Pos: Fixed(0), Thickness: Fixed(5)},
		StripeSpec{Orientation: Horizontal, Start: 40, End: 60, Pos: Fixed(48), Thickness: Fixed(4)},
	)
	rule.cfg.ClipToDiamond = true

	doc := newDoc(100, 100)
	rep := rule.Apply(doc, NewEnv(2, nil))
	if rep.Skipped == 0 {
		t.Error("segments along the top edge were not clipped")
	}
	for _, s := range doc.Shapes {
		if s.Y == 0 {
			t.Errorf("segment %+v survived outside the diamond", s)
		}
	}
	if rep.Added != 1 {
		t.Errorf("added = %d, want the centered segment", rep.Added)
	}
}

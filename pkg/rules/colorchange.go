package rules

import (
	"strings"

	"github.com/matzehuels/boogie/pkg/geom"
	"github.com/matzehuels/boogie/pkg/palette"
	"github.com/matzehuels/boogie/pkg/scene"
)

// ColorChange recolors a random subset of paintable shapes so that no
// shape ends up sharing a color with a rect it borders.
type ColorChange struct {
	cfg ColorChangeConfig
}

// NewColorChange returns the rule for cfg.
func NewColorChange(cfg ColorChangeConfig) *ColorChange {
	return &ColorChange{cfg: cfg}
}

func (*ColorChange) Name() string { return NameColorChange }

func (c *ColorChange) Apply(doc *scene.Document, env *Env) Report {
	rep := Report{Rule: c.Name()}
	if doc == nil || len(doc.Shapes) == 0 {
		return rep
	}
	logger := env.logger()

	for i, s := range doc.Shapes {
		if s.IsControlledStripe || !palette.IsPaintable(s.Fill) {
			continue
		}
		if env.Rand.Float() >= c.cfg.Probability {
			continue
		}

		forbid := c.forbidden(doc.Shapes, i)
		color, ok := c.pick(forbid, env)
		if !ok {
			rep.Skipped++
			logger.Debug("no color available", "shape", i, "fill", s.Fill, "forbidden", len(forbid))
			continue
		}
		logger.Debug("recolor", "shape", i, "from", s.Fill, "to", color)
		s.Fill = color
		rep.Recolored++
	}
	return rep
}

// forbidden collects the colors shape i may not take: its own and the
// current fill of every rect adjacent to it.
func (c *ColorChange) forbidden(shapes []*scene.Shape, i int) map[string]bool {
	forbid := map[string]bool{strings.ToUpper(shapes[i].Fill): true}
	b, ok := shapes[i].Bounds()
	if !ok || !b.HasArea() {
		return forbid
	}
	for j, o := range shapes {
		if j == i || !o.IsRect() {
			continue
		}
		ob, ok := o.Bounds()
		if !ok || !ob.HasArea() || !geom.Adjacent(b, ob, c.cfg.Epsilon) {
			continue
		}
		if !palette.IsUnset(o.Fill) {
			forbid[strings.ToUpper(o.Fill)] = true
		}
	}
	return forbid
}

func (c *ColorChange) pick(forbid map[string]bool, env *Env) (string, bool) {
	for range c.cfg.MaxAttempts {
		color := c.cfg.Palette.Pick(env.Rand)
		if !forbid[strings.ToUpper(color)] {
			return color, true
		}
	}
	return "", false
}

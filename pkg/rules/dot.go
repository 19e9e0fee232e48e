package rules

import (
	"math"

	"github.com/matzehuels/boogie/pkg/geom"
	"github.com/matzehuels/boogie/pkg/palette"
	"github.com/matzehuels/boogie/pkg/random"
	"github.com/matzehuels/boogie/pkg/scene"
)

// Dot attaches one grid-aligned decoration to large, unoccupied rects.
type Dot struct {
	cfg  DotConfig
	grid float64
}

// NewDot returns the rule for cfg snapping decorations to grid.
func NewDot(cfg DotConfig, grid float64) *Dot {
	return &Dot{cfg: cfg, grid: grid}
}

func (*Dot) Name() string { return NameDot }

// Padding is the inset from every parent edge that decorations keep clear.
func (d *Dot) Padding() float64 { return d.grid * d.cfg.PaddingUnits }

func (d *Dot) Apply(doc *scene.Document, env *Env) Report {
	rep := Report{Rule: d.Name()}
	if doc == nil {
		return rep
	}
	logger := env.logger()
	minSide := d.grid * d.cfg.MinUnits

	for i, s := range doc.Shapes {
		if !s.IsRect() {
			continue
		}
		b, ok := s.Bounds()
		if !ok || s.Width < minSide || s.Height < minSide || !palette.IsPaintable(s.Fill) {
			continue
		}
		if env.Rand.Float() >= d.cfg.Probability {
			continue
		}
		if d.occupied(doc.Shapes, i, b) {
			logger.Debug("host occupied", "shape", i)
			continue
		}

		dec, ok := d.place(s, env.Rand)
		if !ok {
			rep.Skipped++
			continue
		}
		s.Decorations = append(s.Decorations, dec)
		rep.Decorated++
		logger.Debug("decorate", "shape", i, "x", dec.X, "y", dec.Y, "w", dec.W, "h", dec.H, "fill", dec.Fill)
	}
	return rep
}

// occupied reports whether a small rect overlaps the host. Rects larger
// than OccupantMax on both sides are structural and do not count.
func (d *Dot) occupied(shapes []*scene.Shape, host int, b geom.Bounds) bool {
	for j, o := range shapes {
		if j == host || !o.IsRect() {
			continue
		}
		if o.Width > d.cfg.OccupantMax && o.Height > d.cfg.OccupantMax {
			continue
		}
		ob, ok := o.Bounds()
		if ok && geom.RectsOverlap(b, ob) {
			return true
		}
	}
	return false
}

// place sizes, positions and colors a decoration inside s. Coordinates are
// relative to the parent origin.
func (d *Dot) place(s *scene.Shape, r *random.Source) (scene.Decoration, bool) {
	pad := d.Padding()
	safeW := s.Width - 2*pad
	safeH := s.Height - 2*pad
	if safeW < d.grid || safeH < d.grid {
		return scene.Decoration{}, false
	}

	w := d.snap(s.Width*r.Range(d.cfg.SizeMin, d.cfg.SizeMax), safeW)
	h := d.snap(s.Height*r.Range(d.cfg.SizeMin, d.cfg.SizeMax), safeH)
	if w > safeW || h > safeH {
		return scene.Decoration{}, false
	}

	stepsX := int(math.Floor((safeW - w) / d.grid))
	stepsY := int(math.Floor((safeH - h) / d.grid))
	x := pad + float64(r.IntN(stepsX+1))*d.grid
	y := pad + float64(r.IntN(stepsY+1))*d.grid

	fill, ok := d.pickColor(s.Fill, r)
	if !ok {
		return scene.Decoration{}, false
	}
	return scene.Decoration{X: x, Y: y, W: w, H: h, Fill: fill}, true
}

// snap rounds target to the grid and clamps it to [2 grid units, the
// largest grid multiple fitting in safe].
func (d *Dot) snap(target, safe float64) float64 {
	v := math.Round(target/d.grid) * d.grid
	hi := math.Floor(safe/d.grid) * d.grid
	return max(2*d.grid, min(v, hi))
}

func (d *Dot) pickColor(host string, r *random.Source) (string, bool) {
	color := d.cfg.Palette.Pick(r)
	for range d.cfg.MaxAttempts {
		if !d.clashes(color, host) {
			return color, true
		}
		color = d.cfg.Palette.Pick(r)
	}
	return color, !d.clashes(color, host)
}

func (d *Dot) clashes(color, host string) bool {
	if d.cfg.FamilyContrast {
		return !palette.AvoidSet(host).Disjoint(color)
	}
	return palette.SameHex(color, host)
}

package rules

import (
	"bytes"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boogie/pkg/errors"
	"github.com/matzehuels/boogie/pkg/palette"
)

// Orientation is the axis a stripe runs along.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Config gathers every tunable of the rule set.
type Config struct {
	// Grid is the snapping unit shared by stripes and dots.
	Grid float64 `toml:"grid_unit"`
	// Rules lists the active rules in application order.
	Rules []string `toml:"rules"`

	ColorChange ColorChangeConfig `toml:"color_change"`
	Stripe      StripeConfig      `toml:"stripe"`
	Dot         DotConfig         `toml:"dot"`
}

// ColorChangeConfig tunes the recoloring rule.
type ColorChangeConfig struct {
	Probability float64         `toml:"probability"`
	Epsilon     float64         `toml:"adjacency_epsilon"`
	MaxAttempts int             `toml:"max_attempts"`
	Palette     palette.Palette `toml:"palette"`
}

// StripeConfig tunes the controlled stripe rule.
type StripeConfig struct {
	Probability   float64 `toml:"probability"`
	Tolerance     float64 `toml:"adjacency_tolerance"`
	MaxIterations int     `toml:"max_iterations"`
	// MinSegment is the shortest final segment kept.
	MinSegment float64 `toml:"min_segment"`
	// FinalUnits is the remainder, in grid units, emitted as one last
	// segment instead of being split further.
	FinalUnits int `toml:"final_units"`
	// Segment lengths are Grid * (base + n), n drawn from [0, Spread).
	HorizontalBase int `toml:"horizontal_base"`
	VerticalBase   int `toml:"vertical_base"`
	Spread         int `toml:"spread"`

	Palette       palette.Palette `toml:"palette"`
	ClipToDiamond bool            `toml:"clip_to_diamond"`
	Specs         []StripeSpec    `toml:"specs"`
}

// StripeSpec places one stripe. Start and End run along the stripe's
// axis; Pos and Thickness lie across it.
type StripeSpec struct {
	Orientation Orientation `toml:"orientation"`
	Start       float64     `toml:"start"`
	End         float64     `toml:"end"`
	Pos         Coord       `toml:"pos"`
	Thickness   Coord       `toml:"thickness"`
}

// DotConfig tunes the decoration rule.
type DotConfig struct {
	Probability float64 `toml:"probability"`
	// MinUnits is the smallest host side, in grid units.
	MinUnits float64 `toml:"min_units"`
	// PaddingUnits is the inset kept clear inside the host, in grid units.
	PaddingUnits float64 `toml:"padding_units"`
	SizeMin      float64 `toml:"size_min"`
	SizeMax      float64 `toml:"size_max"`
	// OccupantMax is the side above which an overlapping rect counts as
	// background rather than occupying the host.
	OccupantMax float64 `toml:"occupant_max"`
	MaxAttempts int     `toml:"max_attempts"`
	// FamilyContrast compares decoration and host by color family
	// instead of exact hex.
	FamilyContrast bool            `toml:"family_contrast"`
	Palette        palette.Palette `toml:"palette"`
}

// DefaultConfig returns the configuration of the victory preset.
func DefaultConfig() *Config {
	return &Config{
		Grid:  10,
		Rules: []string{NameColorChange, NameStripe, NameDot},
		ColorChange: ColorChangeConfig{
			Probability: 0.15,
			Epsilon:     3,
			MaxAttempts: 20,
			Palette:     slices.Clone(palette.InkTan),
		},
		Stripe: StripeConfig{
			Probability:    0.3,
			Tolerance:      30,
			MaxIterations:  100,
			MinSegment:     5,
			FinalUnits:     4,
			HorizontalBase: 2,
			VerticalBase:   3,
			Spread:         4,
			Palette:        slices.Clone(palette.StripeWeighted),
			Specs:          DefaultStripes(),
		},
		Dot: DotConfig{
			Probability:  0.23,
			MinUnits:     4,
			PaddingUnits: 3.3,
			SizeMin:      0.3,
			SizeMax:      0.9,
			OccupantMax:  100,
			MaxAttempts:  10,
			Palette:      slices.Clone(palette.Dot),
		},
	}
}

// DefaultStripes returns the seven stripes of Victory Boogie Woogie.
// The fourth runs backwards and never produces segments; it is kept so the
// activation draws line up with the painting's table.
func DefaultStripes() []StripeSpec {
	return []StripeSpec{
		{Orientation: Horizontal, Start: 1515, End: 2303, Pos: Fixed(542), Thickness: Fixed(50)},
		{Orientation: Vertical, Start: 2213, End: 2567, Pos: Between(1810, 2050), Thickness: Between(45, 55)},
		{Orientation: Vertical, Start: 1111, End: 1578, Pos: Between(1776, 2023), Thickness: Between(61, 73)},
		{Orientation: Vertical, Start: 2158, End: 1578, Pos: Fixed(1776), Thickness: Fixed(61)},
		{Orientation: Vertical, Start: 861, End: 1027, Pos: Between(1776, 2023), Thickness: Between(61, 73)},
		{Orientation: Vertical, Start: 2468, End: 2567, Pos: Between(2344, 2567), Thickness: Between(50, 69)},
		{Orientation: Vertical, Start: 2622, End: 2829, Pos: Fixed(2516), Thickness: Fixed(69)},
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Rules = slices.Clone(c.Rules)
	out.ColorChange.Palette = slices.Clone(c.ColorChange.Palette)
	out.Stripe.Palette = slices.Clone(c.Stripe.Palette)
	out.Stripe.Specs = slices.Clone(c.Stripe.Specs)
	out.Dot.Palette = slices.Clone(c.Dot.Palette)
	return &out
}

// ParseConfig decodes TOML over the defaults, so a file only needs the
// keys it changes. The result is validated.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Stripe.Specs = nil
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	// A specs table replaces the defaults wholesale instead of merging
	// into them index by index.
	if !md.IsDefined("stripe", "specs") {
		cfg.Stripe.Specs = DefaultStripes()
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undec[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	return ParseConfig(data)
}

// Encode writes c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}

// Validate checks every section. Errors carry ErrCodeInvalidConfig.
func (c *Config) Validate() error {
	if err := errors.ValidatePositive("grid_unit", c.Grid); err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, name := range c.Rules {
		if _, ok := constructors[name]; !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown rule %q", name)
		}
		if seen[name] {
			return errors.New(errors.ErrCodeInvalidConfig, "rule %q listed twice", name)
		}
		seen[name] = true
	}

	cc := c.ColorChange
	if err := errors.ValidateProbability("color_change.probability", cc.Probability); err != nil {
		return err
	}
	if cc.Epsilon < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "color_change.adjacency_epsilon must not be negative")
	}
	if cc.MaxAttempts < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "color_change.max_attempts must be at least 1")
	}
	if err := validatePalette("color_change.palette", cc.Palette); err != nil {
		return err
	}

	if err := c.Stripe.validate(); err != nil {
		return err
	}

	d := c.Dot
	if err := errors.ValidateProbability("dot.probability", d.Probability); err != nil {
		return err
	}
	if d.MinUnits < 0 || d.PaddingUnits < 0 || d.OccupantMax < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dot sizes must not be negative")
	}
	if d.SizeMin <= 0 || d.SizeMax > 1 || d.SizeMin >= d.SizeMax {
		return errors.New(errors.ErrCodeInvalidConfig, "dot size range must satisfy 0 < size_min < size_max <= 1")
	}
	if d.MaxAttempts < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dot.max_attempts must not be negative")
	}
	return validatePalette("dot.palette", d.Palette)
}

func (s StripeConfig) validate() error {
	if err := errors.ValidateProbability("stripe.probability", s.Probability); err != nil {
		return err
	}
	if s.Tolerance < 0 || s.MinSegment < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "stripe tolerances must not be negative")
	}
	if s.MaxIterations < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "stripe.max_iterations must be at least 1")
	}
	if s.HorizontalBase < 1 || s.VerticalBase < 1 || s.Spread < 1 || s.FinalUnits < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "stripe segment units must be positive")
	}
	if err := validatePalette("stripe.palette", s.Palette); err != nil {
		return err
	}
	for i, spec := range s.Specs {
		if spec.Orientation != Horizontal && spec.Orientation != Vertical {
			return errors.New(errors.ErrCodeInvalidConfig, "stripe.specs[%d]: unknown orientation %q", i, spec.Orientation)
		}
		for _, c := range []Coord{spec.Pos, spec.Thickness} {
			if c.IsRange() && c.Min >= c.Max {
				return errors.New(errors.ErrCodeInvalidConfig, "stripe.specs[%d]: empty range %s", i, c)
			}
		}
	}
	return nil
}

func validatePalette(name string, p palette.Palette) error {
	if len(p) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s is empty", name)
	}
	for _, c := range p {
		if err := errors.ValidateHexColor(name, c); err != nil {
			return err
		}
	}
	return nil
}

package rules

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/boogie/pkg/random"
)

// Coord is a stripe coordinate: either a fixed value or a half-open range
// [Min, Max) from which an integer is drawn.
//
// In TOML a fixed coordinate is a number and a range is a two-element
// array:
//
//	pos = 542
//	thickness = [45, 55]
type Coord struct {
	Value   float64
	Min     float64
	Max     float64
	isRange bool
}

// Fixed returns a constant coordinate.
func Fixed(v float64) Coord { return Coord{Value: v} }

// Between returns a coordinate drawn from [lo, hi) and floored.
func Between(lo, hi float64) Coord { return Coord{Min: lo, Max: hi, isRange: true} }

// IsRange reports whether c is drawn at resolution time.
func (c Coord) IsRange() bool { return c.isRange }

// Resolve returns the concrete value of c. A range consumes one draw.
func (c Coord) Resolve(r *random.Source) float64 {
	if !c.isRange {
		return c.Value
	}
	return math.Floor(r.Range(c.Min, c.Max))
}

func (c Coord) String() string {
	if c.isRange {
		return fmt.Sprintf("[%g, %g)", c.Min, c.Max)
	}
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (c *Coord) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64:
		*c = Fixed(float64(x))
	case float64:
		*c = Fixed(x)
	case []any:
		if len(x) != 2 {
			return fmt.Errorf("coordinate range needs two values, got %d", len(x))
		}
		lo, err := number(x[0])
		if err != nil {
			return err
		}
		hi, err := number(x[1])
		if err != nil {
			return err
		}
		*c = Between(lo, hi)
	default:
		return fmt.Errorf("coordinate must be a number or [min, max], got %T", v)
	}
	return nil
}

// MarshalTOML implements toml.Marshaler.
func (c Coord) MarshalTOML() ([]byte, error) {
	if c.isRange {
		return fmt.Appendf(nil, "[%s, %s]", formatNumber(c.Min), formatNumber(c.Max)), nil
	}
	return []byte(formatNumber(c.Value)), nil
}

func number(v any) (float64, error) {
	switch x := v.(type) {
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	}
	return 0, fmt.Errorf("coordinate bound must be a number, got %T", v)
}

// formatNumber writes integral values without a fractional part so that
// encoded configs read like hand-written ones.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

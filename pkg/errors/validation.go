package errors

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ValidateProbability checks that p is a finite value in [0, 1].
func ValidateProbability(name string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return New(ErrCodeInvalidConfig, "%s must be within [0, 1], got %v", name, p)
	}
	return nil
}

// ValidatePositive checks that v is finite and strictly positive.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateHexColor checks that c is a #RRGGBB or #RGB color.
func ValidateHexColor(name, c string) error {
	if _, err := colorful.Hex(c); err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "%s: invalid color %q", name, c)
	}
	return nil
}

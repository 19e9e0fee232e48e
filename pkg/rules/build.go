package rules

import (
	"github.com/matzehuels/boogie/pkg/errors"
)

var constructors = map[string]func(*Config) Rule{
	NameColorChange: func(c *Config) Rule { return NewColorChange(c.ColorChange) },
	NameStripe:      func(c *Config) Rule { return NewStripe(c.Stripe, c.Grid) },
	NameDot:         func(c *Config) Rule { return NewDot(c.Dot, c.Grid) },
}

// RuleNames returns every accepted rule name in default order.
func RuleNames() []string {
	return []string{NameColorChange, NameStripe, NameDot}
}

// Build validates cfg and instantiates its active rules in order.
func Build(cfg *Config) ([]Rule, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rules := make([]Rule, 0, len(cfg.Rules))
	for _, name := range cfg.Rules {
		rules = append(rules, constructors[name](cfg))
	}
	return rules, nil
}

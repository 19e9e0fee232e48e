// Package pipeline runs the augmentation rules over a scene document.
//
// This package implements the sort → rules → cache flow shared by the CLI
// and the HTTP server, so both entry points produce identical documents
// for identical inputs.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Augment(ctx, doc, pipeline.Options{
//	    Seed:   7,
//	    Preset: "victory",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	scene.WriteJSON(os.Stdout, result.Document)
//
// Apply the rules without caching:
//
//	rs, _ := rules.Build(cfg)
//	reports, err := pipeline.Apply(ctx, doc, rs, rules.NewEnv(seed, logger))
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boogie/pkg/errors"
	"github.com/matzehuels/boogie/pkg/observability"
	"github.com/matzehuels/boogie/pkg/rules"
	"github.com/matzehuels/boogie/pkg/scene"
)

// DefaultSeed is the default random seed for reproducibility.
const DefaultSeed = uint64(42)

// CustomPreset labels runs whose configuration was supplied directly.
const CustomPreset = "custom"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one augmentation run.
type Options struct {
	// Seed 0 means DefaultSeed unless SeedSet is true.
	Seed    uint64 `json:"seed,omitempty"`
	SeedSet bool   `json:"seedSet,omitempty"`
	Preset  string `json:"preset,omitempty"`
	// Sort applies paint order (backgrounds first, then by area) before
	// the rules run.
	Sort bool `json:"sort,omitempty"`
	// Refresh ignores a cached result and recomputes it.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Config *rules.Config `json:"-"` // overrides Preset when set
	Logger *log.Logger   `json:"-"`

	validated bool
}

// ValidateAndSetDefaults resolves the preset and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Seed == 0 && !o.SeedSet {
		o.Seed = DefaultSeed
	}
	if o.Config == nil {
		if o.Preset == "" {
			o.Preset = rules.DefaultPreset
		}
		cfg, err := rules.Preset(o.Preset)
		if err != nil {
			return err
		}
		o.Config = cfg
	} else {
		if o.Preset == "" {
			o.Preset = CustomPreset
		}
		if err := o.Config.Validate(); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the augmented copy of the input.
	Document *scene.Document

	// InputHash is the content hash of the input document.
	InputHash string

	// Preset names the configuration used.
	Preset string

	// Seed is the effective random seed.
	Seed uint64

	// Reports holds one entry per applied rule, in order.
	Reports []rules.Report

	// Stats contains counts and timing.
	Stats Stats

	// CacheHit reports whether Document came from the cache.
	CacheHit bool

	// RunID identifies this run in logs and responses.
	RunID string
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Before   scene.Summary `json:"before"`
	After    scene.Summary `json:"after"`
	Draws    int           `json:"draws"`
	Duration time.Duration `json:"duration"`
}

// Apply runs rs over doc in order, mutating it in place. It stops between
// rules when ctx is done.
func Apply(ctx context.Context, doc *scene.Document, rs []rules.Rule, env *rules.Env) ([]rules.Report, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "document is nil")
	}
	reports := make([]rules.Report, 0, len(rs))
	for _, r := range rs {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		start := time.Now()
		draws := env.Rand.Draws()

		rep := r.Apply(doc, env)
		rep.Duration = time.Since(start)
		rep.Draws = env.Rand.Draws() - draws

		if env.Logger != nil {
			env.Logger.Info("applied rule",
				"rule", rep.Rule,
				"recolored", rep.Recolored,
				"added", rep.Added,
				"decorated", rep.Decorated,
				"skipped", rep.Skipped,
				"duration", rep.Duration)
		}
		observability.Pipeline().OnRuleComplete(ctx, rep.Rule, rep.Recolored+rep.Added+rep.Decorated, rep.Duration)
		reports = append(reports, rep)
	}
	return reports, nil
}

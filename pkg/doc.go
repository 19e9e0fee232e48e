// Package pkg provides the core libraries for boogie scene augmentation.
//
// # Overview
//
// Boogie takes a flat Mondrian-style scene (rectangles, paths and circles
// with fills) and applies a sequence of seeded generative rules to it. The
// pkg directory is organized into three areas:
//
//  1. Domain: [scene], [geom], [palette], [random] and [rules]
//  2. Infrastructure: [cache], [errors], [observability] and [buildinfo]
//  3. Orchestration: [pipeline]
//
// # Architecture
//
// The data flow through a run:
//
//	scene JSON
//	     ↓
//	[scene] package (decode, clone, optional paint-order sort)
//	     ↓
//	[rules] package (color change → controlled stripes → dots)
//	     ↓
//	augmented scene JSON
//
// [pipeline] wraps the fold with caching, hooks and per-rule reports. Every
// rule draws from one [random.Source]; equal input, seed and configuration
// always produce byte-identical output.
//
// # Quick Start
//
//	import (
//	    "context"
//
//	    "github.com/matzehuels/boogie/pkg/pipeline"
//	    "github.com/matzehuels/boogie/pkg/scene"
//	)
//
//	doc, err := scene.ReadFile("scene.json")
//	if err != nil {
//	    return err
//	}
//	res, err := pipeline.NewRunner(nil, nil, nil).Augment(ctx, doc, pipeline.Options{
//	    Seed:   7,
//	    Preset: "victory",
//	})
//	if err != nil {
//	    return err
//	}
//	return scene.WriteFile("out.json", res.Document)
//
// # Configuration
//
// Rule parameters live in [rules.Config] and round-trip through TOML. The
// built-in presets are starting points:
//
//	cfg, _ := rules.Preset("classic")
//	cfg.Dot.Probability = 0.5
//	data, _ := cfg.Encode()
//
// [scene]: https://pkg.go.dev/github.com/matzehuels/boogie/pkg/scene
// [geom]: https://pkg.go.dev/github.com/matzehuels/boogie/pkg/geom
// [palette]: https://pkg.go.dev/github.com/matzehuels/boogie/pkg/palette
// [random]: https://pkg.go.dev/github.com/matzehuels/boogie/pkg/random
// [random.Source]: https://pkg.go.dev/github.com/matzehuels/boogie/pkg/random#Source
// [rules]: https://pkg.go.dev/github.com/matzehuels/boogie/pkg/rules
// [rules.Config]: https://pkg.go.dev/github.com/matzehuels/boogie/pkg/rules#Config
// [cache]: https://pkg.go.dev/github.com/matzehuels/boogie/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/boogie/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/boogie/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/boogie/pkg/buildinfo
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/boogie/pkg/pipeline
package pkg

// Package rules holds the augmentation rules applied to a scene document.
//
// A [Rule] mutates the document in place using a shared deterministic
// random source. Rules are applied in a fixed order by the pipeline; the
// default order is color change, controlled stripes, then dots, so that
// stripes see recolored neighbors and dots see the stripes.
//
// Every tunable lives in [Config], which loads from TOML and ships as
// named presets:
//
//	cfg, err := rules.Preset("victory")
//	rs, err := rules.Build(cfg)
//	for _, r := range rs {
//	    report := r.Apply(doc, env)
//	}
//
// Rules never fail. Shapes with missing geometry or unset fills are skipped,
// and a rule that cannot find an acceptable color leaves the shape as is.
package rules

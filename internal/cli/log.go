package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boogie/pkg/pipeline"
)

// newLogger creates the CLI logger. Timestamps look like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logRun logs a finished run with the wall time since start, then one
// debug line per rule.
func logRun(l *log.Logger, name string, res *pipeline.Result, start time.Time) {
	l.Info("augmented "+name,
		"preset", res.Preset,
		"seed", res.Seed,
		"cached", res.CacheHit,
		"elapsed", time.Since(start).Round(time.Millisecond))
	for _, r := range res.Reports {
		l.Debug("rule",
			"name", r.Rule,
			"recolored", r.Recolored,
			"added", r.Added,
			"decorated", r.Decorated,
			"skipped", r.Skipped,
			"draws", r.Draws)
	}
}

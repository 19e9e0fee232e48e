package rules

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boogie/pkg/random"
	"github.com/matzehuels/boogie/pkg/scene"
)

// Rule names accepted in Config.Rules.
const (
	NameColorChange = "color-change"
	NameStripe      = "controlled-stripe"
	NameDot         = "dot"
)

// Rule is one augmentation pass over a document.
type Rule interface {
	Name() string
	// Apply mutates doc and reports what it did. It draws every random
	// value from env.Rand so that a fixed seed reproduces the result.
	Apply(doc *scene.Document, env *Env) Report
}

// Env is the per-run state shared by the rules of one pipeline.
type Env struct {
	Rand   *random.Source
	Logger *log.Logger
}

// NewEnv returns an Env seeded with seed. A nil logger discards output.
func NewEnv(seed uint64, logger *log.Logger) *Env {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Env{Rand: random.New(seed), Logger: logger}
}

func (e *Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// Report summarizes one rule application.
type Report struct {
	Rule      string        `json:"rule"`
	Recolored int           `json:"recolored,omitempty"`
	Added     int           `json:"added,omitempty"`
	Decorated int           `json:"decorated,omitempty"`
	Skipped   int           `json:"skipped,omitempty"`
	Draws     int           `json:"draws"`
	Duration  time.Duration `json:"duration"`
}

// Changed reports whether the rule touched the document.
func (r Report) Changed() bool {
	return r.Recolored > 0 || r.Added > 0 || r.Decorated > 0
}

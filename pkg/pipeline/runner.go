package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/boogie/pkg/cache"
	"github.com/matzehuels/boogie/pkg/errors"
	"github.com/matzehuels/boogie/pkg/observability"
	"github.com/matzehuels/boogie/pkg/rules"
	"github.com/matzehuels/boogie/pkg/scene"
)

const keyTypeScene = "scene"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner holds no per-run state. Multiple goroutines can safely use
// the same Runner with different documents and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long stored results stay valid. Zero means cache.TTLScene.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedRun is the stored form of a result.
type cachedRun struct {
	Document *scene.Document `json:"document"`
	Reports  []rules.Report  `json:"reports"`
	Draws    int             `json:"draws"`
}

// Augment applies the configured rules to a copy of doc. The input is never
// mutated. Results are cached by input content, seed, configuration and
// sort flag.
func (r *Runner) Augment(ctx context.Context, doc *scene.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "document is nil")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	fp, err := scene.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "encode input")
	}
	cfgData, err := opts.Config.Encode()
	if err != nil {
		return nil, err
	}

	result := &Result{
		InputHash: cache.Hash(fp),
		Preset:    opts.Preset,
		Seed:      opts.Seed,
		RunID:     uuid.NewString(),
	}
	result.Stats.Before = scene.Summarize(doc)
	cacheKey := r.Keyer.SceneKey(result.InputHash, cache.SceneKeyOpts{
		Seed:       opts.Seed,
		ConfigHash: cache.Hash(cfgData),
		Sorted:     opts.Sort,
	})

	if !opts.Refresh {
		if run, ok := r.lookup(ctx, cacheKey); ok {
			result.Document = run.Document
			result.Reports = run.Reports
			result.CacheHit = true
			result.Stats.Draws = run.Draws
			result.Stats.After = scene.Summarize(run.Document)
			logger.Debug("cache hit", "run", result.RunID, "input", result.InputHash[:12])
			return result, nil
		}
	}

	start := time.Now()
	observability.Pipeline().OnAugmentStart(ctx, opts.Preset, opts.Seed, len(doc.Shapes))
	work, reports, draws, err := r.run(ctx, doc, opts)
	result.Stats.Duration = time.Since(start)
	observability.Pipeline().OnAugmentComplete(ctx, opts.Preset, len(work.Shapes), result.Stats.Duration, err)
	if err != nil {
		return nil, err
	}

	result.Document = work
	result.Reports = reports
	result.Stats.Draws = draws
	result.Stats.After = scene.Summarize(work)

	logger.Info("augmented scene",
		"run", result.RunID,
		"preset", opts.Preset,
		"seed", opts.Seed,
		"shapes", fmt.Sprintf("%d→%d", result.Stats.Before.Total(), result.Stats.After.Total()),
		"decorations", result.Stats.After.Decorations,
		"duration", result.Stats.Duration)

	r.store(ctx, cacheKey, cachedRun{Document: work, Reports: reports, Draws: draws})
	return result, nil
}

func (r *Runner) run(ctx context.Context, doc *scene.Document, opts Options) (*scene.Document, []rules.Report, int, error) {
	work := doc.Clone()
	if opts.Sort {
		scene.SortPaintOrder(work)
	}
	rs, err := rules.Build(opts.Config)
	if err != nil {
		return work, nil, 0, err
	}
	env := rules.NewEnv(opts.Seed, opts.Logger)
	reports, err := Apply(ctx, work, rs, env)
	return work, reports, env.Rand.Draws(), err
}

func (r *Runner) lookup(ctx context.Context, key string) (cachedRun, bool) {
	var run cachedRun
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeScene)
		return run, false
	}
	if err := json.Unmarshal(data, &run); err != nil || run.Document == nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeScene)
		return run, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeScene)
	return run, true
}

func (r *Runner) store(ctx context.Context, key string, run cachedRun) {
	data, err := json.Marshal(run)
	if err != nil {
		r.Logger.Warn("encode result for cache", "err", err)
		return
	}
	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.TTLScene
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeScene, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

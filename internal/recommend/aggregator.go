// Package recommend builds recommendation bundles from bounded pools supplied by the caller:
// matched, trending and new jobs plus hiring companies for a candidate, matched and active
// candidates for a job, and jobs similar to a reference job.
package recommend

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-matcher/internal/logging"
	"github.com/jonathan/talent-matcher/internal/ranking"
	"github.com/jonathan/talent-matcher/internal/taxonomy"
	"github.com/jonathan/talent-matcher/internal/types"
)

// Defaults for Aggregator options.
const (
	DefaultMatchThreshold = 30
	DefaultLimit          = 10
	DefaultMaxPoolSize    = 500
	DefaultWorkers        = 8
)

// Scorer scores one candidate against one job.
type Scorer interface {
	Score(ctx context.Context, candidate *types.CandidateSignal, job *types.JobSignal) (int, error)
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(ctx context.Context, candidate *types.CandidateSignal, job *types.JobSignal) (int, error)

// Score implements Scorer.
func (f ScorerFunc) Score(ctx context.Context, candidate *types.CandidateSignal, job *types.JobSignal) (int, error) {
	return f(ctx, candidate, job)
}

// EngineScorer scores directly with a ranking engine, without caching.
func EngineScorer(engine *ranking.Engine) Scorer {
	return ScorerFunc(func(_ context.Context, c *types.CandidateSignal, j *types.JobSignal) (int, error) {
		return engine.Score(c, j), nil
	})
}

// Aggregator builds recommendation bundles. It is safe for concurrent use.
type Aggregator struct {
	scorer      Scorer
	taxonomy    *taxonomy.Taxonomy
	logger      *zap.Logger
	now         func() time.Time
	threshold   int
	maxPoolSize int
	workers     int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the time source used for recency windows.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Aggregator) { a.logger = logging.OrNop(logger) }
}

// WithTaxonomy sets the taxonomy used to compare skill lists in similarity scoring.
func WithTaxonomy(tax *taxonomy.Taxonomy) Option {
	return func(a *Aggregator) {
		if tax != nil {
			a.taxonomy = tax
		}
	}
}

// WithThreshold sets the minimum score for the matched buckets.
func WithThreshold(threshold int) Option {
	return func(a *Aggregator) { a.threshold = threshold }
}

// WithMaxPoolSize caps how many pool entries are considered per call.
func WithMaxPoolSize(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxPoolSize = n
		}
	}
}

// WithWorkers sets how many pool entries are scored concurrently.
func WithWorkers(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.workers = n
		}
	}
}

// NewAggregator creates an Aggregator scoring with scorer.
func NewAggregator(scorer Scorer, opts ...Option) *Aggregator {
	a := &Aggregator{
		scorer:      scorer,
		taxonomy:    taxonomy.Default(),
		logger:      zap.NewNop(),
		now:         time.Now,
		threshold:   DefaultMatchThreshold,
		maxPoolSize: DefaultMaxPoolSize,
		workers:     DefaultWorkers,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// bound truncates a pool to the configured maximum.
func bound[T any](a *Aggregator, pool []T, what string) []T {
	if len(pool) <= a.maxPoolSize {
		return pool
	}
	a.logger.Debug("recommend: pool truncated",
		zap.String("pool", what),
		zap.Int("size", len(pool)),
		zap.Int("max", a.maxPoolSize))
	return pool[:a.maxPoolSize]
}

// scoreAll scores n pairs on a bounded worker group. The first error, including context
// cancellation, aborts the batch.
func (a *Aggregator) scoreAll(ctx context.Context, n int, pair func(i int) (*types.CandidateSignal, *types.JobSignal)) ([]int, error) {
	scores := make([]int, n)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range n {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			c, j := pair(i)
			s, err := a.scorer.Score(gCtx, c, j)
			if err != nil {
				return err
			}
			scores[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func capped[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

// postedWithin reports whether the job was posted no longer than d before now.
// Jobs without a creation time are never recent.
func postedWithin(job *types.JobSignal, now time.Time, d time.Duration) bool {
	if job.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(job.CreatedAt) <= d
}

// Package matcher is the entry point to the engine: it validates caller input, loads
// signals from a DataSource, and routes scoring, gap analysis, recommendations and resume
// extraction through the cache.
package matcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/cache"
	"github.com/jonathan/talent-matcher/internal/logging"
	"github.com/jonathan/talent-matcher/internal/parsing"
	"github.com/jonathan/talent-matcher/internal/ranking"
	"github.com/jonathan/talent-matcher/internal/recommend"
	"github.com/jonathan/talent-matcher/internal/skills"
	"github.com/jonathan/talent-matcher/internal/taxonomy"
	"github.com/jonathan/talent-matcher/internal/types"
)

// DefaultBundleSize is how many entries per bucket a cached bundle holds.
const DefaultBundleSize = 20

// Service exposes every engine operation. It is safe for concurrent use.
type Service struct {
	source     DataSource
	engine     *ranking.Engine
	gaps       *skills.Analyzer
	aggregator *recommend.Aggregator
	cache      *cache.Cache
	ttls       cache.TTLs
	logger     *zap.Logger
	now        func() time.Time

	taxonomy    *taxonomy.Taxonomy
	weights     ranking.Weights
	threshold   int
	maxPoolSize int
	workers     int
	bundleSize  int
	timeout     time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithTaxonomy sets the skill taxonomy.
func WithTaxonomy(tax *taxonomy.Taxonomy) Option {
	return func(s *Service) { s.taxonomy = tax }
}

// WithWeights sets the scoring weights.
func WithWeights(w ranking.Weights) Option {
	return func(s *Service) { s.weights = w }
}

// WithCache enables caching. Without it every call recomputes.
func WithCache(c *cache.Cache, ttls cache.TTLs) Option {
	return func(s *Service) {
		s.cache = c
		s.ttls = ttls
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logging.OrNop(logger) }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithThreshold sets the minimum score of matched bundle entries.
func WithThreshold(threshold int) Option {
	return func(s *Service) { s.threshold = threshold }
}

// WithPoolBounds caps pool sizes and scoring concurrency.
func WithPoolBounds(maxPoolSize, workers int) Option {
	return func(s *Service) {
		s.maxPoolSize = maxPoolSize
		s.workers = workers
	}
}

// WithBundleSize sets how many entries per bucket a bundle holds.
func WithBundleSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.bundleSize = n
		}
	}
}

// WithRequestTimeout bounds every bundle and similarity build. Zero disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// New creates a Service over source.
func New(source DataSource, opts ...Option) (*Service, error) {
	s := &Service{
		source:      source,
		ttls:        cache.DefaultTTLs(),
		logger:      zap.NewNop(),
		now:         time.Now,
		weights:     ranking.DefaultWeights(),
		threshold:   recommend.DefaultMatchThreshold,
		maxPoolSize: recommend.DefaultMaxPoolSize,
		workers:     recommend.DefaultWorkers,
		bundleSize:  DefaultBundleSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.weights.Validate(); err != nil {
		return nil, &InvalidInputError{Field: "weights", Message: "rejected", Cause: err}
	}
	if s.threshold < 0 || s.threshold > 100 {
		return nil, &InvalidInputError{Field: "threshold", Message: fmt.Sprintf("%d outside [0,100]", s.threshold)}
	}
	if s.taxonomy == nil {
		s.taxonomy = taxonomy.Default()
	}

	s.engine = ranking.NewEngine(s.taxonomy, s.weights)
	s.gaps = skills.NewAnalyzer(s.taxonomy)
	s.aggregator = recommend.NewAggregator(&cachedScorer{svc: s},
		recommend.WithTaxonomy(s.taxonomy),
		recommend.WithLogger(s.logger),
		recommend.WithClock(s.now),
		recommend.WithThreshold(s.threshold),
		recommend.WithMaxPoolSize(s.maxPoolSize),
		recommend.WithWorkers(s.workers),
	)
	return s, nil
}

// Engine returns the underlying scoring engine.
func (s *Service) Engine() *ranking.Engine {
	return s.engine
}

// Score scores caller-supplied signals. The result is never read from or written to the
// cache: only signals loaded from the DataSource are memoized.
func (s *Service) Score(_ context.Context, candidate *types.CandidateSignal, job *types.JobSignal) (int, error) {
	if err := validatePair(candidate, job); err != nil {
		return 0, err
	}
	return s.engine.Score(candidate, job), nil
}

// ScoreByID loads both signals and scores them.
func (s *Service) ScoreByID(ctx context.Context, candidateID, jobID string) (int, error) {
	candidate, job, err := s.loadPair(ctx, candidateID, jobID)
	if err != nil {
		return 0, err
	}
	return s.score(ctx, candidate, job)
}

// Explain returns the component sub-scores behind a match. It is never cached.
func (s *Service) Explain(candidate *types.CandidateSignal, job *types.JobSignal) (types.ScoreBreakdown, error) {
	if err := validatePair(candidate, job); err != nil {
		return types.ScoreBreakdown{}, err
	}
	return s.engine.Breakdown(candidate, job), nil
}

// ExplainByID loads both signals and explains their match.
func (s *Service) ExplainByID(ctx context.Context, candidateID, jobID string) (types.ScoreBreakdown, error) {
	candidate, job, err := s.loadPair(ctx, candidateID, jobID)
	if err != nil {
		return types.ScoreBreakdown{}, err
	}
	return s.engine.Breakdown(candidate, job), nil
}

// AnalyzeGap compares the candidate's skills with the job's requirements.
func (s *Service) AnalyzeGap(candidate *types.CandidateSignal, job *types.JobSignal) (types.GapReport, error) {
	if err := validatePair(candidate, job); err != nil {
		return types.GapReport{}, err
	}
	return s.gaps.AnalyzeGap(candidate, job), nil
}

// AnalyzeGapByID loads both signals and analyzes their skill gap.
func (s *Service) AnalyzeGapByID(ctx context.Context, candidateID, jobID string) (types.GapReport, error) {
	candidate, job, err := s.loadPair(ctx, candidateID, jobID)
	if err != nil {
		return types.GapReport{}, err
	}
	return s.gaps.AnalyzeGap(candidate, job), nil
}

// Extract parses plain or HTML resume text.
func (s *Service) Extract(text string) *types.ParsedResume {
	return parsing.Extract(text)
}

// AnalyzeQuality scores how complete a parsed resume is.
func (s *Service) AnalyzeQuality(parsed *types.ParsedResume) *types.QualityReport {
	return parsing.AnalyzeQuality(parsed)
}

// AnalyzeResume extracts a resume and scores it in one call.
func (s *Service) AnalyzeResume(text string) *types.ResumeAnalysis {
	analysis := parsing.Analyze(text)
	s.logger.Debug("resume analyzed",
		zap.Int("chars", len(text)),
		zap.Int("skills", len(analysis.Resume.Skills)),
		zap.Int("overall_score", analysis.Quality.OverallScore))
	return analysis
}

// InvalidateCandidate drops every cached score and bundle derived from the candidate.
func (s *Service) InvalidateCandidate(ctx context.Context, candidateID string) error {
	id, err := ParseID("candidate_id", candidateID)
	if err != nil {
		return err
	}
	s.cache.InvalidateTags(ctx, cache.CandidateTag(id))
	s.logger.Info("cache invalidated", zap.String("candidate_id", id.String()))
	return nil
}

// InvalidateJob drops every cached score, bundle and similarity list derived from the job.
func (s *Service) InvalidateJob(ctx context.Context, jobID string) error {
	id, err := ParseID("job_id", jobID)
	if err != nil {
		return err
	}
	s.cache.InvalidateTags(ctx, cache.JobTag(id))
	s.logger.Info("cache invalidated", zap.String("job_id", id.String()))
	return nil
}

// CacheStats returns the cache counters.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

func (s *Service) loadPair(ctx context.Context, candidateID, jobID string) (*types.CandidateSignal, *types.JobSignal, error) {
	cid, err := ParseID("candidate_id", candidateID)
	if err != nil {
		return nil, nil, err
	}
	jid, err := ParseID("job_id", jobID)
	if err != nil {
		return nil, nil, err
	}

	candidate, err := s.source.CandidateSignal(ctx, cid)
	if err != nil {
		return nil, nil, fmt.Errorf("load candidate: %w", err)
	}
	job, err := s.source.JobSignal(ctx, jid)
	if err != nil {
		return nil, nil, fmt.Errorf("load job: %w", err)
	}
	return candidate, job, nil
}

func validatePair(candidate *types.CandidateSignal, job *types.JobSignal) error {
	if candidate == nil {
		return &InvalidInputError{Field: "candidate", Message: "missing"}
	}
	if job == nil {
		return &InvalidInputError{Field: "job", Message: "missing"}
	}
	if err := candidate.Validate(); err != nil {
		return &InvalidInputError{Field: "candidate", Message: "failed validation", Cause: err}
	}
	if err := job.Validate(); err != nil {
		return &InvalidInputError{Field: "job", Message: "failed validation", Cause: err}
	}
	return nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

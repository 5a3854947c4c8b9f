package matcher

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/cache"
	"github.com/jonathan/talent-matcher/internal/recommend"
	"github.com/jonathan/talent-matcher/internal/types"
)

// RecommendJobsFor returns the candidate-facing bundle, each bucket capped at limit.
// limit <= 0 returns the full cached bundle. A limit above the bundle size is built
// directly and not cached.
func (s *Service) RecommendJobsFor(ctx context.Context, candidateID string, limit int) (*types.JobBundle, error) {
	id, err := ParseID("candidate_id", candidateID)
	if err != nil {
		return nil, err
	}

	var bundle *types.JobBundle
	if limit > s.bundleSize {
		bundle, err = s.buildJobBundle(ctx, id, limit)
	} else {
		bundle, err = cache.GetOrCompute(ctx, s.cache, cache.CandidateBundleKey(id), s.ttls.Bundle,
			[]string{cache.CandidateTag(id)},
			func(ctx context.Context) (*types.JobBundle, error) {
				return s.buildJobBundle(ctx, id, s.bundleSize)
			})
	}
	if err != nil {
		s.logger.Warn("recommend jobs failed", zap.String("candidate_id", id.String()), zap.Error(err))
		return nil, err
	}
	return trimJobBundle(bundle, limit), nil
}

func (s *Service) buildJobBundle(ctx context.Context, id uuid.UUID, size int) (*types.JobBundle, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	candidate, err := s.source.CandidateSignal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load candidate: %w", err)
	}
	jobs, err := s.source.ActiveJobs(ctx, JobFilter{Limit: s.maxPoolSize})
	if err != nil {
		return nil, fmt.Errorf("load job pool: %w", err)
	}
	applied, err := s.source.AppliedJobIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load applied jobs: %w", err)
	}
	saved, err := s.source.SavedJobIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load saved jobs: %w", err)
	}

	return s.aggregator.RecommendJobs(ctx, candidate, recommend.JobPool{
		Jobs:       jobs,
		AppliedIDs: applied,
		SavedIDs:   saved,
	}, size)
}

// RecommendCandidatesFor returns the employer-facing bundle, each bucket capped at limit.
// limit <= 0 returns the full cached bundle. A limit above the bundle size is built
// directly and not cached.
func (s *Service) RecommendCandidatesFor(ctx context.Context, jobID string, limit int) (*types.CandidateBundle, error) {
	id, err := ParseID("job_id", jobID)
	if err != nil {
		return nil, err
	}

	var bundle *types.CandidateBundle
	if limit > s.bundleSize {
		bundle, err = s.buildCandidateBundle(ctx, id, limit)
	} else {
		bundle, err = cache.GetOrCompute(ctx, s.cache, cache.JobBundleKey(id), s.ttls.Bundle,
			[]string{cache.JobTag(id)},
			func(ctx context.Context) (*types.CandidateBundle, error) {
				return s.buildCandidateBundle(ctx, id, s.bundleSize)
			})
	}
	if err != nil {
		s.logger.Warn("recommend candidates failed", zap.String("job_id", id.String()), zap.Error(err))
		return nil, err
	}
	return trimCandidateBundle(bundle, limit), nil
}

func (s *Service) buildCandidateBundle(ctx context.Context, id uuid.UUID, size int) (*types.CandidateBundle, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	job, err := s.source.JobSignal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}
	candidates, err := s.source.Candidates(ctx, CandidateFilter{Limit: s.maxPoolSize})
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}
	applicants, err := s.source.ApplicantIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load applicants: %w", err)
	}

	return s.aggregator.RecommendCandidates(ctx, job, recommend.CandidatePool{
		Candidates:   candidates,
		ApplicantIDs: applicants,
	}, size)
}

// SimilarJobs ranks active jobs by similarity to the job, capped at limit. A limit above
// the bundle size is computed directly and not cached.
func (s *Service) SimilarJobs(ctx context.Context, jobID string, limit int) ([]types.SimilarJob, error) {
	id, err := ParseID("job_id", jobID)
	if err != nil {
		return nil, err
	}

	if limit > s.bundleSize {
		return s.buildSimilar(ctx, id, limit)
	}
	similar, err := cache.GetOrCompute(ctx, s.cache, cache.SimilarKey(id), s.ttls.Similar,
		[]string{cache.JobTag(id)},
		func(ctx context.Context) ([]types.SimilarJob, error) {
			return s.buildSimilar(ctx, id, s.bundleSize)
		})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}

func (s *Service) buildSimilar(ctx context.Context, id uuid.UUID, size int) ([]types.SimilarJob, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	job, err := s.source.JobSignal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}
	pool, err := s.source.ActiveJobs(ctx, JobFilter{Limit: s.maxPoolSize})
	if err != nil {
		return nil, fmt.Errorf("load job pool: %w", err)
	}
	return s.aggregator.Similar(job, pool, size), nil
}

func trimJobBundle(b *types.JobBundle, limit int) *types.JobBundle {
	if limit <= 0 {
		return b
	}
	out := *b
	out.Matched = head(b.Matched, limit)
	out.Trending = head(b.Trending, limit)
	out.NewJobs = head(b.NewJobs, limit)
	out.CompaniesHiring = head(b.CompaniesHiring, limit)
	return &out
}

func trimCandidateBundle(b *types.CandidateBundle, limit int) *types.CandidateBundle {
	if limit <= 0 {
		return b
	}
	out := *b
	out.Matched = head(b.Matched, limit)
	out.ActiveSeekers = head(b.ActiveSeekers, limit)
	out.RecentApplicants = head(b.RecentApplicants, limit)
	return &out
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

package matcher

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/talent-matcher/internal/cache"
	"github.com/jonathan/talent-matcher/internal/types"
)

// cachedScorer memoizes scores per candidate/job pair. Pairs without ids are scored directly.
type cachedScorer struct {
	svc *Service
}

func (c *cachedScorer) Score(ctx context.Context, candidate *types.CandidateSignal, job *types.JobSignal) (int, error) {
	return c.svc.score(ctx, candidate, job)
}

func (s *Service) score(ctx context.Context, candidate *types.CandidateSignal, job *types.JobSignal) (int, error) {
	if candidate.ID == uuid.Nil || job.ID == uuid.Nil {
		return s.engine.Score(candidate, job), nil
	}

	tags := []string{cache.CandidateTag(candidate.ID), cache.JobTag(job.ID)}
	entry, err := cache.GetOrCompute(ctx, s.cache, cache.ScoreKey(candidate.ID, job.ID), s.ttls.Score, tags,
		func(context.Context) (types.MatchScore, error) {
			return types.MatchScore{
				CandidateID: candidate.ID,
				JobID:       job.ID,
				Value:       s.engine.Score(candidate, job),
				ComputedAt:  s.now(),
			}, nil
		})
	if err != nil {
		return 0, err
	}
	return entry.Value, nil
}

package recommend

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Recency windows for employer-facing buckets.
const (
	ActiveSeekerWindow    = 7 * 24 * time.Hour
	RecentApplicantWindow = 30 * 24 * time.Hour
)

// CandidatePool is the bounded set of candidates considered for one job.
type CandidatePool struct {
	Candidates   []types.CandidateSignal
	ApplicantIDs []uuid.UUID
}

// RecommendCandidates builds the employer-facing bundle. Every bucket is capped at limit.
func (a *Aggregator) RecommendCandidates(ctx context.Context, job *types.JobSignal, pool CandidatePool, limit int) (*types.CandidateBundle, error) {
	if job == nil {
		return nil, fmt.Errorf("recommend candidates: nil job")
	}
	limit = normalizeLimit(limit)
	now := a.now()
	candidates := bound(a, pool.Candidates, "candidates")

	matched, err := a.matchedCandidates(ctx, job, candidates)
	if err != nil {
		return nil, fmt.Errorf("recommend candidates for %s: %w", job.ID, err)
	}

	bundle := &types.CandidateBundle{
		JobID:            job.ID,
		Matched:          capped(matched, limit),
		ActiveSeekers:    capped(activeSeekers(job, candidates, now), limit),
		RecentApplicants: capped(recentApplicants(job, candidates, idSet(pool.ApplicantIDs), now), limit),
		GeneratedAt:      now,
	}

	a.logger.Debug("recommend: candidate bundle built",
		zap.String("job_id", job.ID.String()),
		zap.Int("pool", len(candidates)),
		zap.Int("matched", len(bundle.Matched)),
		zap.Int("active", len(bundle.ActiveSeekers)),
		zap.Int("applicants", len(bundle.RecentApplicants)))
	return bundle, nil
}

func (a *Aggregator) matchedCandidates(ctx context.Context, job *types.JobSignal, candidates []types.CandidateSignal) ([]types.ScoredCandidate, error) {
	scores, err := a.scoreAll(ctx, len(candidates), func(i int) (*types.CandidateSignal, *types.JobSignal) {
		return &candidates[i], job
	})
	if err != nil {
		return nil, err
	}

	out := make([]types.ScoredCandidate, 0, len(candidates))
	for i := range candidates {
		if scores[i] < a.threshold {
			continue
		}
		out = append(out, types.ScoredCandidate{Candidate: candidates[i], Score: scores[i]})
	}
	slices.SortFunc(out, func(x, y types.ScoredCandidate) int {
		return compareRanked(x.Score, y.Score, lastActive(&x.Candidate), lastActive(&y.Candidate), x.Candidate.ID, y.Candidate.ID)
	})
	return out, nil
}

// activeSeekers lists candidates interested in the job's category who were active recently,
// most recently active first.
func activeSeekers(job *types.JobSignal, candidates []types.CandidateSignal, now time.Time) []types.CandidateSignal {
	out := make([]types.CandidateSignal, 0)
	if job.CategoryID == "" {
		return out
	}
	for i := range candidates {
		c := &candidates[i]
		if c.LastActiveAt == nil || now.Sub(*c.LastActiveAt) > ActiveSeekerWindow {
			continue
		}
		if !containsFold(c.PreferredCategories, job.CategoryID) {
			continue
		}
		out = append(out, *c)
	}
	slices.SortFunc(out, func(x, y types.CandidateSignal) int {
		return compareRanked(0, 0, lastActive(&x), lastActive(&y), x.ID, y.ID)
	})
	return out
}

// recentApplicants lists candidates who recently applied to other jobs in the same category
// and have not applied to this one, most recent application first.
func recentApplicants(job *types.JobSignal, candidates []types.CandidateSignal, applicants map[uuid.UUID]struct{}, now time.Time) []types.CandidateSignal {
	type applicant struct {
		candidate types.CandidateSignal
		latest    time.Time
	}

	if job.CategoryID == "" {
		return []types.CandidateSignal{}
	}

	found := make([]applicant, 0)
	for i := range candidates {
		c := &candidates[i]
		if _, already := applicants[c.ID]; already {
			continue
		}
		var latest time.Time
		appliedHere := false
		for _, app := range c.Applications {
			if app.JobID == job.ID {
				appliedHere = true
				break
			}
			if !sameFold(app.CategoryID, job.CategoryID) || now.Sub(app.AppliedAt) > RecentApplicantWindow {
				continue
			}
			if app.AppliedAt.After(latest) {
				latest = app.AppliedAt
			}
		}
		if !appliedHere && !latest.IsZero() {
			found = append(found, applicant{candidate: *c, latest: latest})
		}
	}

	slices.SortFunc(found, func(x, y applicant) int {
		return compareRanked(0, 0, x.latest, y.latest, x.candidate.ID, y.candidate.ID)
	})
	out := make([]types.CandidateSignal, len(found))
	for i, f := range found {
		out[i] = f.candidate
	}
	return out
}

func lastActive(c *types.CandidateSignal) time.Time {
	if c.LastActiveAt == nil {
		return time.Time{}
	}
	return *c.LastActiveAt
}

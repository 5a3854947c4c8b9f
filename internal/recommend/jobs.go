package recommend

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Recency windows and reason thresholds for candidate-facing buckets.
const (
	StrongMatchScore     = 80
	FewApplicantsCount   = 10
	RecentlyPostedWindow = 3 * 24 * time.Hour
	NewJobsWindow        = 3 * 24 * time.Hour
	TrendingWindow       = 14 * 24 * time.Hour
	HiringWindow         = 30 * 24 * time.Hour
)

// JobPool is the bounded set of active jobs considered for one candidate.
type JobPool struct {
	Jobs       []types.JobSignal
	AppliedIDs []uuid.UUID
	SavedIDs   []uuid.UUID
}

// RecommendJobs builds the candidate-facing bundle. Jobs the candidate already applied to are
// left out of the matched and trending buckets. Every bucket is capped at limit.
func (a *Aggregator) RecommendJobs(ctx context.Context, candidate *types.CandidateSignal, pool JobPool, limit int) (*types.JobBundle, error) {
	if candidate == nil {
		return nil, fmt.Errorf("recommend jobs: nil candidate")
	}
	limit = normalizeLimit(limit)
	now := a.now()
	jobs := bound(a, pool.Jobs, "jobs")
	applied := idSet(pool.AppliedIDs)

	matched, err := a.matchedJobs(ctx, candidate, jobs, applied, idSet(pool.SavedIDs), now)
	if err != nil {
		return nil, fmt.Errorf("recommend jobs for %s: %w", candidate.ID, err)
	}

	bundle := &types.JobBundle{
		CandidateID:     candidate.ID,
		Matched:         capped(matched, limit),
		Trending:        capped(trendingJobs(jobs, applied, now), limit),
		NewJobs:         capped(newJobs(candidate, jobs, now), limit),
		CompaniesHiring: capped(companiesHiring(jobs, now), limit),
		GeneratedAt:     now,
	}

	a.logger.Debug("recommend: job bundle built",
		zap.String("candidate_id", candidate.ID.String()),
		zap.Int("pool", len(jobs)),
		zap.Int("matched", len(bundle.Matched)),
		zap.Int("trending", len(bundle.Trending)),
		zap.Int("new", len(bundle.NewJobs)),
		zap.Int("companies", len(bundle.CompaniesHiring)))
	return bundle, nil
}

func (a *Aggregator) matchedJobs(ctx context.Context, candidate *types.CandidateSignal, jobs []types.JobSignal, applied, saved map[uuid.UUID]struct{}, now time.Time) ([]types.ScoredJob, error) {
	eligible := make([]*types.JobSignal, 0, len(jobs))
	for i := range jobs {
		if _, done := applied[jobs[i].ID]; !done {
			eligible = append(eligible, &jobs[i])
		}
	}

	scores, err := a.scoreAll(ctx, len(eligible), func(i int) (*types.CandidateSignal, *types.JobSignal) {
		return candidate, eligible[i]
	})
	if err != nil {
		return nil, err
	}

	out := make([]types.ScoredJob, 0, len(eligible))
	for i, job := range eligible {
		if scores[i] < a.threshold {
			continue
		}
		_, isSaved := saved[job.ID]
		out = append(out, types.ScoredJob{
			Job:     *job,
			Score:   scores[i],
			Reasons: matchReasons(job, scores[i], now),
			Saved:   isSaved,
		})
	}
	slices.SortFunc(out, func(x, y types.ScoredJob) int {
		return compareRanked(x.Score, y.Score, x.Job.CreatedAt, y.Job.CreatedAt, x.Job.ID, y.Job.ID)
	})
	return out, nil
}

// matchReasons explains a matched job in the fixed reason order.
func matchReasons(job *types.JobSignal, score int, now time.Time) []string {
	var reasons []string
	if score >= StrongMatchScore {
		reasons = append(reasons, types.ReasonStrongSkillMatch)
	}
	if job.RemoteFriendly() {
		reasons = append(reasons, types.ReasonRemoteFriendly)
	}
	if !job.CreatedAt.IsZero() && now.Sub(job.CreatedAt) < RecentlyPostedWindow {
		reasons = append(reasons, types.ReasonRecentlyPosted)
	}
	if job.ApplicationsCount < FewApplicantsCount {
		reasons = append(reasons, types.ReasonFewApplicants)
	}
	return reasons
}

// TrendingScore blends popularity and recency:
// 0.5*min(100, apps*5) + 0.3*min(100, views/10) + 0.2*max(0, 100-10*days).
func TrendingScore(job *types.JobSignal, now time.Time) float64 {
	apps := math.Min(100, float64(job.ApplicationsCount)*5)
	views := math.Min(100, float64(job.ViewsCount)/10)
	recency := math.Max(0, 100-10*float64(job.DaysOld(now)))
	return 0.5*apps + 0.3*views + 0.2*recency
}

func trendingJobs(jobs []types.JobSignal, applied map[uuid.UUID]struct{}, now time.Time) []types.TrendingJob {
	out := make([]types.TrendingJob, 0)
	for i := range jobs {
		job := &jobs[i]
		if _, done := applied[job.ID]; done || !postedWithin(job, now, TrendingWindow) {
			continue
		}
		out = append(out, types.TrendingJob{Job: *job, TrendingScore: TrendingScore(job, now)})
	}
	slices.SortFunc(out, func(x, y types.TrendingJob) int {
		return compareRanked(x.TrendingScore, y.TrendingScore, x.Job.CreatedAt, y.Job.CreatedAt, x.Job.ID, y.Job.ID)
	})
	return out
}

// newJobs lists recent postings, restricted to the candidate's preferred categories when
// the candidate has any.
func newJobs(candidate *types.CandidateSignal, jobs []types.JobSignal, now time.Time) []types.JobSignal {
	out := make([]types.JobSignal, 0)
	for i := range jobs {
		job := &jobs[i]
		if !postedWithin(job, now, NewJobsWindow) {
			continue
		}
		if len(candidate.PreferredCategories) > 0 && !containsFold(candidate.PreferredCategories, job.CategoryID) {
			continue
		}
		out = append(out, *job)
	}
	slices.SortFunc(out, func(x, y types.JobSignal) int {
		return compareRanked(0, 0, x.CreatedAt, y.CreatedAt, x.ID, y.ID)
	})
	return out
}

// companiesHiring ranks verified companies that posted within the hiring window by their
// active positions. Older active postings still count toward OpenPositions.
func companiesHiring(jobs []types.JobSignal, now time.Time) []types.CompanyHiring {
	byCompany := make(map[uuid.UUID]*types.CompanyHiring)
	recent := make(map[uuid.UUID]bool)
	for i := range jobs {
		job := &jobs[i]
		if !job.CompanyVerified || !job.IsActive || job.CompanyID == uuid.Nil {
			continue
		}
		entry, ok := byCompany[job.CompanyID]
		if !ok {
			entry = &types.CompanyHiring{CompanyID: job.CompanyID, CompanyName: job.CompanyName}
			byCompany[job.CompanyID] = entry
		}
		entry.OpenPositions++
		if job.CreatedAt.After(entry.LatestPostedAt) {
			entry.LatestPostedAt = job.CreatedAt
		}
		if entry.CompanyName == "" {
			entry.CompanyName = job.CompanyName
		}
		if postedWithin(job, now, HiringWindow) {
			recent[job.CompanyID] = true
		}
	}

	out := make([]types.CompanyHiring, 0, len(recent))
	for id, entry := range byCompany {
		if recent[id] {
			out = append(out, *entry)
		}
	}
	slices.SortFunc(out, func(x, y types.CompanyHiring) int {
		return compareRanked(x.OpenPositions, y.OpenPositions, x.LatestPostedAt, y.LatestPostedAt, x.CompanyID, y.CompanyID)
	})
	return out
}

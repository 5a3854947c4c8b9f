package recommend

import (
	"math"
	"slices"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Similarity signal points.
const (
	SimilarCategoryPoints  = 30
	SimilarLocationPoints  = 20
	SimilarJobTypePoints   = 15
	SimilarLevelPoints     = 15
	SimilarSalaryPoints    = 10
	SimilarSkillsMaxPoints = 10

	// similarSalaryTolerance is the relative salary-max difference still counted as similar.
	similarSalaryTolerance = 0.2
)

// Similar ranks pool jobs by similarity to job. The job itself and jobs sharing no signal
// are left out; the result is capped at limit.
func (a *Aggregator) Similar(job *types.JobSignal, pool []types.JobSignal, limit int) []types.SimilarJob {
	out := make([]types.SimilarJob, 0)
	if job == nil {
		return out
	}
	limit = normalizeLimit(limit)
	ref := a.skillSet(job)

	candidates := bound(a, pool, "similar")
	for i := range candidates {
		other := &candidates[i]
		if other.ID == job.ID {
			continue
		}
		score := a.similarity(job, ref, other)
		if score == 0 {
			continue
		}
		out = append(out, types.SimilarJob{Job: *other, SimilarityScore: score})
	}

	slices.SortFunc(out, func(x, y types.SimilarJob) int {
		return compareRanked(x.SimilarityScore, y.SimilarityScore, x.Job.CreatedAt, y.Job.CreatedAt, x.Job.ID, y.Job.ID)
	})
	return capped(out, limit)
}

// Similarity scores how alike two jobs are, in [0,100].
func (a *Aggregator) Similarity(job, other *types.JobSignal) int {
	return a.similarity(job, a.skillSet(job), other)
}

func (a *Aggregator) similarity(job *types.JobSignal, ref map[string]struct{}, other *types.JobSignal) int {
	score := 0
	if sameFold(job.CategoryID, other.CategoryID) {
		score += SimilarCategoryPoints
	}
	if sameFold(job.Location, other.Location) {
		score += SimilarLocationPoints
	}
	if sameFold(job.JobType, other.JobType) {
		score += SimilarJobTypePoints
	}
	if job.ExperienceLevel != "" && job.ExperienceLevel == other.ExperienceLevel {
		score += SimilarLevelPoints
	}
	if salaryClose(job.SalaryMax, other.SalaryMax) {
		score += SimilarSalaryPoints
	}
	score += int(math.Round(skillOverlap(ref, a.skillSet(other)) * SimilarSkillsMaxPoints))
	return min(score, 100)
}

// skillSet returns the canonical required and preferred skills of a job.
func (a *Aggregator) skillSet(job *types.JobSignal) map[string]struct{} {
	set := make(map[string]struct{}, len(job.RequiredSkills)+len(job.PreferredSkills))
	for _, list := range [][]string{job.RequiredSkills, job.PreferredSkills} {
		for _, s := range list {
			if c := a.taxonomy.Canonical(s); c != "" {
				set[c] = struct{}{}
			}
		}
	}
	return set
}

// skillOverlap is the share of the reference job's skills found in the other job.
func skillOverlap(ref, other map[string]struct{}) float64 {
	if len(ref) == 0 || len(other) == 0 {
		return 0
	}
	shared := 0
	for s := range ref {
		if _, ok := other[s]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(ref))
}

func salaryClose(a, b *float64) bool {
	if a == nil || b == nil || *a <= 0 || *b <= 0 {
		return false
	}
	return math.Abs(*a-*b) <= similarSalaryTolerance*(*a)
}

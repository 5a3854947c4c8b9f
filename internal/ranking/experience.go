package ranking

import (
	"math"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Experience penalties per year outside the band.
const (
	underQualifiedPenalty = 20
	overQualifiedPenalty  = 5
	overQualifiedFloor    = 50
)

type yearsBand struct {
	min, max int
}

// levelBands maps an advertised seniority to its expected years of experience.
var levelBands = map[types.ExperienceLevel]yearsBand{
	types.LevelEntry:     {0, 2},
	types.LevelJunior:    {1, 3},
	types.LevelMid:       {3, 5},
	types.LevelSenior:    {5, 10},
	types.LevelLead:      {7, 15},
	types.LevelExecutive: {10, 30},
}

// experienceBand resolves the job's years band from explicit bounds first and the level table second.
func experienceBand(job *types.JobSignal) (yearsBand, bool) {
	if job.MinExperience != nil || job.MaxExperience != nil {
		band := yearsBand{min: 0, max: math.MaxInt}
		if job.MinExperience != nil {
			band.min = *job.MinExperience
		}
		if job.MaxExperience != nil {
			band.max = *job.MaxExperience
		}
		return band, true
	}
	band, ok := levelBands[job.ExperienceLevel]
	return band, ok
}

// scoreExperience penalizes under-qualification far more than over-qualification.
func scoreExperience(candidate *types.CandidateSignal, job *types.JobSignal) int {
	band, ok := experienceBand(job)
	if !ok {
		return NeutralExperienceScore
	}

	years := candidate.ExperienceYears
	switch {
	case years < band.min:
		return max(0, 100-underQualifiedPenalty*(band.min-years))
	case years > band.max:
		return max(overQualifiedFloor, 100-overQualifiedPenalty*(years-band.max))
	default:
		return 100
	}
}

package ranking

import (
	"math"

	"github.com/jonathan/talent-matcher/internal/taxonomy"
	"github.com/jonathan/talent-matcher/internal/types"
)

// Points available to each side of the skills component.
const (
	requiredSkillsPoints  = 70.0
	preferredSkillsPoints = 30.0
)

// scoreSkills credits required skills up to 70 points and preferred skills up to 30.
// An empty list contributes nothing. A job listing neither returns the neutral default.
func scoreSkills(tax *taxonomy.Taxonomy, candidate *types.CandidateSignal, job *types.JobSignal) int {
	required := taxonomy.Normalize(job.RequiredSkills)
	preferred := taxonomy.Normalize(job.PreferredSkills)
	if len(required) == 0 && len(preferred) == 0 {
		return NeutralSkillsScore
	}
	have := taxonomy.Normalize(candidate.Skills.Names())

	score := requiredSkillsPoints*matchRatio(tax, required, have) +
		preferredSkillsPoints*matchRatio(tax, preferred, have)
	return clamp(int(math.Round(score)), 0, 100)
}

// matchRatio returns the fraction of wanted skills with an equivalent in have.
func matchRatio(tax *taxonomy.Taxonomy, wanted, have []string) float64 {
	if len(wanted) == 0 {
		return 0
	}
	matched := 0
	for _, w := range wanted {
		if _, ok := tax.MatchAny(w, have); ok {
			matched++
		}
	}
	return float64(matched) / float64(len(wanted))
}

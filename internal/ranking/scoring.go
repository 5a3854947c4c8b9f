// Package ranking computes the 0-100 compatibility score between one candidate and one job
// from six weighted components: skills, experience, education, location, job type and salary.
package ranking

import (
	"math"

	"github.com/jonathan/talent-matcher/internal/taxonomy"
	"github.com/jonathan/talent-matcher/internal/types"
)

// Neutral defaults returned when a component lacks the data to evaluate it.
const (
	NeutralSkillsScore     = 50
	NeutralExperienceScore = 70
	NeutralEducationScore  = 70
	NeutralJobTypeScore    = 70
	NeutralSalaryScore     = 70
)

// NoProfileScore is returned for a candidate without any profile data.
const NoProfileScore = 0

// Engine scores candidate/job pairs. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	taxonomy *taxonomy.Taxonomy
	weights  Weights
}

// NewEngine creates a scoring engine. A nil taxonomy selects taxonomy.Default().
func NewEngine(tax *taxonomy.Taxonomy, weights Weights) *Engine {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Engine{taxonomy: tax, weights: weights}
}

// NewDefaultEngine creates an engine with the built-in taxonomy and default weights.
func NewDefaultEngine() *Engine {
	return NewEngine(nil, DefaultWeights())
}

// Weights returns the component weights the engine was built with.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Score returns the weighted match score in [0,100].
func (e *Engine) Score(candidate *types.CandidateSignal, job *types.JobSignal) int {
	return e.Breakdown(candidate, job).Total
}

// Breakdown returns every component sub-score together with the weighted total.
func (e *Engine) Breakdown(candidate *types.CandidateSignal, job *types.JobSignal) types.ScoreBreakdown {
	if !candidate.HasProfile() || job == nil {
		return types.ScoreBreakdown{Total: NoProfileScore, NoProfile: true}
	}

	b := types.ScoreBreakdown{
		Skills:     scoreSkills(e.taxonomy, candidate, job),
		Experience: scoreExperience(candidate, job),
		Education:  scoreEducation(candidate, job),
		Location:   scoreLocation(candidate, job),
		JobType:    scoreJobType(candidate, job),
		Salary:     scoreSalary(candidate, job),
	}

	w := e.weights
	total := w.Skills*float64(b.Skills) +
		w.Experience*float64(b.Experience) +
		w.Education*float64(b.Education) +
		w.Location*float64(b.Location) +
		w.JobType*float64(b.JobType) +
		w.Salary*float64(b.Salary)

	b.Total = clamp(int(math.Round(total)), 0, 100)
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

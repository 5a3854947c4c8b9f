// Package skills compares a candidate's skills with a job's requirements and suggests
// what to learn next.
package skills

import (
	"math"
	"slices"

	"github.com/jonathan/talent-matcher/internal/taxonomy"
	"github.com/jonathan/talent-matcher/internal/types"
)

// Side weights of the overall match percentage.
const (
	requiredShare  = 0.7
	preferredShare = 0.3
)

// Analyzer produces gap reports. It is stateless and safe for concurrent use.
type Analyzer struct {
	taxonomy *taxonomy.Taxonomy
}

// NewAnalyzer creates an Analyzer. A nil taxonomy selects taxonomy.Default().
func NewAnalyzer(tax *taxonomy.Taxonomy) *Analyzer {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Analyzer{taxonomy: tax}
}

// AnalyzeGap reports which of the job's skills the candidate has and lacks.
// Job skills are compared as normalized sets, so every distinct required skill lands in
// exactly one of MatchedRequired and MissingRequired.
func (a *Analyzer) AnalyzeGap(candidate *types.CandidateSignal, job *types.JobSignal) types.GapReport {
	var have []string
	if candidate != nil {
		have = taxonomy.Normalize(candidate.Skills.Names())
	}
	var required, preferred []string
	if job != nil {
		required = taxonomy.Normalize(job.RequiredSkills)
		preferred = taxonomy.Normalize(job.PreferredSkills)
	}

	report := types.GapReport{
		MatchedRequired:         []string{},
		MissingRequired:         []string{},
		MatchedPreferred:        []string{},
		MissingPreferred:        []string{},
		ExtraSkills:             []string{},
		LearningRecommendations: []types.LearningRecommendation{},
	}

	report.MatchedRequired, report.MissingRequired = a.partition(required, have)
	report.MatchedPreferred, report.MissingPreferred = a.partition(preferred, have)

	wanted := append(slices.Clone(required), preferred...)
	for _, s := range have {
		if _, ok := a.taxonomy.MatchAny(s, wanted); !ok {
			report.ExtraSkills = append(report.ExtraSkills, s)
		}
	}

	report.RequiredMatchPct = matchPct(len(report.MatchedRequired), len(required))
	report.PreferredMatchPct = matchPct(len(report.MatchedPreferred), len(preferred))
	report.OverallMatchPct = round1(requiredShare*report.RequiredMatchPct + preferredShare*report.PreferredMatchPct)

	report.LearningRecommendations = a.recommend(report.MissingRequired, have)
	return report
}

// partition splits wanted into skills with an equivalent in have and skills without one.
func (a *Analyzer) partition(wanted, have []string) (matched, missing []string) {
	matched, missing = []string{}, []string{}
	for _, w := range wanted {
		if _, ok := a.taxonomy.MatchAny(w, have); ok {
			matched = append(matched, w)
		} else {
			missing = append(missing, w)
		}
	}
	return matched, missing
}

// matchPct treats an empty side as fully matched.
func matchPct(matched, total int) float64 {
	if total == 0 {
		return 100
	}
	return round1(float64(matched) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

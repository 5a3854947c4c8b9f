package skills

import (
	"cmp"
	"slices"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Estimated time buckets for learning a missing skill.
const (
	EstimateWeeks      = "2-4 weeks"
	EstimateMonths     = "1-3 months"
	EstimateManyMonths = "3-6 months"
)

const (
	maxRecommendations = 5
	maxBuildsOn        = 3
)

// complexSkills take the longest to pick up.
var complexSkills = map[string]bool{
	"machine learning":        true,
	"deep learning":           true,
	"artificial intelligence": true,
	"computer vision":         true,
	"nlp":                     true,
	"kubernetes":              true,
	"microservices":           true,
	"rust":                    true,
	"c++":                     true,
	"scala":                   true,
	"tensorflow":              true,
	"pytorch":                 true,
	"distributed systems":     true,
	"blockchain":              true,
	"cybersecurity":           true,
	"data science":            true,
}

// moderateSkills are full languages, frameworks and platforms.
var moderateSkills = map[string]bool{
	"javascript": true,
	"typescript": true,
	"python":     true,
	"java":       true,
	"go":         true,
	"c#":         true,
	"ruby":       true,
	"php":        true,
	"swift":      true,
	"kotlin":     true,
	"react":      true,
	"angular":    true,
	"vue":        true,
	"node.js":    true,
	"django":     true,
	"spring":     true,
	".net":       true,
	"rails":      true,
	"flutter":    true,
	"aws":        true,
	"azure":      true,
	"gcp":        true,
	"docker":     true,
	"terraform":  true,
	"sql":        true,
	"postgresql": true,
	"mongodb":    true,
	"graphql":    true,
	"spark":      true,
	"ui/ux":      true,
}

// EstimateLearningTime returns the coarse time bucket for learning skill.
func (a *Analyzer) EstimateLearningTime(skill string) string {
	canonical := a.taxonomy.Canonical(skill)
	switch {
	case complexSkills[canonical]:
		return EstimateManyMonths
	case moderateSkills[canonical]:
		return EstimateMonths
	default:
		return EstimateWeeks
	}
}

// buildsOn lists up to three skills the candidate already has that are conventionally
// paired with skill, in either direction of the complement table.
func (a *Analyzer) buildsOn(skill string, have []string) []string {
	var out []string
	add := func(s string) {
		if len(out) < maxBuildsOn && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}

	for _, related := range a.taxonomy.ComplementsOf(skill) {
		if match, ok := a.taxonomy.MatchAny(related, have); ok {
			add(match)
		}
	}
	for _, h := range have {
		if _, ok := a.taxonomy.MatchAny(skill, a.taxonomy.ComplementsOf(h)); ok {
			add(h)
		}
	}
	return out
}

// recommend annotates missing required skills, prioritizing those that build on what the
// candidate already knows, and keeps at most five.
func (a *Analyzer) recommend(missing, have []string) []types.LearningRecommendation {
	recs := make([]types.LearningRecommendation, 0, len(missing))
	for _, skill := range missing {
		recs = append(recs, types.LearningRecommendation{
			Skill:         skill,
			EstimatedTime: a.EstimateLearningTime(skill),
			BuildsOn:      a.buildsOn(skill, have),
		})
	}

	slices.SortStableFunc(recs, func(x, y types.LearningRecommendation) int {
		return cmp.Compare(len(y.BuildsOn), len(x.BuildsOn))
	})

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

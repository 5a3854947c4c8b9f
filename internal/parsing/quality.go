package parsing

import (
	"math"
	"unicode/utf8"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Section scoring constants.
const (
	emailPoints          = 40
	phonePoints          = 30
	linkedInPoints       = 30
	pointsPerSkill       = 10
	pointsPerEducation   = 50
	pointsPerExperience  = 25
	minScoredSummary     = 100
	summaryCharsPerPoint = 5
	weakSectionThreshold = 50
)

// CompleteThreshold is the overall score at which a resume counts as complete.
const CompleteThreshold = 70

// qualitySections fixes the order in which sections are scored and suggestions listed.
var qualitySections = []struct {
	name       string
	suggestion string
}{
	{types.SectionContact, "Add complete contact information: email, phone number and LinkedIn profile."},
	{types.SectionSkills, "List more of your relevant skills in a dedicated Skills section."},
	{types.SectionEducation, "Add your education history with degrees and graduation years."},
	{types.SectionExperience, "Describe your work experience with titles, companies and dates."},
	{types.SectionSummary, "Add a professional summary of at least a few sentences."},
}

// AnalyzeQuality scores a parsed resume section by section.
func AnalyzeQuality(parsed *types.ParsedResume) *types.QualityReport {
	if parsed == nil {
		parsed = types.NewParsedResume()
	}

	scores := map[string]int{
		types.SectionContact:    contactScore(parsed.Contact),
		types.SectionSkills:     min(100, len(parsed.Skills)*pointsPerSkill),
		types.SectionEducation:  min(100, len(parsed.Education)*pointsPerEducation),
		types.SectionExperience: min(100, len(parsed.Experience)*pointsPerExperience),
		types.SectionSummary:    summaryScore(parsed.Summary),
	}

	report := &types.QualityReport{
		SectionScores: scores,
		Suggestions:   []string{},
	}

	total := 0
	for _, s := range qualitySections {
		total += scores[s.name]
		if scores[s.name] < weakSectionThreshold {
			report.Suggestions = append(report.Suggestions, s.suggestion)
		}
	}

	report.OverallScore = int(math.Round(float64(total) / float64(len(qualitySections))))
	report.IsComplete = report.OverallScore >= CompleteThreshold
	return report
}

func contactScore(c types.Contact) int {
	score := 0
	if c.Email != "" {
		score += emailPoints
	}
	if c.Phone != "" {
		score += phonePoints
	}
	if c.LinkedIn != "" {
		score += linkedInPoints
	}
	return min(100, score)
}

func summaryScore(summary *string) int {
	if summary == nil {
		return 0
	}
	n := utf8.RuneCountInString(*summary)
	if n <= minScoredSummary {
		return 0
	}
	return min(100, n/summaryCharsPerPoint)
}

// Package parsing turns plain (or pasted HTML) resume text into a structured ParsedResume
// and scores how complete it is. Extraction is heuristic and never fails: text without
// recognizable sections produces an empty or partial result.
package parsing

import (
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

// Extract runs every heuristic over the resume text in a fixed order.
func Extract(text string) *types.ParsedResume {
	parsed := types.NewParsedResume()
	if strings.TrimSpace(text) == "" {
		return parsed
	}

	if LooksLikeHTML(text) {
		if converted, err := HTMLToText(text); err == nil {
			text = converted
		}
	}
	text = CleanText(text)
	if text == "" {
		return parsed
	}

	sections := splitSections(text)

	parsed.Contact = extractContact(text)
	parsed.Skills = extractSkills(text, sections)
	parsed.Education = extractEducation(text, sections)
	parsed.Experience = extractExperience(sections)
	parsed.Summary = extractSummary(text, sections)
	parsed.Languages = extractLanguages(text, sections)
	parsed.Certifications = extractCertifications(text, sections)
	return parsed
}

// Analyze extracts a resume and scores it in one call.
func Analyze(text string) *types.ResumeAnalysis {
	parsed := Extract(text)
	return &types.ResumeAnalysis{Resume: parsed, Quality: AnalyzeQuality(parsed)}
}

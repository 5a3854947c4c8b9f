package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

// maxFieldLength caps the field-of-study text kept after a degree.
const maxFieldLength = 80

// degreePatterns are tried in order on each line; the first match names the degree.
var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:ph\.?\s?d\.?|doctorate|doctor of [a-z]+)`),
	regexp.MustCompile(`(?i)\b(?:master(?:['’]s)?(?: degree)?(?: of (?:business )?[a-z]+)?|mba\b|m\.sc\.?|msc\b|m\.s\.|m\.a\.|m\.eng\.?|meng\b)`),
	regexp.MustCompile(`(?i)\b(?:bachelor(?:['’]s)?(?: degree)?(?: of [a-z]+)?|b\.sc\.?|bsc\b|b\.s\.|b\.a\.|b\.eng\.?|beng\b|b\.tech\b|btech\b)`),
	regexp.MustCompile(`(?i)\b(?:associate(?:['’]s)? degree|associate of [a-z]+)`),
	regexp.MustCompile(`(?i)\b(?:high school diploma|diploma(?: in [a-z]+)?)`),
}

var (
	yearRe      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	fieldLeadRe = regexp.MustCompile(`(?i)^[\s,:-]*(?:(?:in|of)\s+)?`)
	fieldStopRe = regexp.MustCompile(`[,|()\[\]•;]|\s[-–]\s|\s(?:at|from)\s|\b(?:19|20)\d{2}\b`)
)

// extractEducation reads degrees from the Education section, or from the whole text
// when no such section exists. Each line yields at most one degree.
func extractEducation(text string, sections []section) []types.ResumeEducation {
	source := text
	if body, ok := findSection(sections, kindEducation); ok {
		source = body
	}

	entries := []types.ResumeEducation{}
	for _, line := range strings.Split(source, "\n") {
		line = stripBullet(line)
		if line == "" {
			continue
		}
		for _, re := range degreePatterns {
			loc := re.FindStringIndex(line)
			if loc == nil {
				continue
			}
			entries = append(entries, types.ResumeEducation{
				Degree: strings.TrimSpace(line[loc[0]:loc[1]]),
				Field:  degreeField(line[loc[1]:]),
				Year:   nearestYear(line, loc[0], loc[1]),
			})
			break
		}
	}
	return entries
}

// degreeField returns the field of study following a degree, e.g. "in Computer Science, MIT".
func degreeField(rest string) string {
	rest = fieldLeadRe.ReplaceAllString(rest, "")
	if loc := fieldStopRe.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	rest = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(rest), ".-"))
	if len(rest) > maxFieldLength {
		rest = strings.TrimSpace(rest[:maxFieldLength])
	}
	return rest
}

// nearestYear returns the 1900-2099 year closest to the degree match on its line.
func nearestYear(line string, start, end int) *int {
	var (
		best     *int
		bestDist int
	)
	for _, loc := range yearRe.FindAllStringIndex(line, -1) {
		dist := 0
		switch {
		case loc[0] >= end:
			dist = loc[0] - end
		case loc[1] <= start:
			dist = start - loc[1]
		}
		if best != nil && dist > bestDist {
			continue
		}
		year, err := strconv.Atoi(line[loc[0]:loc[1]])
		if err != nil {
			continue
		}
		best, bestDist = &year, dist
	}
	return best
}

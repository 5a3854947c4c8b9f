package parsing

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/talent-matcher/internal/types"
)

const (
	minExperienceEntryLength = 20
	maxExperienceEntries     = 10
)

const monthPrefix = `(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+)?`

var (
	// dateRangeRe matches "2019 - 2021", "Jan 2019 – Present", "2018 to now".
	dateRangeRe = regexp.MustCompile(`(?i)` + monthPrefix + `(?:19|20)\d{2}\s*(?:-|–|—|to)\s*` +
		monthPrefix + `(?:(?:19|20)\d{2}|present|current|now)\b`)
	titleSplitRe  = regexp.MustCompile(`\s+(?:at|@|-|–|—|\|)\s+|\s*@\s*`)
	companyStopRe = regexp.MustCompile(`[,|(\[]|\s[-–—]\s`)
)

// extractExperience reads positions from the Experience section. Without that section
// the result is empty.
func extractExperience(sections []section) []types.ResumeExperience {
	entries := []types.ResumeExperience{}
	body, ok := findSection(sections, kindExperience)
	if !ok || body == "" {
		return entries
	}

	for _, chunk := range splitExperienceEntries(body) {
		if utf8.RuneCountInString(chunk) < minExperienceEntryLength {
			continue
		}
		entries = append(entries, parseExperienceEntry(chunk))
		if len(entries) == maxExperienceEntries {
			break
		}
	}
	return entries
}

// splitExperienceEntries starts a new entry at every line carrying a date range. A line
// that holds nothing but the dates belongs with the line above it, which usually names
// the position.
func splitExperienceEntries(body string) []string {
	lines := strings.Split(body, "\n")

	var starts []int
	for i, line := range lines {
		if !dateRangeRe.MatchString(line) {
			continue
		}
		start := i
		if isDateOnly(line) && i > 0 && strings.TrimSpace(lines[i-1]) != "" &&
			(len(starts) == 0 || starts[len(starts)-1] < i-1) {
			start = i - 1
		}
		starts = append(starts, start)
	}
	if len(starts) == 0 {
		return []string{strings.TrimSpace(body)}
	}

	chunks := make([]string, 0, len(starts)+1)
	if lead := strings.TrimSpace(strings.Join(lines[:starts[0]], "\n")); lead != "" {
		chunks = append(chunks, lead)
	}
	for n, start := range starts {
		end := len(lines)
		if n+1 < len(starts) {
			end = starts[n+1]
		}
		chunks = append(chunks, strings.TrimSpace(strings.Join(lines[start:end], "\n")))
	}
	return chunks
}

func isDateOnly(line string) bool {
	rest := dateRangeRe.ReplaceAllString(line, "")
	letters := 0
	for _, r := range rest {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters < 3
}

// parseExperienceEntry pulls the date range, title and company out of one entry.
func parseExperienceEntry(chunk string) types.ResumeExperience {
	exp := types.ResumeExperience{Description: chunk}

	lines := strings.Split(chunk, "\n")
	headerIdx := 0
	if loc := dateRangeRe.FindStringIndex(chunk); loc != nil {
		exp.Duration = strings.TrimSpace(chunk[loc[0]:loc[1]])
	}

	header := stripBullet(dateRangeRe.ReplaceAllString(lines[headerIdx], ""))
	header = strings.Trim(header, " ,|()-–—")
	if header == "" && len(lines) > 1 {
		headerIdx = 1
		header = strings.Trim(stripBullet(dateRangeRe.ReplaceAllString(lines[1], "")), " ,|()-–—")
	}

	parts := titleSplitRe.Split(header, 2)
	if title := strings.TrimSpace(parts[0]); startsUpper(title) {
		exp.Title = title
	}
	if len(parts) == 2 {
		company := parts[1]
		if loc := companyStopRe.FindStringIndex(company); loc != nil {
			company = company[:loc[0]]
		}
		exp.Company = strings.TrimSpace(company)
	}

	if rest := strings.TrimSpace(strings.Join(lines[headerIdx+1:], "\n")); rest != "" {
		exp.Description = rest
	}
	return exp
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

package parsing

import (
	"strings"
	"unicode/utf8"
)

const (
	minSectionSummaryLength   = 50
	minParagraphSummaryLength = 100
	maxSummaryLength          = 1000
)

// extractSummary prefers a summary/profile/objective section and falls back to the first
// paragraph of a plausible length.
func extractSummary(text string, sections []section) *string {
	if body, ok := findSection(sections, kindSummary); ok {
		body = joinLines(body)
		if utf8.RuneCountInString(body) > minSectionSummaryLength {
			s := truncateRunes(body, maxSummaryLength)
			return &s
		}
	}

	for _, p := range paragraphs(text) {
		if _, _, isHeader := parseHeader(firstLine(p)); isHeader {
			continue
		}
		p = joinLines(p)
		if n := utf8.RuneCountInString(p); n > minParagraphSummaryLength && n < maxSummaryLength {
			return &p
		}
	}
	return nil
}

func joinLines(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
